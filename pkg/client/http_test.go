package client

import (
	"EduForum/config"
	"EduForum/pkg/response"
	"EduForum/types"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HttpClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHttpClient(&config.Api{BaseURL: srv.URL + "/", TimeoutMs: 2000}, &types.Session{Token: "tkn", UserID: "u1"})
}

func TestHttpClient_BearerAndQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tkn" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("missing request id")
		}
		if r.URL.Path != "/discussion/feed" || r.URL.Query().Get("tab") != "recent" {
			t.Errorf("unexpected url %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"discussions":[]}}`))
	})

	data, err := c.Get(context.Background(), "/discussion/feed", url.Values{"tab": {"recent"}}, "Failed to fetch discussions")
	if err != nil {
		t.Fatal(err)
	}
	if !data.Get("discussions").IsArray() {
		t.Fatalf("data = %s", data.Raw)
	}
}

func TestHttpClient_FallbackMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false}`))
	})

	_, err := c.Get(context.Background(), "/discussion/feed", nil, "Failed to fetch discussions")
	if err == nil || err.Error() != "Failed to fetch discussions" {
		t.Fatalf("err = %v", err)
	}
	if response.StatusOf(err) != http.StatusInternalServerError {
		t.Fatalf("status = %d", response.StatusOf(err))
	}
}

func TestHttpClient_TransportError(t *testing.T) {
	c := NewHttpClient(&config.Api{BaseURL: "http://127.0.0.1:1", TimeoutMs: 500}, nil)

	err := c.Exec(context.Background(), http.MethodPost, "/discussion/abc/report", map[string]string{"reason": "spam"}, "Failed to report discussion")
	if err == nil || err.Error() != "Failed to report discussion" {
		t.Fatalf("err = %v", err)
	}
	var be *response.BizError
	if !errors.As(err, &be) || be.Err == nil {
		t.Fatal("transport cause should be wrapped")
	}
}

func TestRouteOf(t *testing.T) {
	if got := routeOf("/discussion/64f0c2a1b2c3d4e5f6a7b8c9/like"); got != "/discussion/:id/like" {
		t.Fatalf("route = %s", got)
	}
	if got := routeOf("/discussion/categories/stats"); got != "/discussion/categories/stats" {
		t.Fatalf("route = %s", got)
	}
}

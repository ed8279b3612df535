package dao

import (
	"EduForum/config"
	"EduForum/pkg/client"
	"EduForum/types"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestAPI(t *testing.T, h http.HandlerFunc) *client.HttpClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return client.NewHttpClient(&config.Api{BaseURL: srv.URL, TimeoutMs: 2000}, &types.Session{Token: "tkn", UserID: "u1"})
}

func TestDiscussionDAO_Feed(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/discussion/feed" || q.Get("tab") != "trending" || q.Get("page") != "2" || q.Get("category") != "" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"discussions":[{"_id":"d1"},{"_id":"d2"},{"_id":"d1"}],"pagination":{"page":2,"pages":3}}}`))
	})

	page, err := NewDiscussionDAO(api).Feed(context.Background(), types.FeedParams{Tab: types.TabTrending, Page: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Discussions) != 2 {
		t.Fatalf("len = %d", len(page.Discussions))
	}
	if !page.Pagination.HasMore {
		t.Fatal("page 2 of 3 has more")
	}
}

func TestDiscussionDAO_FallbackMessages(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	})
	d := NewDiscussionDAO(api)
	ctx := context.Background()

	cases := []struct {
		want string
		call func() error
	}{
		{"Failed to fetch discussions", func() error { _, err := d.Feed(ctx, types.FeedParams{}); return err }},
		{"Failed to fetch discussion", func() error { _, err := d.Get(ctx, "d1", 1, 10); return err }},
		{"Failed to create discussion", func() error { _, err := d.Create(ctx, types.CreateDiscussionRequest{}); return err }},
		{"Failed to toggle like", func() error { _, err := d.ToggleLike(ctx, "d1"); return err }},
		{"Failed to report discussion", func() error { return d.Report(ctx, "d1", "spam") }},
		{"Failed to search discussions", func() error { _, err := d.Search(ctx, "go", 1, 10); return err }},
		{"Failed to fetch trending topics", func() error { _, err := d.Trending(ctx, 5); return err }},
		{"Failed to fetch category stats", func() error { _, err := d.CategoryStats(ctx); return err }},
		{"Failed to fetch community overview", func() error { _, err := d.CommunityOverview(ctx); return err }},
		{"Failed to fetch bookmarks", func() error { _, err := d.Bookmarked(ctx); return err }},
	}
	for _, c := range cases {
		err := c.call()
		if err == nil || err.Error() != c.want {
			t.Errorf("want %q, got %v", c.want, err)
		}
	}
}

func TestDiscussionDAO_GetWithReplies(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/discussion/get-specific-discussion/d1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{
			"discussion":{"_id":"d1","createdBy":{"_id":"op"}},
			"replies":[{"_id":"r1","discussion":"d1","createdBy":{"_id":"op"}},{"_id":"r2","discussion":"d1","createdBy":{"_id":"u9"}}],
			"pagination":{"page":1,"pages":1}}}`))
	})

	detail, err := NewDiscussionDAO(api).Get(context.Background(), "d1", 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if detail.Discussion.ID != "d1" || len(detail.Replies) != 2 {
		t.Fatalf("detail = %+v", detail)
	}
	if !detail.Replies[0].IsOP || detail.Replies[1].IsOP {
		t.Fatal("isOP derived from discussion author")
	}
}

func TestDiscussionDAO_ToggleLike(t *testing.T) {
	body := `{"success":true,"data":{"likes":["u1","u2","u1"]}}`
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/discussion/d1/like" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(body))
	})
	d := NewDiscussionDAO(api)

	res, err := d.ToggleLike(context.Background(), "d1")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Known || len(res.Likes) != 2 {
		t.Fatalf("res = %+v", res)
	}

	body = `{"success":true,"message":"Liked"}`
	res, err = d.ToggleLike(context.Background(), "d1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Known {
		t.Fatal("no likes list means unknown")
	}
}

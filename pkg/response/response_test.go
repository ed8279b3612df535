package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestDecode_FallbackWhenNoMessage(t *testing.T) {
	_, err := Decode(http.StatusOK, []byte(`{"success":false}`), true, "Failed to fetch discussions")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Failed to fetch discussions" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestDecode_PrefersServerMessage(t *testing.T) {
	_, err := Decode(http.StatusBadRequest, []byte(`{"success":false,"message":"Discussion is locked"}`), true, "Failed to add reply")
	if err == nil || err.Error() != "Discussion is locked" {
		t.Fatalf("expected server message, got %v", err)
	}

	var be *BizError
	if !errors.As(err, &be) || be.Code != http.StatusBadRequest {
		t.Fatalf("expected BizError with 400, got %#v", err)
	}
}

func TestDecode_MissingData(t *testing.T) {
	if _, err := Decode(http.StatusOK, []byte(`{"success":true}`), true, "Failed to create discussion"); err == nil {
		t.Fatal("expected error for missing data")
	}

	if _, err := Decode(http.StatusOK, []byte(`{"success":true}`), false, "Failed to report discussion"); err != nil {
		t.Fatalf("data not required, got %v", err)
	}
}

func TestDecode_InvalidBody(t *testing.T) {
	_, err := Decode(http.StatusBadGateway, []byte(`<html>bad gateway</html>`), true, "Failed to fetch replies")
	if err == nil || err.Error() != "Failed to fetch replies" {
		t.Fatalf("unexpected %v", err)
	}
	if StatusOf(err) != http.StatusBadGateway {
		t.Fatalf("status = %d", StatusOf(err))
	}
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	r.GET("/biz", func(c *gin.Context) {
		_ = c.Error(NewError(http.StatusForbidden, "Not allowed"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("panic should map to 500, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biz", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("biz error should keep its status, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Not allowed") {
		t.Errorf("body should carry message, got %s", w.Body.String())
	}
}

package context

import (
	"EduForum/internal/transform"
	"EduForum/pkg/response"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func serve(h func(*gin.Context) error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", Wrap(h))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestWrap_ErrorMapping(t *testing.T) {
	w := serve(func(*gin.Context) error {
		return &transform.ValidationError{Errors: []string{"Category is required"}}
	})
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Category is required") {
		t.Fatalf("%d %s", w.Code, w.Body.String())
	}

	w = serve(func(*gin.Context) error { return response.NewError(http.StatusNotFound, "Discussion not found") })
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"success":false`) {
		t.Fatalf("%d %s", w.Code, w.Body.String())
	}

	w = serve(func(*gin.Context) error { return errors.New("boom") })
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("%d", w.Code)
	}
}

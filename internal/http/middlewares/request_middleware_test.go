package middlewares_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geocoder89/enrollhub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middlewares.CtxRequestID))
	})

	t.Run("keeps a well-formed caller id", func(t *testing.T) {
		id := uuid.NewString()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", id)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Header().Get("X-Request-Id") != id || w.Body.String() != id {
			t.Fatalf("expected request id %q, got header=%q body=%q", id, w.Header().Get("X-Request-Id"), w.Body.String())
		}
	})

	t.Run("replaces junk", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", "<script>")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		got := w.Header().Get("X-Request-Id")
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("expected a generated uuid, got %q", got)
		}
	})
}

func TestRequireJSON(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.RequireJSON())
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	tests := []struct {
		name        string
		method      string
		body        string
		contentType string
		wantStatus  int
	}{
		{name: "json body", method: http.MethodPost, body: `{}`, contentType: "application/json; charset=utf-8", wantStatus: http.StatusNoContent},
		{name: "form body", method: http.MethodPost, body: `a=b`, contentType: "application/x-www-form-urlencoded", wantStatus: http.StatusUnsupportedMediaType},
		{name: "no content type", method: http.MethodPost, body: `{}`, wantStatus: http.StatusUnsupportedMediaType},
		{name: "suffix json type", method: http.MethodPost, body: `{}`, contentType: "application/merge-patch+json", wantStatus: http.StatusNoContent},
		{name: "json lookalike", method: http.MethodPost, body: `{}`, contentType: "application/jsonp", wantStatus: http.StatusUnsupportedMediaType},
		{name: "malformed content type", method: http.MethodPost, body: `{}`, contentType: "application/json; charset", wantStatus: http.StatusUnsupportedMediaType},
		{name: "bodyless post", method: http.MethodPost, wantStatus: http.StatusNoContent},
		{name: "get", method: http.MethodGet, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", bytes.NewBufferString(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestMaxBodyBytes(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.MaxBodyBytes(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"firstName":"much too long"}`))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "PAYLOAD-TOO-LARGE") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

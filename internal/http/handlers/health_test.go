package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/enrollhub/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

func TestReadyz(t *testing.T) {
	tests := []struct {
		name       string
		ping       func(ctx context.Context) error
		wantStatus int
	}{
		{name: "no ping", ping: nil, wantStatus: http.StatusOK},
		{name: "store up", ping: func(ctx context.Context) error { return nil }, wantStatus: http.StatusOK},
		{name: "store down", ping: func(ctx context.Context) error { return errors.New("down") }, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewHealthHandler(tt.ping)

			r := gin.New()
			r.GET("/healthz", h.Healthz)
			r.GET("/readyz", h.Readyz)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}

			w = httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("healthz should always be 200, got %d", w.Code)
			}
		})
	}
}

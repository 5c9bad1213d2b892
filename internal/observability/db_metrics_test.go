package observability

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/geocoder89/enrollhub/internal/domain/account"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestClassifyDBErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"pg unique", &pgconn.PgError{Code: "23505"}, "unique_violation"},
		{"pg wrapped", fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "42P01"}), "pg_42P01"},
		{"deadline", context.DeadlineExceeded, "timeout"},
		{"canceled", context.Canceled, "canceled"},
		{"connection text", errors.New("connection refused"), "connection"},
		{"unknown", errors.New("boom"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyDBErr(tt.err); got != tt.want {
				t.Fatalf("classifyDBErr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestObserveDBCountsErrorsButNotNotFound(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	_ = p.ObserveDB("memory", "accounts.get_profile", func() error { return account.ErrNotFound })
	_ = p.ObserveDB("memory", "accounts.create", func() error { return errors.New("boom") })
	_ = p.ObserveDB("memory", "accounts.create", func() error { return nil })

	if got := testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("memory", "accounts.create", "unknown")); got != 1 {
		t.Fatalf("errors_total = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(p.DbErrorsTotal); got != 1 {
		t.Fatalf("expected a single error series, got %d", got)
	}
}

func TestObserveDBNilProm(t *testing.T) {
	var p *Prom
	want := errors.New("boom")

	if err := p.ObserveDB("memory", "op", func() error { return want }); !errors.Is(err, want) {
		t.Fatalf("expected fn error to pass through, got %v", err)
	}
}

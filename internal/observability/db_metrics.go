package observability

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/geocoder89/enrollhub/internal/domain/account"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
)

// ObserveDB times fn and records its outcome. A nil *Prom only runs fn.
// account.ErrNotFound is an outcome, not a failure, and is not counted as an error.
func (p *Prom) ObserveDB(backend, op string, fn func() error) error {
	start := time.Now()
	err := fn()

	if p == nil {
		return err
	}

	status := "ok"

	switch {
	case err == nil:
	case errors.Is(err, account.ErrNotFound):
		status = "not_found"
	default:
		status = "error"
		p.DbErrorsTotal.WithLabelValues(backend, op, classifyDBErr(err)).Inc()
	}
	p.DbQueryDuration.WithLabelValues(backend, op, status).Observe(time.Since(start).Seconds())
	return err
}

func classifyDBErr(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return "unique_violation"
		case "23502":
			return "not_null_violation"
		case "22P02":
			return "invalid_text_representation"
		case "57014":
			return "query_canceled"
		default:
			return "pg_" + pgErr.Code
		}
	}

	switch {
	case mongo.IsDuplicateKeyError(err):
		return "unique_violation"
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case mongo.IsNetworkError(err):
		return "connection"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return "timeout"
	case strings.Contains(msg, "connection"):
		return "connection"
	default:
		return "unknown"
	}
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/enrollhub/internal/domain/enrollment"
	"github.com/geocoder89/enrollhub/internal/observability"
	"github.com/google/uuid"
)

type EnrollmentsRepo struct {
	mu    sync.RWMutex
	items map[string]enrollment.Enrollment
	prom  *observability.Prom
}

func NewEnrollmentsRepo(prom *observability.Prom) *EnrollmentsRepo {
	return &EnrollmentsRepo{
		items: make(map[string]enrollment.Enrollment),
		prom:  prom,
	}
}

func (r *EnrollmentsRepo) Create(ctx context.Context, req enrollment.CreateEnrollmentRequest) (enrollment.Enrollment, error) {
	e := enrollment.NewFromCreateRequest(req)

	if err := e.Validate(); err != nil {
		return enrollment.Enrollment{}, err
	}

	err := r.prom.ObserveDB(backend, "enrollments.create", func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		e.ID = uuid.NewString()

		r.mu.Lock()
		r.items[e.ID] = e
		r.mu.Unlock()
		return nil
	})
	if err != nil {
		return enrollment.Enrollment{}, err
	}

	return e, nil
}

// ListByUser returns the stored enrollments of one account, in no particular order.
func (r *EnrollmentsRepo) ListByUser(userID string) []enrollment.Enrollment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []enrollment.Enrollment
	for _, e := range r.items {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

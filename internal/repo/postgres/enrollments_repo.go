package postgres

import (
	"context"
	"fmt"

	"github.com/geocoder89/enrollhub/internal/domain/enrollment"
	"github.com/geocoder89/enrollhub/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EnrollmentsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewEnrollmentsRepo(pool *pgxpool.Pool, prom *observability.Prom) *EnrollmentsRepo {
	return &EnrollmentsRepo{pool: pool, prom: prom}
}

func (r *EnrollmentsRepo) Create(ctx context.Context, req enrollment.CreateEnrollmentRequest) (enrollment.Enrollment, error) {
	e := enrollment.NewFromCreateRequest(req)

	if err := e.Validate(); err != nil {
		return enrollment.Enrollment{}, err
	}

	e.ID = uuid.NewString()

	err := r.prom.ObserveDB(backend, "enrollments.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO enrollments (id, user_id, enrolled_course, total_price, enrolled_on)
			VALUES ($1,$2,$3,$4,$5)`,
			e.ID, e.UserID, e.EnrolledCourse, e.TotalPrice, e.EnrolledOn,
		)
		return err
	})
	if err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("insert enrollment: %w", err)
	}

	return e, nil
}

package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/geocoder89/enrollhub/internal/db"
	"github.com/geocoder89/enrollhub/internal/domain/account"
	"github.com/geocoder89/enrollhub/internal/domain/enrollment"
	"github.com/geocoder89/enrollhub/internal/domain/flex"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func TestBuildSetClause(t *testing.T) {
	first := "Ada"
	hash := "h"
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	clause, args := buildSetClause(account.Changes{FirstName: &first, PasswordHash: &hash}, now)

	require.Equal(t, "first_name = $1, password_hash = $2, updated_at = $3", clause)
	require.Equal(t, []interface{}{"Ada", "h", now}, args)
}

func TestUpdateRejectsNonUUIDAsNotFound(t *testing.T) {
	r := NewAccountsRepo(nil, nil)
	first := "Ada"

	_, err := r.Update(context.Background(), "not-a-uuid", account.Changes{FirstName: &first})
	require.ErrorIs(t, err, account.ErrNotFound)

	_, err = r.GetProfile(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, account.ErrNotFound)
}

// The tests below need a reachable database: TEST_DB_DSN=postgres://... go test ./...

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	pool, err := db.NewPool(dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx, pool))

	_, err = pool.Exec(ctx, `TRUNCATE enrollments, users`)
	require.NoError(t, err)

	return pool
}

func TestAccountsRepoRoundTrip(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	r := NewAccountsRepo(pool, nil)

	email := "pg-" + strings.ReplaceAll(uuid.NewString(), "-", "") + "@x.com"
	created, err := r.Create(ctx, account.NewFromRegisterRequest(account.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     flex.String(email),
	}, "hash"))
	require.NoError(t, err)

	found, err := r.GetByEmail(ctx, email)
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
	require.Equal(t, "hash", found.PasswordHash)

	list, err := r.ListByEmail(ctx, email)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Empty(t, list[0].PasswordHash)

	last := "Byron"
	updated, err := r.Update(ctx, created.ID, account.Changes{LastName: &last})
	require.NoError(t, err)
	require.Equal(t, "Byron", updated.LastName)
	require.Equal(t, "Ada", updated.FirstName)
	require.Empty(t, updated.PasswordHash)

	_, err = r.GetProfile(ctx, uuid.NewString())
	require.ErrorIs(t, err, account.ErrNotFound)

	e, err := NewEnrollmentsRepo(pool, nil).Create(ctx, enrollment.CreateEnrollmentRequest{
		UserID:         created.ID,
		EnrolledCourse: "go-101",
		TotalPrice:     10,
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, e.UserID)
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/geocoder89/enrollhub/internal/domain/account"
	"github.com/geocoder89/enrollhub/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const backend = "postgres"

// profileColumns never includes password_hash.
const profileColumns = `id, first_name, middle_name, last_name, email, contact_number, role, created_at, updated_at`

type AccountsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewAccountsRepo(pool *pgxpool.Pool, prom *observability.Prom) *AccountsRepo {
	return &AccountsRepo{pool: pool, prom: prom}
}

func (r *AccountsRepo) Create(ctx context.Context, a account.Account) (account.Account, error) {
	a.ID = uuid.NewString()

	err := r.prom.ObserveDB(backend, "accounts.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO users (id, first_name, middle_name, last_name, email, contact_number, password_hash, role, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			a.ID, a.FirstName, a.MiddleName, a.LastName, a.Email, a.ContactNumber, a.PasswordHash, a.Role, a.CreatedAt, a.UpdatedAt,
		)
		return err
	})
	if err != nil {
		return account.Account{}, fmt.Errorf("insert account: %w", err)
	}

	return a, nil
}

func (r *AccountsRepo) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	var a account.Account

	err := r.prom.ObserveDB(backend, "accounts.get_by_email", func() error {
		err := r.pool.QueryRow(ctx,
			`SELECT `+profileColumns+`, password_hash
			FROM users
			WHERE email = $1
			ORDER BY created_at
			LIMIT 1`,
			email,
		).Scan(
			&a.ID, &a.FirstName, &a.MiddleName, &a.LastName, &a.Email, &a.ContactNumber, &a.Role, &a.CreatedAt, &a.UpdatedAt,
			&a.PasswordHash,
		)
		return notFound(err)
	})
	if err != nil {
		return account.Account{}, err
	}

	return a, nil
}

func (r *AccountsRepo) ListByEmail(ctx context.Context, email string) ([]account.Account, error) {
	out := []account.Account{}

	err := r.prom.ObserveDB(backend, "accounts.list_by_email", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+profileColumns+`
			FROM users
			WHERE email = $1`,
			email,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			a, err := scanProfile(rows)
			if err != nil {
				return err
			}
			out = append(out, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list accounts by email: %w", err)
	}

	return out, nil
}

func (r *AccountsRepo) GetProfile(ctx context.Context, id string) (account.Account, error) {
	if !isUUID(id) {
		return account.Account{}, account.ErrNotFound
	}

	var a account.Account

	err := r.prom.ObserveDB(backend, "accounts.get_profile", func() error {
		var err error
		a, err = scanProfile(r.pool.QueryRow(ctx,
			`SELECT `+profileColumns+` FROM users WHERE id = $1`,
			id,
		))
		return notFound(err)
	})
	if err != nil {
		return account.Account{}, err
	}

	return a, nil
}

// Update applies the set fields of changes and returns the row as stored afterwards.
// An empty change set reads the row without touching updated_at.
func (r *AccountsRepo) Update(ctx context.Context, id string, changes account.Changes) (account.Account, error) {
	if !isUUID(id) {
		return account.Account{}, account.ErrNotFound
	}

	if changes.IsEmpty() {
		return r.GetProfile(ctx, id)
	}

	setClause, args := buildSetClause(changes, time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		setClause, len(args), profileColumns,
	)

	var a account.Account

	err := r.prom.ObserveDB(backend, "accounts.update", func() error {
		var err error
		a, err = scanProfile(r.pool.QueryRow(ctx, query, args...))
		return notFound(err)
	})
	if err != nil {
		return account.Account{}, err
	}

	return a, nil
}

func (r *AccountsRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func buildSetClause(changes account.Changes, now time.Time) (string, []interface{}) {
	var sets []string
	var args []interface{}

	argsPosition := 1

	add := func(column string, v *string) {
		if v == nil {
			return
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argsPosition))
		args = append(args, *v)
		argsPosition++
	}

	add("first_name", changes.FirstName)
	add("last_name", changes.LastName)
	add("email", changes.Email)
	add("contact_number", changes.ContactNumber)
	add("password_hash", changes.PasswordHash)

	sets = append(sets, fmt.Sprintf("updated_at = $%d", argsPosition))
	args = append(args, now)

	return strings.Join(sets, ", "), args
}

func scanProfile(row pgx.Row) (account.Account, error) {
	var a account.Account

	err := row.Scan(
		&a.ID,
		&a.FirstName,
		&a.MiddleName,
		&a.LastName,
		&a.Email,
		&a.ContactNumber,
		&a.Role,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	return a, err
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return account.ErrNotFound
	}
	return err
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

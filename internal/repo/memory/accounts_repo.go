package memory

import (
	"context"
	"sync"

	"github.com/geocoder89/enrollhub/internal/domain/account"
	"github.com/geocoder89/enrollhub/internal/observability"
	"github.com/google/uuid"
)

const backend = "memory"

type AccountsRepo struct {
	mu    sync.RWMutex
	items map[string]account.Account
	// ids in insertion order, so email lookups see the oldest account first
	order []string
	prom  *observability.Prom
}

func NewAccountsRepo(prom *observability.Prom) *AccountsRepo {
	return &AccountsRepo{
		items: make(map[string]account.Account),
		prom:  prom,
	}
}

func (r *AccountsRepo) Create(ctx context.Context, a account.Account) (account.Account, error) {
	err := r.prom.ObserveDB(backend, "accounts.create", func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		a.ID = uuid.NewString()

		r.mu.Lock()
		r.items[a.ID] = a
		r.order = append(r.order, a.ID)
		r.mu.Unlock()
		return nil
	})
	if err != nil {
		return account.Account{}, err
	}

	return a, nil
}

func (r *AccountsRepo) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	var found account.Account

	err := r.prom.ObserveDB(backend, "accounts.get_by_email", func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.mu.RLock()
		defer r.mu.RUnlock()

		for _, id := range r.order {
			if a := r.items[id]; a.Email == email {
				found = a
				return nil
			}
		}
		return account.ErrNotFound
	})

	return found, err
}

func (r *AccountsRepo) ListByEmail(ctx context.Context, email string) ([]account.Account, error) {
	out := []account.Account{}

	err := r.prom.ObserveDB(backend, "accounts.list_by_email", func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.mu.RLock()
		defer r.mu.RUnlock()

		for _, id := range r.order {
			if a := r.items[id]; a.Email == email {
				out = append(out, a.WithoutPassword())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *AccountsRepo) GetProfile(ctx context.Context, id string) (account.Account, error) {
	var found account.Account

	err := r.prom.ObserveDB(backend, "accounts.get_profile", func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.mu.RLock()
		a, ok := r.items[id]
		r.mu.RUnlock()

		if !ok {
			return account.ErrNotFound
		}
		found = a.WithoutPassword()
		return nil
	})

	return found, err
}

func (r *AccountsRepo) Update(ctx context.Context, id string, changes account.Changes) (account.Account, error) {
	var updated account.Account

	err := r.prom.ObserveDB(backend, "accounts.update", func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.mu.Lock()
		defer r.mu.Unlock()

		a, ok := r.items[id]
		if !ok {
			return account.ErrNotFound
		}

		if !changes.IsEmpty() {
			a = changes.Apply(a)
			a.UpdatedAt = nowUTC()
			r.items[id] = a
		}

		updated = a.WithoutPassword()
		return nil
	})

	return updated, err
}

func (r *AccountsRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Package cached puts a profile read-through cache in front of an account store.
package cached

import (
	"context"
	"log/slog"
	"sync"

	"github.com/geocoder89/enrollhub/internal/cache"
	"github.com/geocoder89/enrollhub/internal/domain/account"
	"github.com/geocoder89/enrollhub/internal/observability"
)

type AccountStore interface {
	Create(ctx context.Context, a account.Account) (account.Account, error)
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	ListByEmail(ctx context.Context, email string) ([]account.Account, error)
	GetProfile(ctx context.Context, id string) (account.Account, error)
	Update(ctx context.Context, id string, changes account.Changes) (account.Account, error)
}

// AccountsRepo serves GetProfile from the cache and drops the entry on every Update.
// Cache failures are logged and never fail the call.
//
// A miss only fills the cache when no Update finished while the row was being read,
// so a slow read cannot put back a row an Update already replaced. The guard is per
// process; with a shared redis cache another instance can still refill a stale row
// for at most the cache TTL.
type AccountsRepo struct {
	AccountStore
	cache cache.ProfileCache
	prom  *observability.Prom

	mu     sync.Mutex
	writes uint64
}

func NewAccountsRepo(next AccountStore, c cache.ProfileCache, prom *observability.Prom) *AccountsRepo {
	return &AccountsRepo{AccountStore: next, cache: c, prom: prom}
}

func (r *AccountsRepo) GetProfile(ctx context.Context, id string) (account.Account, error) {
	a, ok, err := r.cache.Get(ctx, id)

	switch {
	case err != nil:
		r.prom.ObserveCache(r.cache.Name(), "error")
		slog.WarnContext(ctx, "profile cache read failed", "backend", r.cache.Name(), "account_id", id, "err", err)
	case ok:
		r.prom.ObserveCache(r.cache.Name(), "hit")
		return a, nil
	default:
		r.prom.ObserveCache(r.cache.Name(), "miss")
	}

	r.mu.Lock()
	seen := r.writes
	r.mu.Unlock()

	a, err = r.AccountStore.GetProfile(ctx, id)
	if err != nil {
		return account.Account{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.writes != seen {
		return a, nil
	}

	if err := r.cache.Set(ctx, a); err != nil {
		slog.WarnContext(ctx, "profile cache write failed", "backend", r.cache.Name(), "account_id", id, "err", err)
	}

	return a, nil
}

func (r *AccountsRepo) Update(ctx context.Context, id string, changes account.Changes) (account.Account, error) {
	a, err := r.AccountStore.Update(ctx, id, changes)
	if err != nil {
		return account.Account{}, err
	}

	if !changes.IsEmpty() {
		r.mu.Lock()
		r.writes++
		if err := r.cache.Delete(ctx, id); err != nil {
			slog.WarnContext(ctx, "profile cache invalidation failed", "backend", r.cache.Name(), "account_id", id, "err", err)
		}
		r.mu.Unlock()
	}

	return a, nil
}

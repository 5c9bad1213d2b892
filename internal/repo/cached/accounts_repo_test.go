package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geocoder89/enrollhub/internal/cache"
	"github.com/geocoder89/enrollhub/internal/domain/account"
	"github.com/geocoder89/enrollhub/internal/repo/memory"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	AccountStore
	profileReads int
}

func (s *countingStore) GetProfile(ctx context.Context, id string) (account.Account, error) {
	s.profileReads++
	return s.AccountStore.GetProfile(ctx, id)
}

func TestGetProfileReadsThroughAndUpdateInvalidates(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{AccountStore: memory.NewAccountsRepo(nil)}
	r := NewAccountsRepo(store, cache.NewMemory(time.Minute), nil)

	created, err := r.Create(ctx, account.Account{FirstName: "Ada", PasswordHash: "hash"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := r.GetProfile(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "Ada", got.FirstName)
	}
	require.Equal(t, 1, store.profileReads)

	first := "Grace"
	_, err = r.Update(ctx, created.ID, account.Changes{FirstName: &first})
	require.NoError(t, err)

	got, err := r.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Grace", got.FirstName)
	require.Equal(t, 2, store.profileReads)
}

func TestGetProfileNotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{AccountStore: memory.NewAccountsRepo(nil)}
	r := NewAccountsRepo(store, cache.NewMemory(time.Minute), nil)

	_, err := r.GetProfile(ctx, "missing")
	require.ErrorIs(t, err, account.ErrNotFound)

	_, err = r.GetProfile(ctx, "missing")
	require.ErrorIs(t, err, account.ErrNotFound)
	require.Equal(t, 2, store.profileReads)
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (account.Account, bool, error) {
	return account.Account{}, false, errors.New("cache down")
}
func (brokenCache) Set(context.Context, account.Account) error { return errors.New("cache down") }
func (brokenCache) Delete(context.Context, string) error       { return errors.New("cache down") }
func (brokenCache) Name() string                               { return "broken" }

func TestCacheFailuresFallThrough(t *testing.T) {
	ctx := context.Background()
	r := NewAccountsRepo(memory.NewAccountsRepo(nil), brokenCache{}, nil)

	created, err := r.Create(ctx, account.Account{FirstName: "Ada"})
	require.NoError(t, err)

	got, err := r.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Ada", got.FirstName)

	last := "Byron"
	_, err = r.Update(ctx, created.ID, account.Changes{LastName: &last})
	require.NoError(t, err)
}

// interleavingStore calls between once, after a profile row is loaded and before it is returned.
type interleavingStore struct {
	AccountStore
	between func()
}

func (s *interleavingStore) GetProfile(ctx context.Context, id string) (account.Account, error) {
	a, err := s.AccountStore.GetProfile(ctx, id)
	if s.between != nil {
		between := s.between
		s.between = nil
		between()
	}
	return a, err
}

func TestGetProfileDoesNotCacheRowReplacedDuringRead(t *testing.T) {
	ctx := context.Background()
	store := &interleavingStore{AccountStore: memory.NewAccountsRepo(nil)}
	profiles := cache.NewMemory(time.Minute)
	r := NewAccountsRepo(store, profiles, nil)

	created, err := r.Create(ctx, account.Account{FirstName: "Ada"})
	require.NoError(t, err)

	first := "Grace"
	store.between = func() {
		_, err := r.Update(ctx, created.ID, account.Changes{FirstName: &first})
		require.NoError(t, err)
	}

	stale, err := r.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Ada", stale.FirstName)

	_, ok, err := profiles.Get(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, ok, "a row read before the update must not be cached")

	got, err := r.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Grace", got.FirstName)

	_, ok, err = profiles.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
}

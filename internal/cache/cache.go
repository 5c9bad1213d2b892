package cache

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/enrollhub/internal/domain/account"
)

// ProfileCache holds password-free account snapshots keyed by account id.
type ProfileCache interface {
	Get(ctx context.Context, id string) (account.Account, bool, error)
	Set(ctx context.Context, a account.Account) error
	Delete(ctx context.Context, id string) error
	Name() string
}

// Memory is the in-process ProfileCache used when no redis is configured.
type Memory struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]entry
}

type entry struct {
	val account.Account
	exp time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Memory{
		ttl: ttl,
		m:   make(map[string]entry),
	}
}

func (c *Memory) Name() string { return "memory" }

func (c *Memory) Get(_ context.Context, id string) (account.Account, bool, error) {
	now := time.Now()
	c.mu.RLock()
	e, ok := c.m[id]
	c.mu.RUnlock()
	if !ok {
		return account.Account{}, false, nil
	}

	if now.After(e.exp) {
		c.mu.Lock()
		delete(c.m, id)
		c.mu.Unlock()
		return account.Account{}, false, nil
	}

	return e.val, true, nil
}

func (c *Memory) Set(_ context.Context, a account.Account) error {
	c.mu.Lock()
	c.m[a.ID] = entry{val: a.WithoutPassword(), exp: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

func (c *Memory) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	delete(c.m, id)
	c.mu.Unlock()
	return nil
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/geocoder89/enrollhub/internal/domain/account"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "enrollhub:profile:"

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// DialRedis connects and pings. Profile reads sit on the request path, so the
// per-call timeouts are short and a slow redis degrades to a cache miss.
func DialRedis(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  300 * time.Millisecond,
		WriteTimeout: 300 * time.Millisecond,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	return rdb, nil
}

type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Redis{rdb: rdb, ttl: ttl}
}

func (c *Redis) Name() string { return "redis" }

func (c *Redis) Get(ctx context.Context, id string) (account.Account, bool, error) {
	raw, err := c.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return account.Account{}, false, nil
	}
	if err != nil {
		return account.Account{}, false, fmt.Errorf("redis get profile: %w", err)
	}

	var a account.Account
	if err := json.Unmarshal(raw, &a); err != nil {
		return account.Account{}, false, fmt.Errorf("decode cached profile: %w", err)
	}

	return a, true, nil
}

// Set stores the JSON form of a; Account's hash field is excluded from JSON.
func (c *Redis) Set(ctx context.Context, a account.Account) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	if err := c.rdb.Set(ctx, keyPrefix+a.ID, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set profile: %w", err)
	}
	return nil
}

func (c *Redis) Delete(ctx context.Context, id string) error {
	if err := c.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis del profile: %w", err)
	}
	return nil
}

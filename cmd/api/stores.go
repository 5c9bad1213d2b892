package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/geocoder89/enrollhub/internal/cache"
	"github.com/geocoder89/enrollhub/internal/config"
	"github.com/geocoder89/enrollhub/internal/db"
	"github.com/geocoder89/enrollhub/internal/http/handlers"
	"github.com/geocoder89/enrollhub/internal/observability"
	"github.com/geocoder89/enrollhub/internal/repo/cached"
	"github.com/geocoder89/enrollhub/internal/repo/memory"
	"github.com/geocoder89/enrollhub/internal/repo/mongodb"
	"github.com/geocoder89/enrollhub/internal/repo/postgres"
)

type stores struct {
	accounts    handlers.AccountStore
	enrollments handlers.EnrollmentCreator
	ping        func(ctx context.Context) error
	closers     []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStores(ctx context.Context, cfg config.Config, prom *observability.Prom) (*stores, error) {
	st := &stores{}

	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, database, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		st.closers = append(st.closers, func() {
			dctx, cancel := config.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		})

		if err := mongodb.EnsureIndexes(ctx, database); err != nil {
			st.close()
			return nil, err
		}

		accounts := mongodb.NewAccountsRepo(database, prom)
		st.accounts = accounts
		st.enrollments = mongodb.NewEnrollmentsRepo(database, prom)
		st.ping = accounts.Ping

	case config.StorePostgres:
		pool, err := db.NewPool(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		st.closers = append(st.closers, pool.Close)

		if err := db.Migrate(ctx, pool); err != nil {
			st.close()
			return nil, err
		}

		accounts := postgres.NewAccountsRepo(pool, prom)
		st.accounts = accounts
		st.enrollments = postgres.NewEnrollmentsRepo(pool, prom)
		st.ping = accounts.Ping

	default:
		slog.Warn("using in-memory store; data is lost on restart")

		accounts := memory.NewAccountsRepo(prom)
		st.accounts = accounts
		st.enrollments = memory.NewEnrollmentsRepo(prom)
		st.ping = accounts.Ping
	}

	profileCache, err := openProfileCache(ctx, cfg, st)
	if err != nil {
		st.close()
		return nil, err
	}
	if profileCache != nil {
		st.accounts = cached.NewAccountsRepo(st.accounts, profileCache, prom)
	}

	return st, nil
}

// openProfileCache returns nil when caching is disabled.
func openProfileCache(ctx context.Context, cfg config.Config, st *stores) (cache.ProfileCache, error) {
	if cfg.ProfileCacheTTL <= 0 {
		return nil, nil
	}

	if cfg.RedisAddr == "" {
		return cache.NewMemory(cfg.ProfileCacheTTL), nil
	}

	rdb, err := cache.DialRedis(ctx, cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}
	st.closers = append(st.closers, func() { _ = rdb.Close() })

	return cache.NewRedis(rdb, cfg.ProfileCacheTTL), nil
}

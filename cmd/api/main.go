package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/enrollhub/internal/auth"
	"github.com/geocoder89/enrollhub/internal/config"
	"github.com/geocoder89/enrollhub/internal/db"
	httpx "github.com/geocoder89/enrollhub/internal/http"
	"github.com/geocoder89/enrollhub/internal/observability"
	"github.com/geocoder89/enrollhub/internal/security"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if cfg.OTelEnabled {
		shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: "enrollhub",
			Env:         cfg.Env,
			Endpoint:    cfg.OTelEndpoint,
			SampleRatio: cfg.OTelSampleRatio,
		})
		if err != nil {
			log.Error("tracing init failed", "err", err)
			os.Exit(1)
		}
		defer func() {
			sctx, cancel := config.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracer(sctx)
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	st, err := openStores(ctx, cfg, prom)
	if err != nil {
		log.Error("store setup failed", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer st.close()

	seedCtx, cancelSeed := config.WithTimeout(ctx, 10*time.Second)
	created, err := db.EnsureAdminAccount(seedCtx, st.accounts, cfg)
	cancelSeed()
	if err != nil {
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}
	if created {
		log.Info("admin account created", "email", cfg.AdminEmail)
	}

	// set up routers with the log
	router := httpx.NewRouter(log, cfg, httpx.Deps{
		Accounts:    st.accounts,
		Enrollments: st.enrollments,
		Hasher:      security.NewBcrypt(bcrypt.DefaultCost),
		Tokens:      auth.NewManager(cfg.SigningSecret(), cfg.AccessTTL()),
		Prom:        prom,
		Ping:        st.ping,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCtx, cancel := config.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
		return
	}

	log.Info("shutdown complete")
}

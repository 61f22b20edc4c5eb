package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/angelmondragon/superstore-backend/api/controllers"
	"github.com/angelmondragon/superstore-backend/api/routes"
	"github.com/angelmondragon/superstore-backend/internal/snapshot"
	"github.com/angelmondragon/superstore-backend/internal/storefront"
	"github.com/angelmondragon/superstore-backend/pkg/clock"
	"github.com/angelmondragon/superstore-backend/pkg/config"
	"github.com/angelmondragon/superstore-backend/pkg/db"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
	"github.com/angelmondragon/superstore-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/superstore-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

// wiring holds what the selected snapshot backend opened.
type wiring struct {
	backend snapshot.Backend
	pinger  controllers.Pinger
	limiter pkgredis.RateLimiter
	closers []func() error
}

func (w *wiring) close() error {
	var err error
	for i := len(w.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, w.closers[i]())
	}
	return err
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "superstore-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "superstore-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := openBackend(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open snapshot backend", err)
		os.Exit(1)
	}
	defer func() {
		if err := w.close(); err != nil {
			logg.Error(context.Background(), "error closing snapshot backend", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storeMetrics := metrics.NewStoreMetrics(reg)

	snaps, err := snapshot.NewStore(snapshot.StoreParams{
		Backend: w.backend,
		Logger:  logg,
		Metrics: storeMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create snapshot store", err)
		os.Exit(1)
	}

	store, err := storefront.New(ctx, storefront.Params{
		Snapshots: snaps,
		Config:    cfg,
		Clock:     clock.System{},
		Metrics:   storeMetrics,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to load storefront", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Snapshot.Backend,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:  cfg,
			Logger:  logg,
			Store:   store,
			Backend: w.pinger,
			Limiter: w.limiter,
			Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(logCtx, "graceful shutdown failed", err)
		}
	}()

	logg.Info(logCtx, "starting api server")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(logCtx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(logCtx, "api server stopped")
}

func openBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*wiring, error) {
	switch cfg.Snapshot.Backend {
	case config.SnapshotBackendRedis:
		client, err := pkgredis.New(ctx, cfg.Redis, cfg.Snapshot.Namespace, logg)
		if err != nil {
			return nil, err
		}
		backend, err := snapshot.NewRedisBackend(client)
		if err != nil {
			return nil, multierr.Append(err, client.Close())
		}
		return &wiring{backend: backend, pinger: client, limiter: client, closers: []func() error{client.Close}}, nil

	case config.SnapshotBackendSQL:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, err
		}
		backend, err := snapshot.NewSQLBackend(client.DB())
		if err != nil {
			return nil, multierr.Append(err, client.Close())
		}
		if cfg.DB.AutoMigrate {
			if err := backend.Migrate(ctx); err != nil {
				return nil, multierr.Append(err, client.Close())
			}
		}
		return &wiring{backend: backend, pinger: client, closers: []func() error{client.Close}}, nil
	}
	return &wiring{backend: snapshot.NewMemoryBackend()}, nil
}

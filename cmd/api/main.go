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
	"go.uber.org/multierr"

	"github.com/videoteka/videoteka-backend/api/routes"
	"github.com/videoteka/videoteka-backend/internal/catalog"
	"github.com/videoteka/videoteka-backend/internal/collections"
	"github.com/videoteka/videoteka-backend/internal/users"
	"github.com/videoteka/videoteka-backend/pkg/config"
	"github.com/videoteka/videoteka-backend/pkg/db"
	"github.com/videoteka/videoteka-backend/pkg/env"
	"github.com/videoteka/videoteka-backend/pkg/logger"
	"github.com/videoteka/videoteka-backend/pkg/metrics"
	"github.com/videoteka/videoteka-backend/pkg/migrate"
	"github.com/videoteka/videoteka-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
	} else {
		logg.Info(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	conn := dbClient.DB()
	usersRepo := users.NewRepository(conn)
	usersSvc := users.NewService(usersRepo, cfg.Password)
	bookmarksSvc := collections.NewBookmarksService(collections.NewBookmarksRepository(conn), usersRepo)
	cartSvc := collections.NewCartService(collections.NewCartRepository(conn), usersRepo)
	catalogSvc := catalog.NewService(catalog.NewRepository(conn), dbClient, logg)

	if cfg.FeatureFlags.SeedCatalog {
		if err := catalogSvc.EnsureSeed(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	// Heroku-style deploys inject PORT; the config value is the fallback.
	addr := ":" + env.Get("PORT", cfg.App.Port)

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Cfg:         cfg,
			Logg:        logg,
			DB:          dbClient,
			Redis:       redisClient,
			HTTPMetrics: httpMetrics,
			Users:       usersSvc,
			Bookmarks:   bookmarksSvc,
			Cart:        cartSvc,
			Catalog:     catalogSvc,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if redisClient != nil {
			err = multierr.Append(err, redisClient.Close())
		}
		err = multierr.Append(err, dbClient.Close())
		if err != nil {
			logg.Error(ctx, "shutdown finished with errors", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server stopped")
}

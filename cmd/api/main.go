package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"arnio/internal/adapter/repo"
	"arnio/internal/auth"
	"arnio/internal/docstore"
	"arnio/internal/http/handlers"
	"arnio/internal/http/httpapi"
	"arnio/internal/infra"
	"arnio/internal/infra/geoip"
	"arnio/internal/metrics"
	"arnio/internal/middleware"
	"arnio/internal/recommend"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if os.Getenv("MIGRATE_ON_BOOT") == "true" {
		if err := infra.RunMigrations(cfg.DatabaseURL); err != nil {
			logger.Fatal().Err(err).Msg("migrations failed")
		}
		logger.Info().Msg("migrations applied")
	}

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)

	geoResolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	users := repo.NewUserRepository(runner)
	docs := repo.NewDocumentRepository(runner, dbpool)
	sessions := repo.NewSessionRepository(runner)

	authSvc := auth.NewService(users, sessions, auth.Options{
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
		Timeout:    cfg.StoreTimeout,
		Geo:        geoResolver,
		Recorder:   collector,
		Logger:     logger,
	})
	docSvc := docstore.NewService(docs, users, collector, cfg.StoreTimeout, logger)
	recSvc := recommend.NewService(collector)

	app := &handlers.App{
		Auth:    authSvc,
		Docs:    docSvc,
		Rec:     recSvc,
		SQL:     runner,
		Logger:  logger,
		Metrics: metrics.Handler(registry),
	}

	var lookup middleware.CountryLookup
	if geoResolver != nil {
		lookup = geoResolver.CountryCode
	}
	router := httpapi.NewRouter(app, httpapi.Options{
		Config:        cfg,
		CountryLookup: lookup,
		Sessions:      authSvc,
	})

	// Hourly sweep keeps the sessions table from accumulating dead rows.
	sweepCtx, stopSweep := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if _, err := authSvc.PurgeExpiredSessions(sweepCtx); err != nil {
					logger.Error().Err(err).Msg("session sweep failed")
				}
			}
		}
	}()

	server := infra.NewHTTPServer(cfg, router)
	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != os.ErrClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

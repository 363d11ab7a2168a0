package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"conflux/internal/language"
	"conflux/internal/platform/config"
	"conflux/internal/platform/httpserver"
	"conflux/internal/platform/logger"
	platformMetrics "conflux/internal/platform/metrics"
	platformRedis "conflux/internal/platform/redis"
	projectStore "conflux/internal/project/store"
	"conflux/internal/raid/client"
	"conflux/internal/raid/compatibility"
	"conflux/internal/raid/handler"
	"conflux/internal/raid/mapper"
	raidMetrics "conflux/internal/raid/metrics"
	"conflux/internal/raid/service"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// The language table fetch blocks startup on purpose: the mapper must
	// never run against a partially loaded code set.
	languages, err := language.Load(ctx, language.URLSource{URL: cfg.LanguageTableURL})
	if err != nil {
		log.Error("language table load failed", "error", err)
		os.Exit(1)
	}

	var projects projectStore.Store
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		projects = projectStore.NewPostgres(pool)
	} else {
		log.Warn("no postgres configured, using in-memory project store")
		projects = projectStore.NewInMemory()
	}

	registry, err := client.NewHTTP(cfg.Registry.BaseURL, cfg.Registry.APIKey, client.WithLogger(log))
	if err != nil {
		log.Error("registry client setup failed", "error", err)
		os.Exit(1)
	}

	var raidRegistry client.Registry = registry
	redisClient, err := platformRedis.New(cfg.Redis)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		raidRegistry, err = client.NewCached(registry, redisClient.Client, cfg.Registry.CacheTTL, log)
		if err != nil {
			log.Error("registry cache setup failed", "error", err)
			os.Exit(1)
		}
	}

	requestMapper, err := mapper.New(languages)
	if err != nil {
		log.Error("mapper setup failed", "error", err)
		os.Exit(1)
	}

	raidService, err := service.New(
		projects,
		raidRegistry,
		compatibility.New(),
		requestMapper,
		service.WithLogger(log),
		service.WithMetrics(raidMetrics.New()),
	)
	if err != nil {
		log.Error("raid service setup failed", "error", err)
		os.Exit(1)
	}

	httpMetrics := platformMetrics.New()
	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	handler.New(raidService, languages, log, httpMetrics).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting conflux", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// Package main is the entrypoint for the URL shortener API server.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/penshort/userlinks/internal/cache"
	"github.com/penshort/userlinks/internal/config"
	"github.com/penshort/userlinks/internal/handler"
	"github.com/penshort/userlinks/internal/logging"
	"github.com/penshort/userlinks/internal/metrics"
	"github.com/penshort/userlinks/internal/server"
	"github.com/penshort/userlinks/internal/service"
	"github.com/penshort/userlinks/internal/store"
)

const serviceName = "URL Shortener API"

func main() {
	ctx := context.Background()

	cfg, err := config.LoadShortener()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	var (
		st         store.Store
		dependency handler.Dependency
		closeStore server.ShutdownFunc
	)

	switch cfg.StoreBackend {
	case config.StoreRedis:
		cacheClient, err := cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to Redis",
				slog.String("error", logging.SanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", logging.RedactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		logger.Info("connected to Redis")

		st = cache.NewMappingStore(cacheClient)
		dependency = handler.Dependency{Name: "redis", Checker: cacheClient}
		closeStore = func(context.Context) error { return cacheClient.Close() }
	default:
		mem := store.NewMemory()
		st = mem
		dependency = handler.Dependency{Name: "store", Checker: mem}
	}

	recorder := metrics.NewInMemory()
	shortener := service.NewShortenerService(st, cfg.BaseURL, recorder,
		service.WithCodeLength(cfg.ShortCodeLength),
		service.WithCollisionRetries(cfg.ShortCodeRetries),
	)

	router := handler.NewShortenerRouter(handler.ShortenerRoutes{
		Handler:   handler.New(serviceName, ""),
		Shortener: handler.NewShortenerHandler(shortener, logger),
		Health:    handler.NewHealthHandler(logger, dependency),
		Metrics:   handler.NewMetricsHandler(recorder),
	}, handler.RouterOptions{
		Logger:        logger,
		IsDevelopment: cfg.IsDevelopment(),
		MaxBodySize:   cfg.MaxRequestBodySize,
	})

	srv := server.New(router, server.Options{
		Port:            cfg.Port,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	if closeStore != nil {
		srv.OnShutdown(cfg.StoreBackend, closeStore)
	}

	logger.Info("starting server",
		"service", "shortener",
		"port", cfg.Port,
		"base_url", cfg.BaseURL,
		"store", cfg.StoreBackend,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

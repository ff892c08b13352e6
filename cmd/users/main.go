// Package main is the entrypoint for the user management API server.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/penshort/userlinks/internal/config"
	"github.com/penshort/userlinks/internal/handler"
	"github.com/penshort/userlinks/internal/logging"
	"github.com/penshort/userlinks/internal/metrics"
	"github.com/penshort/userlinks/internal/migrations"
	"github.com/penshort/userlinks/internal/repository"
	"github.com/penshort/userlinks/internal/server"
	"github.com/penshort/userlinks/internal/service"
)

const (
	serviceName    = "User Management System"
	serviceVersion = "2.0.0"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadUsers()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	if cfg.MigrateOnStart {
		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Error("failed to run migrations",
				slog.String("error", logging.SanitizeError(err, cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
	}

	repo, err := repository.New(ctx, cfg.DatabaseURL,
		repository.WithMaxConns(cfg.DatabaseMaxConns),
		repository.WithMinConns(cfg.DatabaseMinConns),
	)
	if err != nil {
		logger.Error("failed to connect to database",
			slog.String("error", logging.SanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", logging.RedactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	recorder := metrics.NewInMemory()
	userService := service.NewUserService(repo, nil, recorder)

	router := handler.NewUsersRouter(handler.UsersRoutes{
		Handler: handler.New(serviceName, serviceVersion),
		Users:   handler.NewUserHandler(userService, logger),
		Health:  handler.NewHealthHandler(logger, handler.Dependency{Name: "postgres", Checker: repo}),
		Metrics: handler.NewMetricsHandler(recorder),
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

	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})

	logger.Info("starting server",
		"service", "users",
		"port", cfg.Port,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	m, err := migrations.New(databaseURL, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn("failed to close migrator", "error", err)
		}
	}()
	return m.Up()
}

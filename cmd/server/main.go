package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/xknRiya/cats-api/internal/auth"
	"github.com/xknRiya/cats-api/internal/config"
	"github.com/xknRiya/cats-api/internal/logging"
	"github.com/xknRiya/cats-api/internal/server"
	"github.com/xknRiya/cats-api/internal/service"
	"github.com/xknRiya/cats-api/internal/storage"
	"github.com/xknRiya/cats-api/internal/storage/postgres"
	"github.com/xknRiya/cats-api/internal/storage/sqlite"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Debug("no .env file found; relying on existing environment")
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer store.Close()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return fmt.Errorf("init tokens: %w", err)
	}
	logger.Info("token issuer ready", "issuer", cfg.JWTIssuer, "ttl", tokens.TTL())
	hasher := auth.NewHasher(cfg.BcryptCost, cfg.HashWorkers)

	srv := server.New(cfg, server.Deps{
		Store:   store,
		Tokens:  tokens,
		Auth:    service.NewAuthService(store, hasher, tokens, logger),
		Catalog: service.NewCatalogService(store, store),
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("cats api listening", "addr", cfg.HTTPAddress(), "storage", cfg.StorageDriver)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Warn("graceful shutdown error", "error", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		return sqlite.NewStore(ctx, cfg.SQLitePath)
	default:
		return postgres.NewStore(ctx, cfg.DatabaseURL)
	}
}

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

	"weave_web/internal/config"
	"weave_web/internal/logger"
	"weave_web/internal/server"
	"weave_web/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Setup(cfg.App.Env)

	if err := run(cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	backend := services.NewBackendClient(cfg.Backend)

	// Check-auth caching is optional; without Redis every page load asks the backend.
	var authChecker services.AuthChecker = backend
	if cfg.AuthCacheEnabled() {
		cache, err := services.NewRedisCache(cfg.Cache.RedisURL)
		if err != nil {
			slog.Warn("Redis unavailable, auth check caching disabled", "error", err)
		} else {
			defer cache.Close()
			authChecker = services.NewCachedAuthChecker(backend, cache, cfg.Cache.AuthCacheTTL)
		}
	}

	e, err := server.New(cfg, server.Deps{SignUp: backend, Auth: authChecker})
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		slog.Info("Server starting", "addr", addr, "env", cfg.App.Env, "backend", cfg.Backend.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}

// Package server owns the storefront process lifecycle: it connects the
// backing stores, serves HTTP and the gRPC health endpoint, and shuts both
// down when the context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/internal/kernel"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/grpc"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

const shutdownTimeout = 10 * time.Second

// Start blocks until ctx is cancelled or the HTTP listener fails.
func Start(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.LogMongoURI(); uri != "" {
		closeLogs, err := logger.EnableMongo(uri, config.LogMongoDB())
		if err != nil {
			logger.Warn("server: mongo log sink disabled", "error", err)
		} else {
			defer closeLogs()
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if config.Bool("AUTO_MIGRATE", false) {
		n, err := migration.New(database.DB).Run()
		if err != nil {
			return fmt.Errorf("server: auto-migrate: %w", err)
		}
		logger.Info("server: migrations applied", "count", n)
	}

	if err := cache.Connect(ctx); err != nil {
		logger.Warn("server: redis unavailable, caching disabled", "error", err)
	}

	k, err := kernel.NewHTTPKernel()
	if err != nil {
		return err
	}
	go k.Run(ctx)

	if port := config.GRPCPort(); port != "" {
		gs, err := grpc.Start(":"+port, pingDB)
		if err != nil {
			return err
		}
		defer gs.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	logger.Info("server: stopped")
	return nil
}

func pingDB(ctx context.Context) error {
	sqlDB, err := database.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

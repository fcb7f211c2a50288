// Command server runs the storefront API without the management CLI. It is
// the entry point container images build.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/shashiranjanraj/storefront/database/migrations"
	"github.com/shashiranjanraj/storefront/internal/server"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Error("server exited", "error", err)
		stop()
		os.Exit(1)
	}
}

// Command screenctl runs screening, reindexing and export jobs outside the
// HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PathSynch-CEO/careers-page-v2/internal/bootstrap"
	"github.com/PathSynch-CEO/careers-page-v2/internal/config"
	"github.com/PathSynch-CEO/careers-page-v2/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "screenctl",
	Short:         "Operator tooling for the careers portal screening pipeline",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// withContainer builds the service container, runs fn and releases it.
func withContainer(ctx context.Context, fn func(*bootstrap.Container, *zap.Logger) error) error {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	c, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Warn("failed to close connections", zap.Error(err))
		}
	}()

	return fn(c, log)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chessctl-dev/chessctl/internal/config"
	"github.com/chessctl-dev/chessctl/internal/logger"
	"github.com/chessctl-dev/chessctl/internal/stubserver"
)

var version = "dev" // Will be set during build with -ldflags

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	log := logger.GetLogger()

	srv := stubserver.New(log, stubserver.WithAllowOrigin(cfg.StubServer.AllowOrigin))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("version", version).Msg("Starting chess stub server...")

	if err := srv.Start(ctx, cfg.StubServer.Address); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}

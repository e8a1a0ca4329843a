package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"sjsage522/dirscraper/config"
	"sjsage522/dirscraper/internal/cli"
	"sjsage522/dirscraper/logger"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Debug().
		Str("environment", cfg.Environment).
		Str("profile", cfg.DirectoryProfile).
		Bool("publish", cfg.PublishEnabled()).
		Bool("photo_ledger", cfg.LedgerEnabled()).
		Msg("Starting dirscraper")

	// Cancel in-flight requests on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, cfg, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}

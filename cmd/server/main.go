// Package main is the entry point for the shop ledger server.
//
// main stays minimal: read configuration, create the logger, ensure
// the data directory exists, start the server. Everything else lives
// in internal packages so it can be tested without running a binary.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/shop-ledger/internal/config"
	"github.com/sakif/shop-ledger/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg := config.Load()

	// The signing secret has no usable default. Generate one with:
	//   JWT_SECRET=$(openssl rand -hex 32)
	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is not set — refusing to start with an empty signing key")
		os.Exit(1)
	}

	// Like `mkdir -p` for the database's parent directory.
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

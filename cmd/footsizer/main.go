package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/dougdotcon/footsizer-backend/internal/config"
	"github.com/dougdotcon/footsizer-backend/internal/server"
	"github.com/dougdotcon/footsizer-backend/internal/storage"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	store, err := storage.New(cfg.UploadDir, logger)
	if err != nil {
		logger.Error("failed to prepare upload directory", "error", err)
		os.Exit(1)
	}
	logger.Info("using upload directory", "dir", store.Dir())

	srv := server.New(cfg, store, logger)
	if err := srv.Run(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

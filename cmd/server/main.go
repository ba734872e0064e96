// Package main implements the entry point for the helper API server, the
// backend for an AI writing assistant: document generation against a Gemini
// backend plus stateful and stateless chat assistants.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/dmkrav/helper-api/internal/config"
	"github.com/dmkrav/helper-api/internal/platform/logger"
)

func main() {
	// A missing .env is fine in production where variables come from the
	// environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server)

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName,
		"session_ttl_minutes", cfg.Session.TTLMinutes)

	app, err := newApplication(context.Background(), cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

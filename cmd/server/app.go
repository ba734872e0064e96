package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmkrav/helper-api/internal/chat"
	"github.com/dmkrav/helper-api/internal/config"
	"github.com/dmkrav/helper-api/internal/extract"
	"github.com/dmkrav/helper-api/internal/generation"
	"github.com/dmkrav/helper-api/internal/platform/gemini"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	generationService *generation.Service
	chatService       *chat.Service
}

// newApplication builds the full dependency graph: Gemini client, prompt
// builder with file extraction, composite pacer, session store, and the two
// services. All construction failures are fatal startup errors.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*application, error) {
	backend, err := gemini.New(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	builder := generation.NewBuilder(extract.Text, logger)
	newPacer := generation.DelayPacerFactory(time.Duration(cfg.LLM.SectionDelayMs) * time.Millisecond)
	callTimeout := time.Duration(cfg.LLM.RequestTimeoutSeconds) * time.Second

	generationService, err := generation.NewService(backend, builder, newPacer, callTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	store := chat.NewStore(
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		time.Duration(cfg.Session.PurgeMinutes)*time.Minute,
		logger,
	)

	chatService, err := chat.NewService(store, backend, callTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat service: %w", err)
	}

	return &application{
		config:            cfg,
		logger:            logger,
		generationService: generationService,
		chatService:       chatService,
	}, nil
}

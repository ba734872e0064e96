// Package gemini implements the generation.Backend interface using Google's
// Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/dmkrav/helper-api/internal/config"
	"github.com/dmkrav/helper-api/internal/generation"
)

// Client is the Gemini-backed generation backend. It performs exactly one
// API call per Generate invocation and never retries; failures propagate to
// the caller as backend failures.
type Client struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// New creates a Client from LLM configuration.
func New(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Client{
		logger: logger,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// Generate sends one request to the Gemini API and normalizes the response.
func (c *Client) Generate(ctx context.Context, req generation.GenerateRequest) (*generation.RawResult, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(req.SystemInstruction)},
		}
	}
	if req.ResponseSchema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.ResponseSchema
	}
	if req.EnableSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	c.logger.DebugContext(ctx, "calling Gemini API",
		"model", c.model,
		"contents", len(req.Contents),
		"structured", req.ResponseSchema != nil,
		"search", req.EnableSearch)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, req.Contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrBackendFailure, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrBackendFailure)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: content blocked by safety filters", generation.ErrBackendFailure)
	}

	return &generation.RawResult{
		Text:    resp.Text(),
		Sources: extractSources(resp),
	}, nil
}

// extractSources flattens grounding metadata into citation pairs. The
// metadata is optional at every level; its absence means no sources, never
// an error. Entries without a URI are dropped.
func extractSources(resp *genai.GenerateContentResponse) []generation.Source {
	var sources []generation.Source
	for _, cand := range resp.Candidates {
		if cand == nil || cand.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			sources = append(sources, generation.Source{
				URI:   chunk.Web.URI,
				Title: chunk.Web.Title,
			})
		}
	}
	return sources
}

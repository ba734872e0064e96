package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Service is the request router: it builds prompt and config for a kind,
// performs the single dispatcher call (or the composite pipeline), and
// normalizes the result.
type Service struct {
	backend     Backend
	builder     *Builder
	newPacer    PacerFactory
	callTimeout time.Duration
	logger      *slog.Logger
}

// NewService wires the router with its collaborators. newPacer produces one
// fresh Pacer per composite run, so pacing never couples unrelated requests.
// callTimeout bounds every individual backend call; zero disables the bound.
func NewService(backend Backend, builder *Builder, newPacer PacerFactory, callTimeout time.Duration, logger *slog.Logger) (*Service, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: backend cannot be nil", ErrInvalidConfig)
	}
	if builder == nil {
		return nil, fmt.Errorf("%w: builder cannot be nil", ErrInvalidConfig)
	}
	if newPacer == nil {
		return nil, fmt.Errorf("%w: pacer factory cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Service{
		backend:     backend,
		builder:     builder,
		newPacer:    newPacer,
		callTimeout: callTimeout,
		logger:      logger,
	}, nil
}

// Generate handles one generation request end to end.
func (s *Service) Generate(ctx context.Context, kind Kind, payload Payload) (*Result, error) {
	out, err := s.builder.Build(kind, payload)
	if err != nil {
		return nil, err
	}

	if out.Composite() {
		return s.runComposite(ctx, payload, out.Sections)
	}

	req := GenerateRequest{
		SystemInstruction: SystemInstructionFor(out.DocType),
		ResponseSchema:    out.Schema,
		EnableSearch:      out.EnableSearch,
	}
	if out.Parts != nil {
		req.Contents = PartsContents(out.Parts)
	} else {
		req.Contents = TextContents(out.Prompt)
	}

	s.logger.DebugContext(ctx, "dispatching generation request",
		"kind", kind,
		"doc_type", out.DocType,
		"structured", out.Schema != nil,
		"search", out.EnableSearch,
		"parts", len(out.Parts))

	raw, err := s.dispatch(ctx, req)
	if err != nil {
		return nil, err
	}

	if out.Schema != nil {
		structured, err := NormalizeStructured(kind, raw.Text)
		if err != nil {
			return nil, err
		}
		return &Result{Structured: structured}, nil
	}

	m := CalculateMetrics(raw.Text)
	return &Result{
		DocType:    out.DocType,
		Text:       raw.Text,
		TokenCount: m.TokenCount,
		PageCount:  m.PageCount,
		Sources:    raw.Sources,
	}, nil
}

// dispatch performs exactly one backend call under the configured timeout.
// Failures are not retried; anything that is not already a taxonomy error is
// surfaced as a backend failure.
func (s *Service) dispatch(ctx context.Context, req GenerateRequest) (*RawResult, error) {
	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}

	raw, err := s.backend.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, ErrBackendFailure) || errors.Is(err, ErrInvalidRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	return raw, nil
}

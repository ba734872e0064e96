package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/dmkrav/helper-api/internal/generation"
)

// StartSpec selects the system instruction for a new session: either a
// caller-supplied specialist persona or a tutoring subject plus student age.
// Exactly one of the two must be present.
type StartSpec struct {
	Specialist   *Specialist `json:"specialist,omitempty"`
	TutorSubject string      `json:"tutorSubject,omitempty"`
	Age          int         `json:"age,omitempty"`
}

// Specialist is a virtual consultant definition owned by the client.
type Specialist struct {
	Name              string `json:"name,omitempty"`
	SystemInstruction string `json:"systemInstruction"`
}

// Settings toggles per-call behavior of a stateless turn.
type Settings struct {
	MemoryEnabled   bool `json:"memoryEnabled"`
	InternetEnabled bool `json:"internetEnabled"`
}

// Attachment is pre-extracted reference text the caller wants the assistant
// to consider alongside the message.
type Attachment struct {
	DocType string `json:"docType"`
	Text    string `json:"text"`
}

// TurnRequest is one stateless conversation exchange.
type TurnRequest struct {
	AssistantType string      `json:"assistantType"`
	History       []Turn      `json:"history"`
	Message       string      `json:"message"`
	Attachment    *Attachment `json:"attachment,omitempty"`
	Settings      Settings    `json:"settings"`
}

// Reply is the outcome of a conversational turn: text plus any grounding
// sources, no size metrics.
type Reply struct {
	Text    string              `json:"text"`
	Sources []generation.Source `json:"sources,omitempty"`
}

// Service runs both conversational modes against the generation backend.
type Service struct {
	store       *Store
	backend     generation.Backend
	callTimeout time.Duration
	logger      *slog.Logger
}

// NewService wires the chat service.
func NewService(store *Store, backend generation.Backend, callTimeout time.Duration, logger *slog.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("store cannot be nil")
	}
	if backend == nil {
		return nil, errors.New("backend cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Service{store: store, backend: backend, callTimeout: callTimeout, logger: logger}, nil
}

// Start creates a fresh session and returns its unguessable identifier.
func (svc *Service) Start(spec StartSpec) (uuid.UUID, error) {
	var instruction string
	switch {
	case spec.Specialist != nil && spec.Specialist.SystemInstruction != "":
		instruction = spec.Specialist.SystemInstruction
	case spec.TutorSubject != "":
		instruction = TutorInstruction(spec.TutorSubject, spec.Age)
	default:
		return uuid.Nil, fmt.Errorf("%w: specialist or tutor subject is required", generation.ErrInvalidRequest)
	}

	sess := &Session{
		ID:                uuid.New(),
		SystemInstruction: instruction,
	}
	svc.store.Put(sess)

	svc.logger.Info("chat session started",
		"session_id", sess.ID,
		"tutor_subject", spec.TutorSubject,
		"sessions", svc.store.Count())
	return sess.ID, nil
}

// Send appends one (user, model) turn pair to the session.
//
// The session lock is held across the backend call, so sends on one session
// queue behind each other and history is never observed between the two
// appends. On backend failure the session is left exactly as it was — the
// user turn is not committed, so a retry cannot duplicate it.
func (svc *Service) Send(ctx context.Context, id uuid.UUID, message string) (*Reply, error) {
	sess, ok := svc.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	contents := turnsToContents(sess.history)
	contents = append(contents, userContent(genai.NewPartFromText(message)))

	raw, err := svc.generate(ctx, generation.GenerateRequest{
		Contents:          contents,
		SystemInstruction: sess.SystemInstruction,
	})
	if err != nil {
		return nil, err
	}

	sess.history = append(sess.history,
		Turn{Role: RoleUser, Text: message},
		Turn{Role: RoleModel, Text: raw.Text},
	)
	svc.store.Put(sess) // refresh TTL

	return &Reply{Text: raw.Text, Sources: raw.Sources}, nil
}

// StatelessTurn runs one exchange without touching any server state. History
// is replayed into the context only when the caller's settings allow it, and
// attachment text is wrapped in explicit delimiters so the model can tell
// the message apart from reference material.
func (svc *Service) StatelessTurn(ctx context.Context, req TurnRequest) (*Reply, error) {
	var contents []*genai.Content
	if req.Settings.MemoryEnabled {
		contents = turnsToContents(req.History)
	}

	parts := []*genai.Part{genai.NewPartFromText(req.Message)}
	if req.Attachment != nil {
		parts = append(parts, genai.NewPartFromText(fmt.Sprintf(
			"\n\n--- НАЧАЛО КОНТЕКСТА ДЛЯ АНАЛИЗА ---\nТип документа: %s\n\n%s\n--- КОНЕЦ КОНТЕКСТА ДЛЯ АНАЛИЗА ---",
			req.Attachment.DocType, req.Attachment.Text)))
	}
	contents = append(contents, userContent(parts...))

	raw, err := svc.generate(ctx, generation.GenerateRequest{
		Contents:          contents,
		SystemInstruction: assistantInstruction(req.AssistantType),
		EnableSearch:      req.Settings.InternetEnabled,
	})
	if err != nil {
		return nil, err
	}
	return &Reply{Text: raw.Text, Sources: raw.Sources}, nil
}

// generate performs one bounded backend call, folding unexpected errors into
// the backend-failure class.
func (svc *Service) generate(ctx context.Context, req generation.GenerateRequest) (*generation.RawResult, error) {
	if svc.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, svc.callTimeout)
		defer cancel()
	}
	raw, err := svc.backend.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, generation.ErrBackendFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", generation.ErrBackendFailure, err)
	}
	return raw, nil
}

func turnsToContents(turns []Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns)+1)
	for _, t := range turns {
		contents = append(contents, &genai.Content{
			Role:  t.Role,
			Parts: []*genai.Part{genai.NewPartFromText(t.Text)},
		})
	}
	return contents
}

func userContent(parts ...*genai.Part) *genai.Content {
	return &genai.Content{Role: string(genai.RoleUser), Parts: parts}
}

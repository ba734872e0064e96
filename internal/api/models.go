package api

import (
	"github.com/dmkrav/helper-api/internal/chat"
	"github.com/dmkrav/helper-api/internal/generation"
)

// Common request/response structures

// GenerateRequest defines the payload for the document generation endpoint.
// Payload is deliberately schemaless here; each generation kind interprets
// its own fields.
type GenerateRequest struct {
	Type    string             `json:"type"    validate:"required"`
	Payload generation.Payload `json:"payload"`
}

// StartChatRequest defines the payload for opening a stateful chat session.
// Exactly one of Specialist or TutorSubject selects the persona.
type StartChatRequest struct {
	Specialist   *chat.Specialist `json:"specialist,omitempty"`
	TutorSubject string           `json:"tutorSubject,omitempty"`
	Age          int              `json:"age,omitempty"`
}

// StartChatResponse carries the identifier the client must present on every
// subsequent send.
type StartChatResponse struct {
	ChatID string `json:"chatId"`
}

// SendChatRequest defines the payload for one turn of a stateful chat.
type SendChatRequest struct {
	ChatID  string `json:"chatId"  validate:"required,uuid"`
	Message string `json:"message" validate:"required,min=1"`
}

// StatelessChatRequest defines the payload for a single self-contained
// assistant exchange where the client owns the history.
type StatelessChatRequest struct {
	AssistantType string           `json:"assistantType"`
	History       []chat.Turn      `json:"history"`
	Message       string           `json:"message" validate:"required,min=1"`
	Attachment    *chat.Attachment `json:"attachment,omitempty"`
	Settings      chat.Settings    `json:"settings"`
}

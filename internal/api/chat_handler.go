package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dmkrav/helper-api/internal/api/shared"
	"github.com/dmkrav/helper-api/internal/chat"
)

// ChatHandler handles both stateful and stateless chat HTTP requests
type ChatHandler struct {
	chatService *chat.Service
	validator   *validator.Validate
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService *chat.Service) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validator:   validator.New(),
	}
}

// StartChat handles POST /api/chat/start requests
func (h *ChatHandler) StartChat(w http.ResponseWriter, r *http.Request) {
	var req StartChatRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := h.chatService.Start(chat.StartSpec{
		Specialist:   req.Specialist,
		TutorSubject: req.TutorSubject,
		Age:          req.Age,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StartChatResponse{ChatID: id.String()})
}

// SendChat handles POST /api/chat/send requests
func (h *ChatHandler) SendChat(w http.ResponseWriter, r *http.Request) {
	var req SendChatRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// Guaranteed parseable by the uuid validation tag above.
	id := uuid.MustParse(req.ChatID)

	reply, err := h.chatService.Send(r.Context(), id, req.Message)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reply)
}

// StatelessChat handles POST /api/stateless-chat requests
func (h *ChatHandler) StatelessChat(w http.ResponseWriter, r *http.Request) {
	var req StatelessChatRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	reply, err := h.chatService.StatelessTurn(r.Context(), chat.TurnRequest{
		AssistantType: req.AssistantType,
		History:       req.History,
		Message:       req.Message,
		Attachment:    req.Attachment,
		Settings:      req.Settings,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reply)
}

package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dmkrav/helper-api/internal/api/shared"
	"github.com/dmkrav/helper-api/internal/generation"
)

// GenerateHandler handles document generation HTTP requests
type GenerateHandler struct {
	generationService *generation.Service
	validator         *validator.Validate
}

// NewGenerateHandler creates a new GenerateHandler
func NewGenerateHandler(generationService *generation.Service) *GenerateHandler {
	return &GenerateHandler{
		generationService: generationService,
		validator:         validator.New(),
	}
}

// Generate handles POST /api/generate requests.
//
// Schema-constrained kinds answer with the reconciled structured object
// itself; every other kind answers with the text plus its size metrics.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	kind, err := generation.ParseKind(req.Type)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	result, err := h.generationService.Generate(r.Context(), kind, req.Payload)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if result.Structured != nil {
		shared.RespondWithJSON(w, r, http.StatusOK, result.Structured)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

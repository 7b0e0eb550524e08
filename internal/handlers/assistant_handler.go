package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pawmart/storefront-backend/internal/genai"
)

// AssistantHandler exposes the generative-text collaborator for product
// recommendations and pet-care tips. Generation is best-effort: failures
// degrade to a visible message, never an exception on the page.
type AssistantHandler struct {
	client *genai.Client
	logger *slog.Logger
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(client *genai.Client, logger *slog.Logger) *AssistantHandler {
	return &AssistantHandler{
		client: client,
		logger: logger,
	}
}

// assistRequest is the body for POST /api/assist
type assistRequest struct {
	Prompt string `json:"prompt"`
}

// assistResponse carries either the generated text or a fallback message.
type assistResponse struct {
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

// Assist handles POST /api/assist
func (h *AssistantHandler) Assist(w http.ResponseWriter, r *http.Request) {
	var req assistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode assist request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		WriteError(w, http.StatusBadRequest, "Prompt is required", h.logger)
		return
	}

	text, err := h.client.Generate(r.Context(), prompt)
	if err != nil {
		// Degrade, don't fail: the storefront shows the message inline.
		WriteJSON(w, http.StatusOK, assistResponse{
			Message: "Could not generate a response right now, please try again later",
		}, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, assistResponse{Text: text}, h.logger)
}

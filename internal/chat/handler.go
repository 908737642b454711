package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

// Handler holds chat HTTP handlers.
type Handler struct {
	assistant *Assistant
	log       *zap.Logger
}

func NewHandler(assistant *Assistant, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{assistant: assistant, log: log}
}

// Chat answers one message.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	resp, err := h.assistant.Reply(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, ErrUnknownMode):
		http.Error(w, `{"error":"unknown mode"}`, http.StatusBadRequest)
	case errors.Is(err, ErrEmptyMessage):
		http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
	case errors.Is(err, ErrNoAPIKey):
		http.Error(w, `{"error":"API key required"}`, http.StatusPreconditionFailed)
	default:
		h.log.Error("chat failed", zap.String("mode", req.Mode), zap.Error(err))
		status := http.StatusInternalServerError
		if errors.Is(err, ErrUpstreamRequestFailed) {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, resp)
	}
}

// Modes lists the available modes.
func (h *Handler) Modes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Modes())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

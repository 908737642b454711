package settings

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

// view is what GET /api/settings returns. The key itself never leaves the
// server; the panel only needs to know whether one is set.
type view struct {
	APIKey       string `json:"apiKey"`
	HasAPIKey    bool   `json:"hasApiKey"`
	SystemPrompt string `json:"systemPrompt"`
}

// updateRequest is the body of PUT /api/settings. An omitted apiKey keeps
// the stored one.
type updateRequest struct {
	APIKey       *string `json:"apiKey"`
	SystemPrompt string  `json:"systemPrompt"`
}

// Handler holds settings HTTP handlers.
type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context())
	if err != nil {
		h.log.Error("load settings", zap.Error(err))
		http.Error(w, `{"error":"failed to load settings"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toView(s))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	in := models.Settings{SystemPrompt: req.SystemPrompt}
	if req.APIKey != nil {
		in.APIKey = *req.APIKey
	} else {
		key, err := h.svc.APIKey(r.Context())
		if err != nil {
			h.log.Error("load api key", zap.Error(err))
			http.Error(w, `{"error":"failed to load settings"}`, http.StatusInternalServerError)
			return
		}
		in.APIKey = key
	}

	saved, err := h.svc.Save(r.Context(), in)
	if err != nil {
		h.log.Error("save settings", zap.Error(err))
		http.Error(w, `{"error":"failed to save settings"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toView(saved))
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Reset(r.Context())
	if err != nil {
		h.log.Error("reset settings", zap.Error(err))
		http.Error(w, `{"error":"failed to reset settings"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toView(s))
}

func toView(s models.Settings) view {
	return view{APIKey: mask(s.APIKey), HasAPIKey: s.APIKey != "", SystemPrompt: s.SystemPrompt}
}

// mask keeps the last four characters of key.
func mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("•", len(key))
	}
	return strings.Repeat("•", 8) + key[len(key)-4:]
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

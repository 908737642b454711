package research

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ayush/sourcing-assistant/backend/internal/browser"
	"github.com/ayush/sourcing-assistant/backend/internal/models"
	"github.com/ayush/sourcing-assistant/backend/internal/platform"
)

const maxSnapshotBytes = 8 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Researcher answers research queries.
type Researcher interface {
	Research(ctx context.Context, q models.Query) models.Result
}

// SnapshotStore keeps page captures for the snapshot browser driver.
type SnapshotStore interface {
	Save(ctx context.Context, tab models.Tab, html []byte) (browser.Snapshot, error)
	Delete(ctx context.Context, tabID string) error
}

// Handler holds research and tab HTTP handlers.
type Handler struct {
	research  Researcher
	snapshots SnapshotStore
	log       *zap.Logger
}

// NewHandler wires the handlers. snapshots may be nil when the snapshot
// driver is not in use.
func NewHandler(research Researcher, snapshots SnapshotStore, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{research: research, snapshots: snapshots, log: log}
}

// Scrape answers a scrapeData message.
func (h *Handler) Scrape(w http.ResponseWriter, r *http.Request) {
	var req models.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ScrapeResponse{Error: "invalid request body"})
		return
	}
	if req.Action != "" && req.Action != models.ActionScrapeData {
		writeJSON(w, http.StatusBadRequest, models.ScrapeResponse{Error: "unknown action: " + req.Action})
		return
	}
	if req.Type == "" {
		writeJSON(w, http.StatusBadRequest, models.ScrapeResponse{Error: "type is required"})
		return
	}

	ctx := r.Context()
	if req.Tab != nil {
		ctx = browser.WithTab(ctx, *req.Tab)
	}
	res := h.research.Research(ctx, models.Query{
		Kind:     req.Type,
		Category: req.Query.Category,
		Region:   req.Query.Region,
	})
	writeJSON(w, http.StatusOK, models.ScrapeResponse{Success: true, Data: &res})
}

// Detect reports whether a page is a known data source.
func (h *Handler) Detect(w http.ResponseWriter, r *http.Request) {
	var tab models.Tab
	if err := json.NewDecoder(r.Body).Decode(&tab); err != nil || tab.URL == "" {
		http.Error(w, `{"error":"url is required"}`, http.StatusBadRequest)
		return
	}
	msg, ok := platform.Announce(tab.URL)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{"available": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"available": true, "announcement": msg})
}

type snapshotRequest struct {
	URL  string `json:"url"`
	HTML string `json:"html"`
}

// PutSnapshot stores the extension's capture of a tab.
func (h *Handler) PutSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		http.Error(w, `{"error":"snapshot driver not enabled"}`, http.StatusNotFound)
		return
	}
	var req snapshotRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxSnapshotBytes)).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.URL == "" || req.HTML == "" {
		http.Error(w, `{"error":"url and html are required"}`, http.StatusBadRequest)
		return
	}

	tab := models.Tab{ID: chi.URLParam(r, "id"), URL: req.URL}
	snap, err := h.snapshots.Save(r.Context(), tab, []byte(req.HTML))
	if err != nil {
		h.log.Error("snapshot save failed", zap.String("tab", tab.ID), zap.Error(err))
		http.Error(w, `{"error":"failed to store snapshot"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// DeleteSnapshot removes a tab's capture.
func (h *Handler) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		http.Error(w, `{"error":"snapshot driver not enabled"}`, http.StatusNotFound)
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.snapshots.Delete(r.Context(), id); err != nil {
		h.log.Error("snapshot delete failed", zap.String("tab", id), zap.Error(err))
		http.Error(w, `{"error":"delete failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"message":"deleted"}`))
}

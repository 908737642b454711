package tasks

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

// Handler holds task HTTP handlers.
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

// List returns the tasks, pending first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, "list tasks", err)
		return
	}
	if list == nil {
		list = []models.Task{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	task, err := h.svc.Add(r.Context(), req.Text)
	if errors.Is(err, ErrEmptyText) {
		http.Error(w, `{"error":"text is required"}`, http.StatusBadRequest)
		return
	}
	if err != nil {
		h.fail(w, "add task", err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	task, err := h.svc.Toggle(r.Context(), id)
	if errors.Is(err, ErrTaskNotFound) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		h.fail(w, "toggle task", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	err := h.svc.Delete(r.Context(), id)
	if errors.Is(err, ErrTaskNotFound) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		h.fail(w, "delete task", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"message":"deleted"}`))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		h.fail(w, "task stats", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Context returns the text the assistant sees about the task list.
func (h *Handler) Context(w http.ResponseWriter, r *http.Request) {
	text, err := h.svc.Context(r.Context())
	if err != nil {
		h.fail(w, "task context", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"context": text})
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	h.log.Error(op, zap.Error(err))
	http.Error(w, `{"error":"task store error"}`, http.StatusInternalServerError)
}

func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, `{"error":"invalid task id"}`, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package tasks

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/sourcing-assistant/backend/internal/models"
	"github.com/ayush/sourcing-assistant/backend/internal/store"
)

func router() http.Handler {
	h := NewHandler(NewService(store.NewMemoryKV()), nil)
	r := chi.NewRouter()
	r.Get("/api/tasks", h.List)
	r.Post("/api/tasks", h.Create)
	r.Get("/api/tasks/stats", h.Stats)
	r.Get("/api/tasks/context", h.Context)
	r.Post("/api/tasks/{id}/toggle", h.Toggle)
	r.Delete("/api/tasks/{id}", h.Delete)
	return r
}

func call(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestHandler_lifecycle(t *testing.T) {
	r := router()

	rec := call(r, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = call(r, http.MethodPost, "/api/tasks", `{"text":"Audit tail spend"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var task models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, "Audit tail spend", task.Text)

	rec = call(r, http.MethodPost, fmt.Sprintf("/api/tasks/%d/toggle", task.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"completed":true`)

	rec = call(r, http.MethodGet, "/api/tasks/stats", "")
	assert.JSONEq(t, `{"total":1,"pending":0,"completed":1,"completionRate":100}`, rec.Body.String())

	rec = call(r, http.MethodGet, "/api/tasks/context", "")
	assert.Contains(t, rec.Body.String(), "✓ Audit tail spend")

	rec = call(r, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = call(r, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_badInput(t *testing.T) {
	r := router()
	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodPost, "/api/tasks", `{"text":"  "}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodPost, "/api/tasks", `nope`).Code)
	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodPost, "/api/tasks/abc/toggle", "").Code)
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodPost, "/api/tasks/5/toggle", "").Code)
}

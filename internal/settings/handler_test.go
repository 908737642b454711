package settings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/sourcing-assistant/backend/internal/store"
)

func serve(t *testing.T, h http.Handler, method, path, body string) view {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var v view
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHandler(t *testing.T) {
	svc := NewService(store.NewMemoryKV(), nil)
	h := NewHandler(svc, nil)
	r := chi.NewRouter()
	r.Get("/api/settings", h.Get)
	r.Put("/api/settings", h.Update)
	r.Post("/api/settings/reset", h.Reset)

	v := serve(t, r, http.MethodGet, "/api/settings", "")
	assert.False(t, v.HasAPIKey)
	assert.Equal(t, DefaultSystemPrompt, v.SystemPrompt)

	v = serve(t, r, http.MethodPut, "/api/settings", `{"apiKey":"gsk_abcdef","systemPrompt":"Be terse."}`)
	assert.True(t, v.HasAPIKey)
	assert.NotContains(t, v.APIKey, "gsk_")
	assert.Equal(t, "Be terse.", v.SystemPrompt)

	// Omitting apiKey keeps the stored one.
	v = serve(t, r, http.MethodPut, "/api/settings", `{"systemPrompt":""}`)
	assert.True(t, v.HasAPIKey)
	assert.Equal(t, DefaultSystemPrompt, v.SystemPrompt)

	v = serve(t, r, http.MethodPost, "/api/settings/reset", "")
	assert.False(t, v.HasAPIKey)

	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

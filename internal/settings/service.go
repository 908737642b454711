// Package settings keeps the assistant's two user-editable values, the
// completion API key and the base system prompt.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ayush/sourcing-assistant/backend/internal/models"
	"github.com/ayush/sourcing-assistant/backend/internal/store"
)

const (
	KeyAPIKey       = "apiKey"
	KeySystemPrompt = "systemPrompt"
)

// DefaultSystemPrompt is used whenever no prompt has been saved.
const DefaultSystemPrompt = "You are a helpful AI assistant for Strategic Sourcing professionals. " +
	"Provide clear, accurate, and helpful responses to procurement and sourcing questions. " +
	"Be concise but comprehensive in your answers. " +
	"You have access to specialized modes for task analysis, market research, and category strategy development."

// Service reads and writes settings through a KV store. With a Sealer the
// API key is encrypted before it is stored.
type Service struct {
	kv     store.KV
	sealer *Sealer
}

// NewService returns a settings service. sealer may be nil.
func NewService(kv store.KV, sealer *Sealer) *Service {
	return &Service{kv: kv, sealer: sealer}
}

// Get returns the current settings with defaults applied.
func (s *Service) Get(ctx context.Context) (models.Settings, error) {
	key, err := s.APIKey(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	prompt, err := s.get(ctx, KeySystemPrompt)
	if err != nil {
		return models.Settings{}, err
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultSystemPrompt
	}
	return models.Settings{APIKey: key, SystemPrompt: prompt}, nil
}

// APIKey returns the stored API key, or "" when none is set.
func (s *Service) APIKey(ctx context.Context) (string, error) {
	v, err := s.get(ctx, KeyAPIKey)
	if err != nil || v == "" {
		return "", err
	}
	if s.sealer == nil {
		if Sealed(v) {
			return "", fmt.Errorf("%w: no secret configured", ErrUnseal)
		}
		return v, nil
	}
	return s.sealer.Open(v)
}

// Save trims and stores both values. An empty prompt is replaced by the
// default.
func (s *Service) Save(ctx context.Context, in models.Settings) (models.Settings, error) {
	out := models.Settings{
		APIKey:       strings.TrimSpace(in.APIKey),
		SystemPrompt: strings.TrimSpace(in.SystemPrompt),
	}
	if out.SystemPrompt == "" {
		out.SystemPrompt = DefaultSystemPrompt
	}

	stored := out.APIKey
	if s.sealer != nil && stored != "" {
		var err error
		if stored, err = s.sealer.Seal(stored); err != nil {
			return models.Settings{}, err
		}
	}
	if err := s.kv.Set(ctx, KeyAPIKey, []byte(stored)); err != nil {
		return models.Settings{}, fmt.Errorf("save api key: %w", err)
	}
	if err := s.kv.Set(ctx, KeySystemPrompt, []byte(out.SystemPrompt)); err != nil {
		return models.Settings{}, fmt.Errorf("save system prompt: %w", err)
	}
	return out, nil
}

// Reset clears the API key and restores the default prompt.
func (s *Service) Reset(ctx context.Context) (models.Settings, error) {
	if err := s.kv.Delete(ctx, KeyAPIKey); err != nil {
		return models.Settings{}, fmt.Errorf("reset api key: %w", err)
	}
	if err := s.kv.Set(ctx, KeySystemPrompt, []byte(DefaultSystemPrompt)); err != nil {
		return models.Settings{}, fmt.Errorf("reset system prompt: %w", err)
	}
	return models.Settings{SystemPrompt: DefaultSystemPrompt}, nil
}

func (s *Service) get(ctx context.Context, key string) (string, error) {
	v, err := s.kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return string(v), nil
}

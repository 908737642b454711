package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUpstreamRequestFailed is returned when the completion service answers
// with a non-2xx status or an unusable body.
var ErrUpstreamRequestFailed = errors.New("chat: upstream request failed")

const (
	DefaultModel       = "llama-3.3-70b-versatile"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

// checkResp reads the response body and returns an error if the status is not 2xx.
// On error it includes the upstream body for debugging.
func checkResp(resp *http.Response, service, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%w: %s %s returned %d: %s", ErrUpstreamRequestFailed, service, path, resp.StatusCode, string(body))
}

// CompletionClient calls an OpenAI-compatible chat completions endpoint.
type CompletionClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewCompletionClient(baseURL, model string, timeout time.Duration) *CompletionClient {
	if model == "" {
		model = DefaultModel
	}
	return &CompletionClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Complete calls POST /chat/completions with a system and a user message
// and returns the first choice's content. It is not retried.
func (c *CompletionClient) Complete(ctx context.Context, apiKey, system, user string) (string, error) {
	const path = "/chat/completions"
	body, _ := json.Marshal(completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("completion %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: completion %s: %v", ErrUpstreamRequestFailed, path, err)
	}
	defer resp.Body.Close()

	if err := checkResp(resp, "completion", path); err != nil {
		return "", err
	}

	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: completion %s: decode: %v", ErrUpstreamRequestFailed, path, err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: completion %s: no choices", ErrUpstreamRequestFailed, path)
	}
	return result.Choices[0].Message.Content, nil
}

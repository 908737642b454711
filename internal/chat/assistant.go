package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ayush/sourcing-assistant/backend/internal/browser"
	"github.com/ayush/sourcing-assistant/backend/internal/metrics"
	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

// Replies shown in place of an answer when something goes wrong.
const (
	GenericErrorReply  = "Sorry, I encountered an error. Please check your API key and try again."
	ResearchErrorReply = "I encountered an issue while gathering market data. Please try again or be more specific about the category and region you're interested in."
)

var (
	ErrUnknownMode  = errors.New("chat: unknown mode")
	ErrEmptyMessage = errors.New("chat: message is required")
	ErrNoAPIKey     = errors.New("chat: no API key configured")
)

// Routes a message can take, used as a metrics label.
const (
	routeCompletion = "completion"
	routeResearch   = "research"
	routeStrategy   = "strategy"
)

type Researcher interface {
	Research(ctx context.Context, q models.Query) models.Result
}

type Completer interface {
	Complete(ctx context.Context, apiKey, system, user string) (string, error)
}

type TaskContext interface {
	Context(ctx context.Context) (string, error)
}

type SettingsReader interface {
	Get(ctx context.Context) (models.Settings, error)
}

// Assistant answers chat messages. In market research mode, research
// questions are answered from the research pipeline; everything else goes
// to the completion service with a mode-specific system prompt.
type Assistant struct {
	research  Researcher
	completer Completer
	tasks     TaskContext
	settings  SettingsReader
	log       *zap.Logger
}

func NewAssistant(research Researcher, completer Completer, tasks TaskContext, settings SettingsReader, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assistant{research: research, completer: completer, tasks: tasks, settings: settings, log: log}
}

// Reply answers req. When the completion call fails the returned response
// still carries GenericErrorReply alongside the error.
func (a *Assistant) Reply(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	mode, ok := LookupMode(req.Mode)
	if !ok {
		return models.ChatResponse{}, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return models.ChatResponse{}, ErrEmptyMessage
	}
	resp := models.ChatResponse{Mode: mode.ID}

	settings, err := a.settings.Get(ctx)
	if err != nil {
		resp.Reply = GenericErrorReply
		return resp, fmt.Errorf("load settings: %w", err)
	}
	if settings.APIKey == "" {
		return resp, ErrNoAPIKey
	}

	switch {
	case mode.ID == ModeResearch && IsMarketResearch(msg):
		metrics.ChatRequests.WithLabelValues(mode.ID, routeResearch).Inc()
		if req.Tab != nil {
			ctx = browser.WithTab(ctx, *req.Tab)
		}
		resp.Reply = a.marketResearch(ctx, msg)
		return resp, nil

	case mode.ID == ModeStrategy && IsStrategy(msg):
		metrics.ChatRequests.WithLabelValues(mode.ID, routeStrategy).Inc()
		msg = StrategyPrompt(msg)

	default:
		metrics.ChatRequests.WithLabelValues(mode.ID, routeCompletion).Inc()
	}

	base := mode.SystemPrompt
	if mode.ID == ModeChatbot && settings.SystemPrompt != "" {
		base = settings.SystemPrompt
	}
	tasksContext, err := a.tasks.Context(ctx)
	if err != nil {
		resp.Reply = GenericErrorReply
		return resp, fmt.Errorf("load tasks: %w", err)
	}

	start := time.Now()
	reply, err := a.completer.Complete(ctx, settings.APIKey, SystemPrompt(base, tasksContext, mode.Name), msg)
	metrics.CompletionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CompletionFailures.Inc()
		a.log.Warn("completion failed", zap.String("mode", mode.ID), zap.Error(err))
		resp.Reply = GenericErrorReply
		return resp, err
	}
	resp.Reply = reply
	return resp, nil
}

func (a *Assistant) marketResearch(ctx context.Context, msg string) string {
	category, region := ExtractCategory(msg), ExtractRegion(msg)
	res := a.research.Research(ctx, models.Query{
		Kind:     models.KindSuppliers,
		Category: category,
		Region:   region,
	})
	if res.Len() == 0 {
		a.log.Warn("market research returned no data",
			zap.String("category", category), zap.String("region", region), zap.String("message", res.Message))
		return ResearchErrorReply
	}
	return RenderResearch(category, region, res)
}

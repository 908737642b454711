package research

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ayush/sourcing-assistant/backend/internal/browser"
	"github.com/ayush/sourcing-assistant/backend/internal/extract"
	"github.com/ayush/sourcing-assistant/backend/internal/messaging"
	"github.com/ayush/sourcing-assistant/backend/internal/metrics"
	"github.com/ayush/sourcing-assistant/backend/internal/models"
	"github.com/ayush/sourcing-assistant/backend/internal/platform"
	"github.com/ayush/sourcing-assistant/backend/internal/synth"
)

// DefaultExtractTimeout bounds each call into the page context.
const DefaultExtractTimeout = 3 * time.Second

// Reasons a live extraction attempt can be unavailable. Service.Research
// absorbs all of them into the synthetic fallback.
var (
	ErrNoActiveTab         = errors.New("research: no active tab")
	ErrPrivilegedPage      = errors.New("research: active tab is a privileged page")
	ErrUnsupportedPlatform = errors.New("research: unsupported platform")
	ErrExtractionFailed    = errors.New("research: extraction failed")
	ErrEmptyResult         = errors.New("research: extraction returned no records")
	ErrRemoteUnreachable   = messaging.ErrRemoteUnreachable
)

// Service runs research requests against the user's active tab, falling
// back to synthetic data when the tab cannot supply any.
type Service struct {
	browser browser.Browser
	rules   *extract.Registry
	synth   *synth.Synthesizer
	timeout time.Duration
	log     *zap.Logger
}

// NewService wires the orchestrator. rules must be the registry the
// browser's page agents run, so pages no rule can parse are never loaded.
func NewService(b browser.Browser, rules *extract.Registry, s *synth.Synthesizer, timeout time.Duration, log *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultExtractTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{browser: b, rules: rules, synth: s, timeout: timeout, log: log}
}

// Research answers q with live data from the active tab when possible and
// with synthesized data otherwise. It never fails; live and synthetic
// records are never mixed.
func (s *Service) Research(ctx context.Context, q models.Query) models.Result {
	q = q.WithDefaults()
	start := time.Now()

	res, err := s.Extract(ctx, q)
	if err != nil {
		s.log.Info("live extraction unavailable, using synthetic data",
			zap.String("kind", kindLabel(q.Kind)),
			zap.String("reason", Reason(err)),
			zap.Error(err),
		)
		metrics.ExtractionFallbacks.WithLabelValues(Reason(err)).Inc()
		res = s.synth.Generate(q.Kind, q.Category, q.Region)
	}

	metrics.ResearchRequests.WithLabelValues(kindLabel(q.Kind), string(res.Provenance)).Inc()
	metrics.ResearchDuration.WithLabelValues(string(res.Provenance)).Observe(time.Since(start).Seconds())
	return res
}

// Extract makes a single live attempt: find the active tab, inject the
// page agent and ask it for q.Kind on the detected platform. Each call
// into the page is bounded by the service timeout.
func (s *Service) Extract(ctx context.Context, q models.Query) (models.Result, error) {
	tab, err := s.browser.ActiveTab(ctx)
	if err != nil {
		return models.Result{}, fmt.Errorf("%w: %v", ErrRemoteUnreachable, err)
	}
	if tab == nil {
		return models.Result{}, ErrNoActiveTab
	}
	if browser.Privileged(tab.URL) {
		return models.Result{}, fmt.Errorf("%w: %s", ErrPrivilegedPage, tab.URL)
	}

	p := platform.Detect(tab.URL)
	if p == models.PlatformUnknown {
		return models.Result{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, tab.URL)
	}
	if _, ok := s.rules.Lookup(q.Kind, p); !ok {
		return models.Result{}, fmt.Errorf("%w: no %s rule for %s", ErrUnsupportedPlatform, q.Kind, p)
	}
	log := s.log.With(zap.String("tab", tab.ID), zap.String("platform", string(p)))

	inject := func(ctx context.Context, t models.Tab) (struct{}, error) {
		return struct{}{}, s.browser.Inject(ctx, t)
	}
	if _, err := messaging.Call(ctx, s.timeout, inject, *tab); err != nil {
		if errors.Is(err, ErrRemoteUnreachable) {
			return models.Result{}, err
		}
		return models.Result{}, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	msg := models.ExtractMessage{Action: models.ActionExtractData, Type: q.Kind, Platform: p}
	send := func(ctx context.Context, m models.ExtractMessage) (models.ExtractReply, error) {
		return s.browser.SendMessage(ctx, tab.ID, m)
	}
	reply, err := messaging.Call(ctx, s.timeout, send, msg)
	if err != nil {
		if errors.Is(err, ErrRemoteUnreachable) {
			return models.Result{}, err
		}
		return models.Result{}, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	if !reply.Success {
		if reply.Code == models.CodeUnsupportedPlatform {
			return models.Result{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, reply.Error)
		}
		return models.Result{}, fmt.Errorf("%w: %s", ErrExtractionFailed, reply.Error)
	}
	if reply.Data == nil || reply.Data.Len() == 0 {
		return models.Result{}, ErrEmptyResult
	}

	log.Debug("live extraction succeeded", zap.Int("records", reply.Data.Len()))
	return models.Result{
		Dataset:    *reply.Data,
		Provenance: models.ProvenanceLive,
		Platform:   p,
	}, nil
}

// kindLabel bounds the kind label to the known kinds.
func kindLabel(k models.Kind) string {
	if !k.Valid() {
		return "invalid"
	}
	return string(k)
}

// Reason maps an extraction error to a short metrics label.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoActiveTab):
		return "no_tab"
	case errors.Is(err, ErrPrivilegedPage):
		return "privileged_page"
	case errors.Is(err, ErrUnsupportedPlatform):
		return "unsupported_platform"
	case errors.Is(err, ErrEmptyResult):
		return "empty_result"
	case errors.Is(err, ErrRemoteUnreachable):
		return "remote_unreachable"
	case errors.Is(err, ErrExtractionFailed):
		return "extraction_failed"
	}
	return "other"
}

package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/ayush/sourcing-assistant/backend/internal/content"
	"github.com/ayush/sourcing-assistant/backend/internal/extract"
	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

// RodBrowser drives a real Chrome over the DevTools protocol. Tab IDs are
// CDP target IDs.
type RodBrowser struct {
	browser  *rod.Browser
	registry *extract.Registry
	frames   *frames
}

// NewRodBrowser connects to the Chrome at controlURL, or launches one when
// controlURL is empty.
func NewRodBrowser(ctx context.Context, controlURL string, headless bool, registry *extract.Registry) (*RodBrowser, error) {
	if controlURL == "" {
		u, err := launcher.New().Headless(headless).Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = u
	}
	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	return &RodBrowser{browser: b, registry: registry, frames: newFrames()}, nil
}

// Close disconnects from Chrome.
func (b *RodBrowser) Close() error {
	return b.browser.Close()
}

const focusProbe = `() => document.hasFocus() ? 2 : (document.visibilityState === "visible" ? 1 : 0)`

// ActiveTab returns the focused page, falling back to the first visible one.
func (b *RodBrowser) ActiveTab(ctx context.Context) (*models.Tab, error) {
	pages, err := b.browser.Context(ctx).Pages()
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	var best *models.Tab
	bestScore := 0
	for _, page := range pages {
		info, err := page.Info()
		if err != nil || info.Type != proto.TargetTargetInfoTypePage {
			continue
		}
		res, err := page.Context(ctx).Eval(focusProbe)
		if err != nil {
			continue
		}
		score := res.Value.Int()
		if score > bestScore {
			bestScore = score
			best = &models.Tab{ID: string(info.TargetID), URL: info.URL}
		}
		if score == 2 {
			break
		}
	}
	return best, nil
}

func (b *RodBrowser) Inject(ctx context.Context, tab models.Tab) error {
	page, err := b.browser.PageFromTarget(proto.TargetTargetID(tab.ID))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInjectFailed, err)
	}
	html, err := page.Context(ctx).HTML()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInjectFailed, err)
	}
	doc, err := extract.Parse(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInjectFailed, err)
	}
	b.frames.install(tab.ID, content.NewAgent(tab.URL, doc, b.registry))
	return nil
}

func (b *RodBrowser) SendMessage(ctx context.Context, tabID string, msg models.ExtractMessage) (models.ExtractReply, error) {
	return b.frames.send(ctx, tabID, msg)
}

// Package browser gives the research orchestrator access to the user's
// active tab: finding it, installing the page-side agent into it and sending
// it messages.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ayush/sourcing-assistant/backend/internal/content"
	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

var (
	// ErrNotInjected is returned when a message is sent to a tab that has no agent.
	ErrNotInjected = errors.New("browser: no agent in tab")
	// ErrInjectFailed wraps failures loading a tab's document.
	ErrInjectFailed = errors.New("browser: inject failed")
)

// Browser is the coordinator's view of the user's browser.
type Browser interface {
	// ActiveTab returns the tab the user has focused, or nil when there is none.
	ActiveTab(ctx context.Context) (*models.Tab, error)
	// Inject installs the page-side agent into tab. Injecting again replaces
	// the agent with one reading the current document.
	Inject(ctx context.Context, tab models.Tab) error
	// SendMessage delivers msg to the agent in tabID and returns its reply.
	SendMessage(ctx context.Context, tabID string, msg models.ExtractMessage) (models.ExtractReply, error)
}

var privilegedPrefixes = []string{
	"chrome://",
	"chrome-extension://",
	"edge://",
	"about:",
	"devtools://",
	"view-source:",
}

// Privileged reports whether url is a browser-internal page that must not
// be scripted.
func Privileged(url string) bool {
	for _, p := range privilegedPrefixes {
		if strings.HasPrefix(url, p) {
			return true
		}
	}
	return false
}

type tabKey struct{}

// WithTab attaches the caller's active tab to ctx. Drivers that cannot see
// the user's browser directly read it back with TabFrom.
func WithTab(ctx context.Context, tab models.Tab) context.Context {
	return context.WithValue(ctx, tabKey{}, tab)
}

// TabFrom returns the tab attached by WithTab.
func TabFrom(ctx context.Context) (models.Tab, bool) {
	tab, ok := ctx.Value(tabKey{}).(models.Tab)
	return tab, ok
}

// frames tracks the agent installed in each tab.
type frames struct {
	mu     sync.RWMutex
	agents map[string]*content.Agent
}

func newFrames() *frames {
	return &frames{agents: make(map[string]*content.Agent)}
}

func (f *frames) install(tabID string, a *content.Agent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.agents[tabID] = a
}

func (f *frames) remove(tabID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.agents, tabID)
}

func (f *frames) get(tabID string) (*content.Agent, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	a, ok := f.agents[tabID]
	return a, ok
}

func (f *frames) send(ctx context.Context, tabID string, msg models.ExtractMessage) (models.ExtractReply, error) {
	a, ok := f.get(tabID)
	if !ok {
		return models.ExtractReply{}, fmt.Errorf("%w: %s", ErrNotInjected, tabID)
	}
	return a.Handle(ctx, msg)
}

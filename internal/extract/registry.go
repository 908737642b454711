// Package extract turns parsed supplier and trade-data pages into structured
// records. Rules are registered per (kind, platform) pair.
package extract

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

var (
	// ErrUnsupportedCombination is returned when no rule exists for the
	// requested kind and platform.
	ErrUnsupportedCombination = errors.New("extract: no rule for kind/platform")
	// ErrExtractionFailed wraps a failure raised while querying the document.
	ErrExtractionFailed = errors.New("extract: extraction failed")
)

// Rule reads records of one kind out of a page. Rules must not modify doc.
type Rule func(doc *goquery.Document) models.Dataset

// Pair identifies a registered rule.
type Pair struct {
	Kind     models.Kind
	Platform models.Platform
}

// Registry maps (kind, platform) pairs to rules.
type Registry struct {
	mu    sync.RWMutex
	rules map[Pair]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[Pair]Rule)}
}

// Default returns a registry holding the built-in rules.
func Default() *Registry {
	r := NewRegistry()
	for _, s := range supplierRules {
		r.Register(models.KindSuppliers, s.platform, s.extract)
	}
	r.Register(models.KindTrade, models.PlatformComtrade, extractTrade)
	r.Register(models.KindEconomic, models.PlatformTradingEconomics, extractEconomic)
	r.Register(models.KindNews, models.PlatformNews, extractNews)
	return r
}

// Register adds or replaces the rule for a pair.
func (r *Registry) Register(kind models.Kind, platform models.Platform, rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[Pair{Kind: kind, Platform: platform}] = rule
}

// Lookup returns the rule for a pair.
func (r *Registry) Lookup(kind models.Kind, platform models.Platform) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[Pair{Kind: kind, Platform: platform}]
	return rule, ok
}

// Pairs lists the registered pairs in a stable order.
func (r *Registry) Pairs() []Pair {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Pair, 0, len(r.rules))
	for p := range r.rules {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Platform < out[j].Platform
	})
	return out
}

// Extract runs the rule for (kind, platform) against doc. A page with no
// matching elements yields an empty dataset and no error.
func (r *Registry) Extract(doc *goquery.Document, kind models.Kind, platform models.Platform) (ds models.Dataset, err error) {
	rule, ok := r.Lookup(kind, platform)
	if !ok {
		return models.Dataset{}, fmt.Errorf("%w: %s on %s", ErrUnsupportedCombination, kind, platform)
	}
	if doc == nil {
		return models.Dataset{}, fmt.Errorf("%w: no document", ErrExtractionFailed)
	}
	defer func() {
		if rec := recover(); rec != nil {
			ds = models.Dataset{}
			err = fmt.Errorf("%w: %v", ErrExtractionFailed, rec)
		}
	}()
	return rule(doc), nil
}

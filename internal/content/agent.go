// Package content is the page-side half of research extraction. An Agent is
// installed into a tab with a snapshot of its document and answers
// extractData messages.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/ayush/sourcing-assistant/backend/internal/extract"
	"github.com/ayush/sourcing-assistant/backend/internal/models"
	"github.com/ayush/sourcing-assistant/backend/internal/platform"
)

// Agent holds one page's document. It never modifies the document.
type Agent struct {
	url      string
	doc      *goquery.Document
	registry *extract.Registry
}

// NewAgent returns an agent for the page at url.
func NewAgent(url string, doc *goquery.Document, registry *extract.Registry) *Agent {
	return &Agent{url: url, doc: doc, registry: registry}
}

// Handle answers an extraction message. Failures are reported in the reply,
// never as an error, the same way a content script answers sendMessage.
func (a *Agent) Handle(_ context.Context, msg models.ExtractMessage) (models.ExtractReply, error) {
	if msg.Action != models.ActionExtractData {
		return failed(models.CodeExtractionFailed, fmt.Sprintf("unsupported action %q", msg.Action)), nil
	}
	if !msg.Type.Valid() {
		return failed(models.CodeUnsupportedPlatform, "Unsupported data extraction type"), nil
	}

	ds, err := a.registry.Extract(a.doc, msg.Type, msg.Platform)
	switch {
	case errors.Is(err, extract.ErrUnsupportedCombination):
		return failed(models.CodeUnsupportedPlatform, err.Error()), nil
	case err != nil:
		return failed(models.CodeExtractionFailed, err.Error()), nil
	}
	return models.ExtractReply{Success: true, Data: &ds}, nil
}

// Announce reports whether the page is a known platform worth researching.
func (a *Agent) Announce() (models.DataAvailable, bool) {
	return platform.Announce(a.url)
}

func failed(code, msg string) models.ExtractReply {
	return models.ExtractReply{Success: false, Error: msg, Code: code}
}

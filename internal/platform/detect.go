// Package platform maps page addresses to the supplier and trade-data sites
// the extraction rules understand.
package platform

import (
	"net/url"
	"strings"

	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

type rule struct {
	substr   string
	platform models.Platform
}

// rules are checked in order; the first match wins.
var rules = []rule{
	{"thomasnet", models.PlatformThomasNet},
	{"indiamart", models.PlatformIndiaMART},
	{"alibaba", models.PlatformAlibaba},
	{"comtrade.un.org", models.PlatformComtrade},
	{"tradingeconomics", models.PlatformTradingEconomics},
	{"news.google", models.PlatformNews},
}

// Detect returns the platform whose marker substring appears in rawURL.
// Matching is case-sensitive. It never fails; unmatched input yields
// PlatformUnknown.
func Detect(rawURL string) models.Platform {
	for _, r := range rules {
		if strings.Contains(rawURL, r.substr) {
			return r.platform
		}
	}
	return models.PlatformUnknown
}

// DetectHost lower-cases the hostname of rawURL before matching, the way a
// page announces itself on load. Unparseable input falls back to Detect on
// the lower-cased string.
func DetectHost(rawURL string) models.Platform {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return Detect(strings.ToLower(rawURL))
	}
	return Detect(strings.ToLower(u.Hostname()))
}

// DefaultKind returns the data kind a platform naturally serves, or "" for
// PlatformUnknown.
func DefaultKind(p models.Platform) models.Kind {
	switch p {
	case models.PlatformThomasNet, models.PlatformIndiaMART, models.PlatformAlibaba:
		return models.KindSuppliers
	case models.PlatformComtrade:
		return models.KindTrade
	case models.PlatformTradingEconomics:
		return models.KindEconomic
	case models.PlatformNews:
		return models.KindNews
	}
	return ""
}

// Announce builds the dataAvailable notice for a page, or returns false when
// the page is not a known platform.
func Announce(rawURL string) (models.DataAvailable, bool) {
	p := DetectHost(rawURL)
	if p == models.PlatformUnknown {
		return models.DataAvailable{}, false
	}
	return models.DataAvailable{
		Action:   models.ActionDataAvailable,
		Type:     DefaultKind(p),
		Platform: p,
		URL:      rawURL,
	}, true
}

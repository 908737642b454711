package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// candidates returns the elements matched by the first pattern that matches
// anything. Sites vary their markup, so patterns are tried in order.
func candidates(doc *goquery.Document, patterns []string) *goquery.Selection {
	for _, p := range patterns {
		if sel := doc.Find(p); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Slice(0, 0)
}

// text returns the first non-empty trimmed text found under s, trying
// patterns in order and, within a pattern, elements in document order.
func text(s *goquery.Selection, patterns ...string) string {
	for _, p := range patterns {
		var found string
		s.Find(p).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			found = strings.TrimSpace(el.Text())
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

package chat

import (
	"regexp"
	"strings"

	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

var researchKeywords = []string{
	"research", "suppliers", "market", "trends", "pricing",
	"find suppliers", "market analysis", "supplier data", "scrape",
}

var strategyKeywords = []string{
	"strategy", "kraljic", "swot", "category strategy", "tco", "analysis",
}

var categoryKeywords = []string{
	"electronics", "software", "hardware", "components", "manufacturing", "telecom", "IT", "technology",
}

var regionKeywords = []string{
	"USA", "Europe", "Asia", "China", "India", "Germany", "Singapore", "global",
}

// "IT" only counts as the acronym, never as a fragment of another word.
var itPattern = regexp.MustCompile(`\bIT\b`)

// IsMarketResearch reports whether a message asks for market data.
func IsMarketResearch(msg string) bool {
	return containsAny(strings.ToLower(msg), researchKeywords)
}

// IsStrategy reports whether a message asks for strategic analysis.
func IsStrategy(msg string) bool {
	return containsAny(strings.ToLower(msg), strategyKeywords)
}

// ExtractCategory returns the first category keyword found in msg.
func ExtractCategory(msg string) string {
	lower := strings.ToLower(msg)
	for _, kw := range categoryKeywords {
		if kw == "IT" {
			if itPattern.MatchString(msg) {
				return kw
			}
			continue
		}
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return models.DefaultChatCategory
}

// ExtractRegion returns the first region keyword found in msg, matched
// case-insensitively but returned in its canonical spelling.
func ExtractRegion(msg string) string {
	lower := strings.ToLower(msg)
	for _, kw := range regionKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return kw
		}
	}
	return models.DefaultRegion
}

// StrategyPrompt asks the model for a structured strategic analysis of msg.
func StrategyPrompt(msg string) string {
	return msg + `

Please provide a comprehensive strategic analysis including:
1. Key considerations and framework recommendations
2. Risk assessment and mitigation strategies
3. Implementation roadmap
4. Success metrics and KPIs

Use strategic sourcing frameworks like Kraljic Matrix, SWOT analysis, or TCO modeling where appropriate.`
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

package chat

import (
	"fmt"
	"strings"

	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

const notSpecified = "Not specified"

// RenderResearch formats a research result as the markdown reply shown in
// the chat.
func RenderResearch(category, region string, res models.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I've conducted market research for \"%s\" in \"%s\". Here are the findings:\n\n", category, region)
	b.WriteString("**MARKET RESEARCH RESULTS**\n\n")

	if len(res.Suppliers) > 0 {
		b.WriteString("**Top Suppliers:**\n")
		for _, s := range res.Suppliers {
			fmt.Fprintf(&b, "• **%s** (%s)\n", s.Name, orUnspecified(s.Location))
			fmt.Fprintf(&b, "  - Specialization: %s\n", orUnspecified(s.Specialization))
			fmt.Fprintf(&b, "  - Rating: %s\n", orUnspecified(s.Rating))
			fmt.Fprintf(&b, "  - Experience: %s\n", orUnspecified(s.Experience))
			fmt.Fprintf(&b, "  - Contact: %s\n", orUnspecified(s.Contact))
			fmt.Fprintf(&b, "  - Certifications: %s\n\n", orUnspecified(strings.Join(s.Certifications, ", ")))
		}
	}

	if len(res.Trends) > 0 {
		b.WriteString("**Market Trends:**\n")
		for _, t := range res.Trends {
			fmt.Fprintf(&b, "• **%s** (%s Impact)\n", t.Title, orUnspecified(t.Impact))
			fmt.Fprintf(&b, "  - Description: %s\n", orUnspecified(t.Description))
			fmt.Fprintf(&b, "  - Timeframe: %s\n", orUnspecified(t.Timeframe))
			fmt.Fprintf(&b, "  - Growth: %s\n\n", orUnspecified(t.Growth))
		}
	}

	if len(res.News) > 0 {
		b.WriteString("**Recent News:**\n")
		for _, n := range res.News {
			if n.Relevance != "" {
				fmt.Fprintf(&b, "• **%s** (%s Relevance)\n", n.Title, n.Relevance)
			} else {
				fmt.Fprintf(&b, "• **%s**\n", n.Title)
			}
			fmt.Fprintf(&b, "  - %s\n", orUnspecified(n.Summary))
			fmt.Fprintf(&b, "  - Source: %s | Date: %s\n\n", orUnspecified(n.Source), orUnspecified(n.Date))
		}
	}

	if res.Synthetic() {
		b.WriteString("*Data gathered from multiple sources including supplier databases, trade publications, and market intelligence platforms.*")
	} else {
		fmt.Fprintf(&b, "*Data extracted from %s.*", res.Platform.DisplayName())
	}
	return b.String()
}

func orUnspecified(v string) string {
	if strings.TrimSpace(v) == "" {
		return notSpecified
	}
	return v
}

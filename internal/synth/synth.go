// Package synth generates plausible placeholder market data when live
// extraction is unavailable. Everything it returns is synthetic and is marked
// as such; none of it describes real companies.
package synth

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

// NotSupportedMessage is the sentinel message for kinds with no generator.
const NotSupportedMessage = "Data type not supported"

const dateLayout = "2006-01-02"

// Synthesizer builds fallback datasets. Output depends only on the inputs
// and on the current UTC date, which stamps news items.
type Synthesizer struct {
	now func() time.Time
}

// New returns a Synthesizer reading the wall clock.
func New() *Synthesizer {
	return &Synthesizer{now: time.Now}
}

// NewWithClock returns a Synthesizer using the given clock.
func NewWithClock(now func() time.Time) *Synthesizer {
	return &Synthesizer{now: now}
}

// Generate returns the fallback result for kind. Unsupported kinds return a
// result carrying NotSupportedMessage and no records.
func (s *Synthesizer) Generate(kind models.Kind, category, region string) models.Result {
	q := models.Query{Kind: kind, Category: category, Region: region}.WithDefaults()
	res := models.Result{Provenance: models.ProvenanceSynthetic}
	switch kind {
	case models.KindSuppliers:
		res.Suppliers = suppliers(q.Category, q.Region)
		res.Trends = marketTrends(q.Category, q.Region)
		res.News = s.marketNews(q.Category, q.Region)
	case models.KindTrends:
		res.Trends = trendsOnly(q.Category, q.Region)
	case models.KindNews:
		res.News = s.newsOnly(q.Category, q.Region)
	default:
		res.Message = NotSupportedMessage
	}
	return res
}

// Supported reports whether Generate produces records for kind.
func Supported(kind models.Kind) bool {
	switch kind {
	case models.KindSuppliers, models.KindTrends, models.KindNews:
		return true
	}
	return false
}

// daysAgo formats the UTC calendar date n days before now.
func (s *Synthesizer) daysAgo(n int) string {
	return s.now().UTC().AddDate(0, 0, -n).Format(dateLayout)
}

// locationsFor picks headquarters for the three generated suppliers. This is
// a presentation heuristic, not data. Region names match exactly.
func locationsFor(region string) [3]string {
	switch region {
	case "Asia":
		return [3]string{"Singapore", "Singapore", "Singapore (Shanghai, China branch)"}
	case "Europe":
		return [3]string{region, "California, USA", "Munich, Germany"}
	case models.DefaultRegion:
		return [3]string{"Multiple Locations", "California, USA", "Shanghai, China"}
	default:
		return [3]string{region, "California, USA", "Shanghai, China"}
	}
}

// domainLabel turns a category into something usable in an email domain.
func domainLabel(category string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(category) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func suppliers(category, region string) []models.SupplierRecord {
	loc := locationsFor(region)
	domain := domainLabel(category)
	return []models.SupplierRecord{
		{
			Name:           fmt.Sprintf("%s %s Solutions Inc.", region, category),
			Location:       loc[0],
			Specialization: fmt.Sprintf("%s products and services", category),
			Rating:         "4.5/5",
			Contact:        fmt.Sprintf("contact@%ssolutions.com", domain),
			Certifications: []string{"ISO 9001", "ISO 27001"},
			Experience:     "15+ years",
			Employees:      "500-1000",
			Revenue:        "$50M-100M",
			KeyProducts:    []string{"Premium " + category, "Industrial " + category, "Custom " + category},
		},
		{
			Name:           fmt.Sprintf("Advanced %s Group", category),
			Location:       loc[1],
			Specialization: fmt.Sprintf("Premium %s manufacturing", category),
			Rating:         "4.7/5",
			Contact:        fmt.Sprintf("sales@advanced%s.com", domain),
			Certifications: []string{"ISO 9001", "RoHS", "CE Marking"},
			Experience:     "20+ years",
			Employees:      "1000+",
			Revenue:        "$100M+",
			KeyProducts:    []string{"High-end " + category, "Enterprise " + category, "OEM " + category},
		},
		{
			Name:           fmt.Sprintf("Global %s Partners", category),
			Location:       loc[2],
			Specialization: fmt.Sprintf("Industrial %s solutions", category),
			Rating:         "4.3/5",
			Contact:        fmt.Sprintf("info@global%s.com", domain),
			Certifications: []string{"ISO 9001", "OHSAS 18001", "ISO 14001"},
			Experience:     "12+ years",
			Employees:      "200-500",
			Revenue:        "$25M-50M",
			KeyProducts:    []string{"Standard " + category, "Bulk " + category, "Custom solutions"},
		},
	}
}

func marketTrends(category, region string) []models.TrendRecord {
	return []models.TrendRecord{
		{
			Title:       fmt.Sprintf("%s Market Digitization", category),
			Impact:      models.ImpactHigh,
			Description: fmt.Sprintf("Increasing adoption of digital technologies in %s sector", category),
			Timeframe:   "2024-2026",
			Regions:     []string{region},
			Growth:      "+25% annually",
			Drivers:     []string{"Digital transformation", "IoT integration", "AI adoption"},
		},
		{
			Title:       "Supply Chain Resilience",
			Impact:      models.ImpactMedium,
			Description: "Focus on building more resilient supply chains",
			Timeframe:   "2024-2025",
			Regions:     []string{"Global"},
			Growth:      "+15% investment",
			Drivers:     []string{"Risk mitigation", "Diversification", "Local sourcing"},
		},
		{
			Title:       "Sustainability Focus",
			Impact:      models.ImpactHigh,
			Description: "Growing emphasis on sustainable sourcing practices",
			Timeframe:   "2024-2027",
			Regions:     []string{"Global"},
			Growth:      "+30% in green initiatives",
			Drivers:     []string{"ESG requirements", "Carbon neutrality", "Circular economy"},
		},
	}
}

func (s *Synthesizer) marketNews(category, region string) []models.NewsRecord {
	return []models.NewsRecord{
		{
			Title:     fmt.Sprintf("%s Market Shows Strong Growth in %s", category, region),
			Summary:   fmt.Sprintf("Latest market analysis reveals significant expansion in %s sector with new opportunities emerging", category),
			Source:    "Industry Weekly",
			Date:      s.daysAgo(0),
			Relevance: "High",
			Impact:    "Positive",
		},
		{
			Title:     "New Trade Agreements Boost Sourcing Opportunities",
			Summary:   fmt.Sprintf("Recent trade deals create new pathways for %s procurement in %s", category, region),
			Source:    "Trade Journal",
			Date:      s.daysAgo(1),
			Relevance: "Medium",
			Impact:    "Positive",
		},
		{
			Title:     "Supply Chain Innovations Transform Industry",
			Summary:   fmt.Sprintf("New technologies and methodologies are revolutionizing %s supply chains", category),
			Source:    "Supply Chain Today",
			Date:      s.daysAgo(2),
			Relevance: "High",
			Impact:    "Transformative",
		},
	}
}

func trendsOnly(category, region string) []models.TrendRecord {
	return []models.TrendRecord{
		{
			Title:       fmt.Sprintf("%s Market Evolution", category),
			Impact:      models.ImpactHigh,
			Description: fmt.Sprintf("Rapid transformation in %s market dynamics", category),
			Timeframe:   "2024-2026",
			Regions:     []string{region},
			Growth:      "+35% market expansion",
		},
		{
			Title:       "Digital Supply Chain Integration",
			Impact:      models.ImpactMedium,
			Description: "Integration of digital technologies across supply chains",
			Timeframe:   "2024-2025",
			Regions:     []string{"Global"},
			Growth:      "+20% adoption rate",
		},
	}
}

func (s *Synthesizer) newsOnly(category, region string) []models.NewsRecord {
	return []models.NewsRecord{
		{
			Title:     fmt.Sprintf("Breaking: %s Industry Milestone in %s", category, region),
			Summary:   fmt.Sprintf("Major breakthrough announced in %s sector with implications for sourcing strategies", category),
			Source:    "Industry News",
			Date:      s.daysAgo(0),
			Relevance: "High",
		},
		{
			Title:     "Market Analysis: Future of Procurement",
			Summary:   "Comprehensive analysis of emerging trends in procurement and sourcing",
			Source:    "Procurement Today",
			Date:      s.daysAgo(1),
			Relevance: "Medium",
		},
	}
}

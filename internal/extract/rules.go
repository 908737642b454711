package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

// Placeholders written into fields a rule produces but the page lacks.
const (
	PlaceholderLocation      = "Location not specified"
	PlaceholderDescription   = "No description available"
	PlaceholderIndiaLocation = "India"
	PlaceholderProducts      = "Various products"
	PlaceholderChinaLocation = "China"
	PlaceholderExperience    = "Not specified"
	PlaceholderCountry       = "Not specified"
	PlaceholderChange        = "No change data"
	PlaceholderSummary       = "No summary available"
	PlaceholderNewsSource    = "Unknown source"
	PlaceholderDate          = "Date not specified"
)

type supplierField struct {
	selectors []string
	fallback  string
	set       func(*models.SupplierRecord, string)
}

type supplierRule struct {
	platform models.Platform
	cards    []string
	name     []string
	fields   []supplierField
}

func setLocation(r *models.SupplierRecord, v string)       { r.Location = v }
func setDescription(r *models.SupplierRecord, v string)    { r.Description = v }
func setSpecialization(r *models.SupplierRecord, v string) { r.Specialization = v }
func setExperience(r *models.SupplierRecord, v string)     { r.Experience = v }

var supplierRules = []supplierRule{
	{
		platform: models.PlatformThomasNet,
		cards:    []string{".supplier-card", ".company-card"},
		name:     []string{".company-name", ".supplier-name"},
		fields: []supplierField{
			{[]string{".location", ".address"}, PlaceholderLocation, setLocation},
			{[]string{".description", ".summary"}, PlaceholderDescription, setDescription},
		},
	},
	{
		platform: models.PlatformIndiaMART,
		cards:    []string{".company-details", ".seller-info"},
		name:     []string{".company-name", ".seller-name"},
		fields: []supplierField{
			{[]string{".location", ".city"}, PlaceholderIndiaLocation, setLocation},
			{[]string{".products", ".categories"}, PlaceholderProducts, setSpecialization},
		},
	},
	{
		platform: models.PlatformAlibaba,
		cards:    []string{".supplier-card", ".company-info"},
		name:     []string{".company-name", ".supplier-name"},
		fields: []supplierField{
			{[]string{".country", ".location"}, PlaceholderChinaLocation, setLocation},
			{[]string{".years", ".experience"}, PlaceholderExperience, setExperience},
		},
	},
}

func (s supplierRule) extract(doc *goquery.Document) models.Dataset {
	var out []models.SupplierRecord
	candidates(doc, s.cards).Each(func(_ int, card *goquery.Selection) {
		name := text(card, s.name...)
		if name == "" {
			return
		}
		rec := models.SupplierRecord{Name: name, Source: s.platform}
		for _, f := range s.fields {
			f.set(&rec, orDefault(text(card, f.selectors...), f.fallback))
		}
		out = append(out, rec)
	})
	return models.Dataset{Suppliers: out}
}

func extractTrade(doc *goquery.Document) models.Dataset {
	var out []models.TradeRecord
	candidates(doc, []string{"table tr", ".data-row"}).Each(func(_ int, row *goquery.Selection) {
		commodity := text(row, ".commodity", ".product")
		value := text(row, ".value", ".amount")
		if commodity == "" || value == "" {
			return
		}
		out = append(out, models.TradeRecord{
			Commodity: commodity,
			Value:     value,
			Country:   orDefault(text(row, ".country", ".partner"), PlaceholderCountry),
			Source:    models.PlatformComtrade,
		})
	})
	return models.Dataset{TradeData: out}
}

func extractEconomic(doc *goquery.Document) models.Dataset {
	var out []models.EconomicRecord
	candidates(doc, []string{".indicator", ".economic-data"}).Each(func(_ int, el *goquery.Selection) {
		name := text(el, ".indicator-name", ".title")
		value := text(el, ".value", ".current")
		if name == "" || value == "" {
			return
		}
		out = append(out, models.EconomicRecord{
			Indicator: name,
			Value:     value,
			Change:    orDefault(text(el, ".change", ".variation"), PlaceholderChange),
			Source:    models.PlatformTradingEconomics,
		})
	})
	return models.Dataset{EconomicData: out}
}

func extractNews(doc *goquery.Document) models.Dataset {
	var out []models.NewsRecord
	candidates(doc, []string{"article", ".news-item", ".story"}).Each(func(_ int, el *goquery.Selection) {
		headline := text(el, "h3", ".headline", ".title")
		if headline == "" {
			return
		}
		out = append(out, models.NewsRecord{
			Title:    headline,
			Summary:  orDefault(text(el, ".summary", ".description"), PlaceholderSummary),
			Source:   orDefault(text(el, ".source", ".publisher"), PlaceholderNewsSource),
			Date:     orDefault(text(el, ".date", ".timestamp"), PlaceholderDate),
			Platform: models.PlatformNews,
		})
	})
	return models.Dataset{News: out}
}

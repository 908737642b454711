package extract

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

func mustParse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := ParseString(html)
	require.NoError(t, err)
	return doc
}

func TestExtract_emptyDocumentEveryPair(t *testing.T) {
	reg := Default()
	doc := mustParse(t, `<html><body><p>nothing to see</p></body></html>`)
	pairs := reg.Pairs()
	require.Len(t, pairs, 6)
	for _, p := range pairs {
		t.Run(string(p.Kind)+"/"+string(p.Platform), func(t *testing.T) {
			ds, err := reg.Extract(doc, p.Kind, p.Platform)
			require.NoError(t, err)
			assert.Equal(t, 0, ds.Len())
		})
	}
}

func TestExtract_unsupportedCombination(t *testing.T) {
	reg := Default()
	doc := mustParse(t, `<div class="supplier-card"><span class="company-name">Acme</span></div>`)

	_, err := reg.Extract(doc, models.KindSuppliers, models.PlatformUnknown)
	assert.ErrorIs(t, err, ErrUnsupportedCombination)

	_, err = reg.Extract(doc, models.KindTrends, models.PlatformThomasNet)
	assert.ErrorIs(t, err, ErrUnsupportedCombination)
}

func TestExtract_identityMissing(t *testing.T) {
	reg := Default()
	tests := []struct {
		kind     models.Kind
		platform models.Platform
		html     string
	}{
		{models.KindSuppliers, models.PlatformThomasNet, `<div class="supplier-card"><span class="location">Ohio</span><p class="description">Valves</p></div>`},
		{models.KindSuppliers, models.PlatformIndiaMART, `<div class="seller-info"><span class="city">Pune</span></div>`},
		{models.KindSuppliers, models.PlatformAlibaba, `<div class="company-info"><span class="country">Vietnam</span><span class="years">5 yrs</span></div>`},
		{models.KindTrade, models.PlatformComtrade, `<table><tr><td class="value">100</td><td class="country">US</td></tr></table>`},
		{models.KindEconomic, models.PlatformTradingEconomics, `<div class="indicator"><span class="value">2.1%</span></div>`},
		{models.KindNews, models.PlatformNews, `<article><p class="summary">Prices up</p></article>`},
	}
	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			ds, err := reg.Extract(mustParse(t, tt.html), tt.kind, tt.platform)
			require.NoError(t, err)
			assert.Equal(t, 0, ds.Len())
		})
	}
}

func TestExtract_whitespaceOnlyIdentitySkipped(t *testing.T) {
	doc := mustParse(t, `<div class="supplier-card"><span class="company-name">   </span></div>`)
	ds, err := Default().Extract(doc, models.KindSuppliers, models.PlatformThomasNet)
	require.NoError(t, err)
	assert.Empty(t, ds.Suppliers)
}

func TestExtract_placeholders(t *testing.T) {
	reg := Default()

	ds, err := reg.Extract(mustParse(t, `<div class="company-card"><h2 class="company-name"> Acme Valves </h2></div>`),
		models.KindSuppliers, models.PlatformThomasNet)
	require.NoError(t, err)
	assert.Equal(t, []models.SupplierRecord{{
		Name:        "Acme Valves",
		Location:    "Location not specified",
		Description: "No description available",
		Source:      models.PlatformThomasNet,
	}}, ds.Suppliers)

	ds, err = reg.Extract(mustParse(t, `<div class="company-details"><b class="seller-name">Pune Castings</b></div>`),
		models.KindSuppliers, models.PlatformIndiaMART)
	require.NoError(t, err)
	assert.Equal(t, []models.SupplierRecord{{
		Name:           "Pune Castings",
		Location:       "India",
		Specialization: "Various products",
		Source:         models.PlatformIndiaMART,
	}}, ds.Suppliers)

	ds, err = reg.Extract(mustParse(t, `<div class="supplier-card"><a class="supplier-name">Shenzhen PCB</a></div>`),
		models.KindSuppliers, models.PlatformAlibaba)
	require.NoError(t, err)
	assert.Equal(t, []models.SupplierRecord{{
		Name:       "Shenzhen PCB",
		Location:   "China",
		Experience: "Not specified",
		Source:     models.PlatformAlibaba,
	}}, ds.Suppliers)

	ds, err = reg.Extract(mustParse(t, `<div class="data-row"><span class="product">Copper</span><span class="amount">$4.2B</span></div>`),
		models.KindTrade, models.PlatformComtrade)
	require.NoError(t, err)
	assert.Equal(t, []models.TradeRecord{{
		Commodity: "Copper", Value: "$4.2B", Country: "Not specified", Source: models.PlatformComtrade,
	}}, ds.TradeData)

	ds, err = reg.Extract(mustParse(t, `<div class="economic-data"><h4 class="title">GDP Growth</h4><span class="current">5.2%</span></div>`),
		models.KindEconomic, models.PlatformTradingEconomics)
	require.NoError(t, err)
	assert.Equal(t, []models.EconomicRecord{{
		Indicator: "GDP Growth", Value: "5.2%", Change: "No change data", Source: models.PlatformTradingEconomics,
	}}, ds.EconomicData)

	ds, err = reg.Extract(mustParse(t, `<div class="story"><span class="headline">Steel tariffs eased</span></div>`),
		models.KindNews, models.PlatformNews)
	require.NoError(t, err)
	assert.Equal(t, []models.NewsRecord{{
		Title:    "Steel tariffs eased",
		Summary:  "No summary available",
		Source:   "Unknown source",
		Date:     "Date not specified",
		Platform: models.PlatformNews,
	}}, ds.News)
}

func TestExtract_fullThomasNetCards(t *testing.T) {
	html := `
<div class="supplier-card">
  <span class="company-name">Acme Valves</span>
  <span class="location">Cleveland, OH</span>
  <p class="description">Industrial valves</p>
</div>
<div class="supplier-card">
  <span class="supplier-name">Beta Pumps</span>
  <span class="location"></span>
  <span class="address">Dayton, OH</span>
  <p class="summary">Centrifugal pumps</p>
</div>`
	ds, err := Default().Extract(mustParse(t, html), models.KindSuppliers, models.PlatformThomasNet)
	require.NoError(t, err)
	require.Len(t, ds.Suppliers, 2)
	assert.Equal(t, "Acme Valves", ds.Suppliers[0].Name)
	assert.Equal(t, "Cleveland, OH", ds.Suppliers[0].Location)
	assert.Equal(t, "Industrial valves", ds.Suppliers[0].Description)
	// Empty .location falls through to .address.
	assert.Equal(t, "Dayton, OH", ds.Suppliers[1].Location)
	assert.Equal(t, "Centrifugal pumps", ds.Suppliers[1].Description)
}

func TestExtract_firstMatchingContainerPatternWins(t *testing.T) {
	html := `
<div class="supplier-card"><span class="company-name">From supplier card</span></div>
<div class="company-card"><span class="company-name">From company card</span></div>`
	ds, err := Default().Extract(mustParse(t, html), models.KindSuppliers, models.PlatformThomasNet)
	require.NoError(t, err)
	require.Len(t, ds.Suppliers, 1)
	assert.Equal(t, "From supplier card", ds.Suppliers[0].Name)
}

func TestExtract_tradeTableSkipsHeader(t *testing.T) {
	html := `<table>
<tr><th>Commodity</th><th>Value</th></tr>
<tr><td class="commodity">Soybeans</td><td class="value">$1.1B</td><td class="partner">Brazil</td></tr>
</table>`
	ds, err := Default().Extract(mustParse(t, html), models.KindTrade, models.PlatformComtrade)
	require.NoError(t, err)
	assert.Equal(t, []models.TradeRecord{{
		Commodity: "Soybeans", Value: "$1.1B", Country: "Brazil", Source: models.PlatformComtrade,
	}}, ds.TradeData)
}

func TestExtract_idempotentAndReadOnly(t *testing.T) {
	html := `<article><h3>Chip shortage easing</h3><p class="summary">Lead times fall</p><span class="publisher">Reuters</span><time class="date">2026-10-01</time></article>
<article><h3>Freight rates climb</h3></article>`
	doc := mustParse(t, html)
	before, err := doc.Html()
	require.NoError(t, err)

	reg := Default()
	first, err := reg.Extract(doc, models.KindNews, models.PlatformNews)
	require.NoError(t, err)
	second, err := reg.Extract(doc, models.KindNews, models.PlatformNews)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first.News, 2)
	assert.Equal(t, "Reuters", first.News[0].Source)
	assert.Equal(t, "2026-10-01", first.News[0].Date)

	after, err := doc.Html()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestExtract_panicBecomesExtractionFailed(t *testing.T) {
	reg := NewRegistry()
	reg.Register(models.KindSuppliers, models.PlatformThomasNet, func(*goquery.Document) models.Dataset {
		panic("selector engine exploded")
	})
	_, err := reg.Extract(mustParse(t, `<p></p>`), models.KindSuppliers, models.PlatformThomasNet)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestExtract_nilDocument(t *testing.T) {
	_, err := Default().Extract(nil, models.KindNews, models.PlatformNews)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestRegister_replacesRule(t *testing.T) {
	reg := Default()
	reg.Register(models.KindNews, models.PlatformNews, func(*goquery.Document) models.Dataset {
		return models.Dataset{News: []models.NewsRecord{{Title: "custom"}}}
	})
	ds, err := reg.Extract(mustParse(t, `<p></p>`), models.KindNews, models.PlatformNews)
	require.NoError(t, err)
	assert.Equal(t, "custom", ds.News[0].Title)
	assert.Len(t, reg.Pairs(), 6)
}

package models

import "strings"

// Platform identifies a website the extraction rules know how to parse.
type Platform string

const (
	PlatformThomasNet        Platform = "thomasnet"
	PlatformIndiaMART        Platform = "indiamart"
	PlatformAlibaba          Platform = "alibaba"
	PlatformComtrade         Platform = "comtrade"
	PlatformTradingEconomics Platform = "tradingeconomics"
	PlatformNews             Platform = "news"
	PlatformUnknown          Platform = "unknown"
)

var platformNames = map[Platform]string{
	PlatformThomasNet:        "ThomasNet",
	PlatformIndiaMART:        "IndiaMART",
	PlatformAlibaba:          "Alibaba",
	PlatformComtrade:         "UN Comtrade",
	PlatformTradingEconomics: "Trading Economics",
	PlatformNews:             "Google News",
}

// DisplayName returns the human-readable site name, or "Unknown" for
// platforms without one.
func (p Platform) DisplayName() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Kind is the category of market data a research request asks for.
type Kind string

const (
	KindSuppliers Kind = "suppliers"
	KindTrends    Kind = "trends"
	KindNews      Kind = "news"
	KindTrade     Kind = "trade"
	KindEconomic  Kind = "economic"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSuppliers, KindTrends, KindNews, KindTrade, KindEconomic:
		return true
	}
	return false
}

// Provenance records where a result's data came from.
type Provenance string

const (
	ProvenanceLive      Provenance = "live"
	ProvenanceSynthetic Provenance = "synthetic"
)

// Impact levels used by trend records.
const (
	ImpactLow    = "Low"
	ImpactMedium = "Medium"
	ImpactHigh   = "High"
)

// SupplierRecord is a single supplier listing. Only Name is guaranteed;
// which optional fields are present depends on the rule that produced it.
type SupplierRecord struct {
	Name           string   `json:"name"`
	Location       string   `json:"location,omitempty"`
	Specialization string   `json:"specialization,omitempty"`
	Description    string   `json:"description,omitempty"`
	Rating         string   `json:"rating,omitempty"`
	Contact        string   `json:"contact,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Experience     string   `json:"experience,omitempty"`
	Employees      string   `json:"employees,omitempty"`
	Revenue        string   `json:"revenue,omitempty"`
	KeyProducts    []string `json:"keyProducts,omitempty"`
	Source         Platform `json:"source,omitempty"`
}

// TrendRecord describes a market trend.
type TrendRecord struct {
	Title       string   `json:"title"`
	Impact      string   `json:"impact"`
	Description string   `json:"description"`
	Timeframe   string   `json:"timeframe"`
	Regions     []string `json:"regions"`
	Growth      string   `json:"growth"`
	Drivers     []string `json:"drivers,omitempty"`
}

// NewsRecord is a news item. Source is the publisher; Platform is set on
// records extracted from a live page.
type NewsRecord struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Source    string   `json:"source"`
	Date      string   `json:"date"`
	Relevance string   `json:"relevance,omitempty"`
	Impact    string   `json:"impact,omitempty"`
	Platform  Platform `json:"platform,omitempty"`
}

// TradeRecord is one row of commodity trade data.
type TradeRecord struct {
	Commodity string   `json:"commodity"`
	Value     string   `json:"value"`
	Country   string   `json:"country"`
	Source    Platform `json:"source"`
}

// EconomicRecord is one economic indicator reading.
type EconomicRecord struct {
	Indicator string   `json:"indicator"`
	Value     string   `json:"value"`
	Change    string   `json:"change"`
	Source    Platform `json:"source"`
}

// Query is a research request's parameters.
type Query struct {
	Kind     Kind   `json:"type"`
	Category string `json:"category"`
	Region   string `json:"region"`
}

const (
	DefaultCategory     = "technology"
	DefaultChatCategory = "general products"
	DefaultRegion       = "global"
)

// WithDefaults fills an empty category or region.
func (q Query) WithDefaults() Query {
	if strings.TrimSpace(q.Category) == "" {
		q.Category = DefaultCategory
	}
	if strings.TrimSpace(q.Region) == "" {
		q.Region = DefaultRegion
	}
	return q
}

// Dataset holds the records of a research result, one slice per kind.
type Dataset struct {
	Suppliers    []SupplierRecord `json:"suppliers,omitempty"`
	Trends       []TrendRecord    `json:"trends,omitempty"`
	News         []NewsRecord     `json:"news,omitempty"`
	TradeData    []TradeRecord    `json:"tradeData,omitempty"`
	EconomicData []EconomicRecord `json:"economicData,omitempty"`
}

// Len returns the total number of records across all kinds.
func (d Dataset) Len() int {
	return len(d.Suppliers) + len(d.Trends) + len(d.News) + len(d.TradeData) + len(d.EconomicData)
}

// Result is the envelope returned by the research orchestrator.
type Result struct {
	Dataset
	Provenance Provenance `json:"provenance"`
	Platform   Platform   `json:"platform,omitempty"`
	Message    string     `json:"message,omitempty"`
}

// Synthetic reports whether the data was generated rather than extracted.
func (r Result) Synthetic() bool {
	return r.Provenance == ProvenanceSynthetic
}

package models

// Message actions exchanged between the side panel, the coordinator and the
// page-side agent.
const (
	ActionScrapeData    = "scrapeData"
	ActionExtractData   = "extractData"
	ActionDataAvailable = "dataAvailable"
)

// Error codes carried in an ExtractReply.
const (
	CodeUnsupportedPlatform = "unsupported_platform"
	CodeExtractionFailed    = "extraction_failed"
)

// Tab describes the browsing context a request targets.
type Tab struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ScrapeQuery is the query part of a scrapeData message.
type ScrapeQuery struct {
	Category string `json:"category"`
	Region   string `json:"region"`
}

// ScrapeRequest is the JSON body for POST /api/research.
type ScrapeRequest struct {
	Action string      `json:"action"`
	Type   Kind        `json:"type"`
	Query  ScrapeQuery `json:"query"`
	Tab    *Tab        `json:"tab,omitempty"`
}

// ScrapeResponse answers a scrapeData message.
type ScrapeResponse struct {
	Success bool    `json:"success"`
	Data    *Result `json:"data,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// ExtractMessage asks a page-side agent to run extraction.
type ExtractMessage struct {
	Action   string   `json:"action"`
	Type     Kind     `json:"type"`
	Platform Platform `json:"platform"`
}

// ExtractReply is the page-side agent's answer. Data is nil on failure.
type ExtractReply struct {
	Success bool     `json:"success"`
	Data    *Dataset `json:"data"`
	Error   string   `json:"error,omitempty"`
	Code    string   `json:"code,omitempty"`
}

// DataAvailable is announced when a page is recognised as a known platform.
type DataAvailable struct {
	Action   string   `json:"action"`
	Type     Kind     `json:"type,omitempty"`
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`
}

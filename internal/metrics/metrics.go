package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ResearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "research_requests_total",
			Help: "Research requests answered, by data kind and provenance",
		},
		[]string{"kind", "provenance"},
	)

	ExtractionFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "research_extraction_fallbacks_total",
			Help: "Live extraction attempts that fell back to synthetic data",
		},
		[]string{"reason"},
	)

	ResearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "research_duration_seconds",
			Help: "Duration of research requests in seconds",
		},
		[]string{"provenance"},
	)

	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Chat messages handled, by mode and route",
		},
		[]string{"mode", "route"},
	)

	CompletionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_completion_failures_total",
			Help: "Chat completion calls that failed",
		},
	)

	CompletionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "chat_completion_duration_seconds",
			Help: "Duration of chat completion calls in seconds",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, by method and status code",
		},
		[]string{"method", "status"},
	)
)

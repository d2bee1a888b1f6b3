// Package observability holds the Prometheus instrumentation shared by
// the caching and extraction pipelines.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the scout pipelines.
type Metrics struct {
	// Page cache metrics
	PagesStoredTotal    *prometheus.CounterVec
	PagesDuplicateTotal *prometheus.CounterVec

	// Extraction metrics
	ArticlesProcessedTotal *prometheus.CounterVec
	ExtractionSeconds      prometheus.Histogram
	MentionsStoredTotal    *prometheus.CounterVec

	// Matching metrics
	MatchesTotal *prometheus.CounterVec
}

// DefaultMetrics creates metrics on the default registerer.
func DefaultMetrics() *Metrics {
	return NewMetrics(prometheus.DefaultRegisterer)
}

// NewMetrics creates a new metric set registered with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PagesStoredTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newsscout_pages_stored_total",
				Help: "Pages newly inserted into the cache",
			},
			[]string{"source_type"},
		),
		PagesDuplicateTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newsscout_pages_duplicate_total",
				Help: "Store attempts rejected as already cached",
			},
			[]string{"source_type"},
		),
		ArticlesProcessedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newsscout_articles_processed_total",
				Help: "Articles run through mention extraction",
			},
			[]string{"status"},
		),
		ExtractionSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "newsscout_extraction_seconds",
				Help:    "Wall time per article extraction",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 180, 300},
			},
		),
		MentionsStoredTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newsscout_mentions_stored_total",
				Help: "Player mentions upserted",
			},
			[]string{"signal_type"},
		),
		MatchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newsscout_matches_total",
				Help: "Roster resolution outcomes",
			},
			[]string{"match_type"},
		),
	}
}

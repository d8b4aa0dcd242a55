package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	FlightsEnriched    prometheus.Counter
	StatusLookupMisses prometheus.Counter
	TemplatesSent      prometheus.Counter
	ReminderBatches    prometheus.Counter
	EnrichmentTime     prometheus.Histogram
	ErrorsCount        *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		FlightsEnriched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_enriched_total",
			Help:      "The total number of flight records returned by enrichment",
		}),
		StatusLookupMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_lookup_misses_total",
			Help:      "Status provider lookups that returned no data or failed",
		}),
		TemplatesSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "templates_sent_total",
			Help:      "The total number of template messages accepted by the provider",
		}),
		ReminderBatches: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_batches_total",
			Help:      "The total number of check-in reminder batches submitted",
		}),
		EnrichmentTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "enrichment_time_seconds",
			Help:      "Time taken to enrich a schedule batch",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

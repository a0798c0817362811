package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SourceProvider = "provider"
	SourceCache    = "cache"
	SourceLocal    = "local"
)

// Metrics holds the search pipeline collectors.
type Metrics struct {
	Searches        *prometheus.CounterVec
	ProviderErrors  *prometheus.CounterVec
	Fallbacks       prometheus.Counter
	FallbackErrors  prometheus.Counter
	ProviderLatency prometheus.Histogram
}

// NewMetrics registers the collectors on reg. Pass prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_searches_total",
			Help:      "Completed flight searches by mode and result source",
		}, []string{"mode", "source"}),
		ProviderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Failed flight provider calls",
		}, []string{"provider"}),
		Fallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_searches_total",
			Help:      "Searches served from the local flight store",
		}),
		FallbackErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_errors_total",
			Help:      "Local flight store searches that failed",
		}),
		ProviderLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_seconds",
			Help:      "Time spent waiting for the flight provider",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

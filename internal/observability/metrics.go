package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dogparks"

// Metrics holds the Prometheus collectors for inbound pages and outbound
// provider searches.
type Metrics struct {
	// HTTP metrics. labels: method, route, status
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec // labels: method, route

	// Provider metrics.
	SearchRequests *prometheus.CounterVec   // labels: query, outcome={success,error}
	SearchDuration *prometheus.HistogramVec // labels: query
	SearchResults  prometheus.Histogram

	RatingsSubmitted prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.SearchRequests,
		m.SearchDuration,
		m.SearchResults,
		m.RatingsSubmitted,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as many
// as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		SearchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "yelp_search_requests_total",
			Help:      "Yelp business searches by query and outcome.",
		}, []string{"query", "outcome"}),
		SearchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "yelp_search_duration_seconds",
			Help:      "Yelp business search latency in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"query"}),
		SearchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "yelp_search_results",
			Help:      "Number of businesses returned per search.",
			Buckets:   []float64{0, 1, 2, 4, 6, 8, 12, 16, 20},
		}),
		RatingsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ratings_submitted_total",
			Help:      "Total star ratings stored.",
		}),
	}
}

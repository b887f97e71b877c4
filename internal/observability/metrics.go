package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the feed service.
type Metrics struct {
	// Fetch metrics.
	FetchRequests *prometheus.CounterVec // labels: outcome={success,error}
	FetchDuration prometheus.Histogram
	FetchBytes    prometheus.Histogram

	// Parse metrics.
	EventsParsed  prometheus.Counter
	EventsSkipped prometheus.Counter

	// Store metrics.
	StoreState     prometheus.Gauge // 0 idle, 1 loading, 2 ready, 3 failed
	StoreObservers prometheus.Counter

	// Publish metrics.
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
}

// NewMetrics creates and registers all feed metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers all feed metrics with reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()

	reg.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.FetchBytes,
		m.EventsParsed,
		m.EventsSkipped,
		m.StoreState,
		m.StoreObservers,
		m.EventsPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "fetch_requests_total",
			Help:      "Feed requests by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_feed",
			Name:      "fetch_duration_seconds",
			Help:      "Feed request duration in seconds, including the body read.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		}),
		FetchBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_feed",
			Name:      "fetch_response_bytes",
			Help:      "Size of successful feed response bodies.",
			Buckets:   prometheus.ExponentialBuckets(1024, 2, 10),
		}),
		EventsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "events_parsed_total",
			Help:      "Earthquake events decoded from the feed.",
		}),
		EventsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "events_skipped_total",
			Help:      "Feed features dropped as malformed or missing a timestamp.",
		}),
		StoreState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_feed",
			Name:      "store_state",
			Help:      "Event store state: 0 idle, 1 loading, 2 ready, 3 failed.",
		}),
		StoreObservers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "store_observers_total",
			Help:      "Observers subscribed to the event store.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "events_published_total",
			Help:      "Earthquake events written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "publish_errors_total",
			Help:      "Failed writes to the sink topic.",
		}),
	}
}

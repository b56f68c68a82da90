package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rankings_etl"

// Metrics holds the Prometheus counters, histograms, and gauges for the rankings pipeline.
type Metrics struct {
	Fetches       *prometheus.CounterVec // labels: outcome={success,error,no_data}
	FetchDuration prometheus.Histogram

	// Parser metrics.
	Lines          prometheus.Counter
	LinesRejected  prometheus.Counter
	RecordsParsed  prometheus.Counter
	RecordsPerPage prometheus.Histogram

	CacheLookups     *prometheus.CounterVec // labels: result={hit,miss,stale,error}
	RecordsPublished prometheus.Counter
	RefreshRunning   prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Fetches,
		m.FetchDuration,
		m.Lines,
		m.LinesRejected,
		m.RecordsParsed,
		m.RecordsPerPage,
		m.CacheLookups,
		m.RecordsPublished,
		m.RefreshRunning,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid "already registered"
// panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Ranking page fetches by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of upstream ranking page fetches.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		Lines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Candidate lines read from ranking pages.",
		}),
		LinesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_rejected_total",
			Help:      "Candidate lines that failed shape or rank validation.",
		}),
		RecordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_parsed_total",
			Help:      "Performance records parsed and normalized.",
		}),
		RecordsPerPage: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "records_per_page",
			Help:      "Number of records parsed from one ranking page.",
			Buckets:   []float64{10, 100, 500, 1000, 2500, 5000, 10000},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by result.",
		}, []string{"result"}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_published_total",
			Help:      "Normalized records written to the Kafka sink.",
		}),
		RefreshRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "refresh_running",
			Help:      "1 while a scheduled catalog refresh is in progress.",
		}),
	}
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ground-motion pipeline.
type Metrics struct {
	ScenariosConsumed prometheus.Counter
	FieldsProduced    prometheus.Counter
	TransformErrors   prometheus.Counter
	PipelineRunning   prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Site-conditions provider metrics.
	SiteCondRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	SiteCondCache       *prometheus.CounterVec // labels: result={hit,miss}
	SiteCondAPIDuration prometheus.Histogram
	SiteCondEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ScenariosConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vrancea_gmm",
			Name:      "scenarios_consumed_total",
			Help:      "Total rupture scenarios read from the source topic.",
		}),
		FieldsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vrancea_gmm",
			Name:      "fields_produced_total",
			Help:      "Total ground-motion fields written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vrancea_gmm",
			Name:      "transform_errors_total",
			Help:      "Total scenarios that failed parsing, enrichment, or prediction.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrancea_gmm",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vrancea_gmm",
			Name:      "batch_size",
			Help:      "Number of scenarios per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vrancea_gmm",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-predict-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		SiteCondRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vrancea_gmm",
			Name:      "sitecond_requests_total",
			Help:      "Site-conditions API requests by outcome.",
		}, []string{"outcome"}),
		SiteCondCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vrancea_gmm",
			Name:      "sitecond_cache_total",
			Help:      "Site-conditions cache lookups by result.",
		}, []string{"result"}),
		SiteCondAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vrancea_gmm",
			Name:      "sitecond_api_duration_seconds",
			Help:      "Site-conditions API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		SiteCondEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrancea_gmm",
			Name:      "sitecond_enabled",
			Help:      "1 when Vs30 enrichment is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.ScenariosConsumed,
		m.FieldsProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.SiteCondRequests,
		m.SiteCondCache,
		m.SiteCondAPIDuration,
		m.SiteCondEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ScenariosConsumed:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "vrancea_gmm", Name: "scenarios_consumed_total"}),
		FieldsProduced:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "vrancea_gmm", Name: "fields_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "vrancea_gmm", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "vrancea_gmm", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "vrancea_gmm", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "vrancea_gmm", Name: "batch_processing_duration_seconds"}),
		SiteCondRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "vrancea_gmm", Name: "sitecond_requests_total"}, []string{"outcome"}),
		SiteCondCache:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "vrancea_gmm", Name: "sitecond_cache_total"}, []string{"result"}),
		SiteCondAPIDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "vrancea_gmm", Name: "sitecond_api_duration_seconds"}),
		SiteCondEnabled:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "vrancea_gmm", Name: "sitecond_enabled"}),
	}
}

// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Generation metrics
	EventsGenerated   *prometheus.CounterVec
	EventsDropped     *prometheus.CounterVec
	SegmentDrawsTotal prometheus.Counter
	SegmentSkipsTotal prometheus.Counter
	BValueEstimate    prometheus.Gauge
	BValueSampleSize  prometheus.Gauge

	// Assembly metrics
	EventsAssembled  prometheus.Counter
	UnbinnedEvents   prometheus.Counter
	OutsideFoldTable prometheus.Counter

	// Pipeline metrics
	PipelineRunsTotal *prometheus.CounterVec
	PipelineDuration  *prometheus.HistogramVec
	ReportsGenerated  prometheus.Counter

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "seismic_catalog_lab"
	}

	return &Metrics{
		// Generation metrics
		EventsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "events_generated_total",
			Help:      "Total number of synthetic events generated by method",
		}, []string{"method"}),
		EventsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "events_dropped_total",
			Help:      "Total number of candidate events dropped by the validity filter",
		}, []string{"method"}),
		SegmentDrawsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "segment_draws_total",
			Help:      "Total number of fault segment draws attempted",
		}),
		SegmentSkipsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "segment_skips_total",
			Help:      "Total number of draws skipped because no segment can host the rupture",
		}),
		BValueEstimate: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "b_value_estimate",
			Help:      "Most recent Gutenberg-Richter b-value estimate",
		}),
		BValueSampleSize: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "b_value_sample_size",
			Help:      "Number of events above completeness used in the b-value fit",
		}),

		// Assembly metrics
		EventsAssembled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assembly",
			Name:      "events_assembled_total",
			Help:      "Total number of events written to the assembled catalog",
		}),
		UnbinnedEvents: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assembly",
			Name:      "unbinned_events_total",
			Help:      "Total number of assembled events outside every magnitude bin",
		}),
		OutsideFoldTable: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assembly",
			Name:      "outside_fold_table_total",
			Help:      "Total number of assembled events outside every fold window",
		}),

		// Pipeline metrics
		PipelineRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by status",
		}, []string{"phase", "status"}),
		PipelineDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Pipeline execution duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		}, []string{"phase"}),
		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated",
		}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordGenerated increments the generated-events counter for a method.
func (m *Metrics) RecordGenerated(method string, n int) {
	if m == nil {
		return
	}
	m.EventsGenerated.WithLabelValues(method).Add(float64(n))
}

// RecordDropped increments the dropped-events counter for a method.
func (m *Metrics) RecordDropped(method string, n int) {
	if m == nil {
		return
	}
	m.EventsDropped.WithLabelValues(method).Add(float64(n))
}

// RecordSegmentSkip records a draw that found no hosting segment.
func (m *Metrics) RecordSegmentSkip() {
	if m == nil {
		return
	}
	m.SegmentSkipsTotal.Inc()
}

// RecordBValue records the outcome of a b-value estimation.
func (m *Metrics) RecordBValue(estimate float64, sampleSize int) {
	if m == nil {
		return
	}
	m.BValueEstimate.Set(estimate)
	m.BValueSampleSize.Set(float64(sampleSize))
}

// RecordAssembled records the assembled catalog counters.
func (m *Metrics) RecordAssembled(total, unbinned, outsideFolds int) {
	if m == nil {
		return
	}
	m.EventsAssembled.Add(float64(total))
	m.UnbinnedEvents.Add(float64(unbinned))
	m.OutsideFoldTable.Add(float64(outsideFolds))
}

// RecordPipelineRun records a pipeline phase run.
func (m *Metrics) RecordPipelineRun(phase, status string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.PipelineRunsTotal.WithLabelValues(phase, status).Inc()
	m.PipelineDuration.WithLabelValues(phase).Observe(durationSeconds)
}

// RecordDBQuery records database query metrics.
func (m *Metrics) RecordDBQuery(database, operation string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		m.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

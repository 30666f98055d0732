package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cityscan_etl"

// Metrics holds the Prometheus counters, histograms, and gauges for the cleanup pipeline.
// Every vector is labelled by dataset, e.g. dataset="pg".
type Metrics struct {
	RowsRead      *prometheus.CounterVec
	RowsWritten   *prometheus.CounterVec // labels: dataset, table
	RowsDropped   *prometheus.CounterVec
	TablesWritten *prometheus.CounterVec
	Warnings      *prometheus.CounterVec
	RowsPublished *prometheus.CounterVec
	RunErrors     *prometheus.CounterVec // labels: dataset, stage={extract,transform,load,publish}

	RunDuration *prometheus.HistogramVec
	LastSuccess *prometheus.GaugeVec

	registry *prometheus.Registry
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Data rows read from raw extracts.",
		}, []string{"dataset"}),
		RowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Data rows written to cleaned tables.",
		}, []string{"dataset", "table"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Rows filtered out during cleaning.",
		}, []string{"dataset"}),
		TablesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tables_written_total",
			Help:      "Cleaned tables written.",
		}, []string{"dataset"}),
		Warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Non-fatal data anomalies reported by transforms.",
		}, []string{"dataset"}),
		RowsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_published_total",
			Help:      "Cleaned rows published to Kafka.",
		}, []string{"dataset"}),
		RunErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_errors_total",
			Help:      "Failed runs by dataset and stage.",
		}, []string{"dataset", "stage"}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete extract-transform-load run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"dataset"}),
		LastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}, []string{"dataset"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RowsRead,
		m.RowsWritten,
		m.RowsDropped,
		m.TablesWritten,
		m.Warnings,
		m.RowsPublished,
		m.RunErrors,
		m.RunDuration,
		m.LastSuccess,
	}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(m.collectors()...)
	return m
}

// Gatherer returns the registry the metrics were registered with.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m.registry != nil {
		return m.registry
	}
	return prometheus.DefaultGatherer
}

// WriteTextfile writes the current metric values in the node_exporter
// textfile collector format. An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Gatherer()); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Package telemetry provides Prometheus metrics for the report pipeline.
package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the metric namespace prefix for all application metrics
const Namespace = "verdanta"

// Metrics holds all application metrics
type Metrics struct {
	// Report pipeline metrics
	ReportsTotal    *prometheus.CounterVec
	ReportFailures  *prometheus.CounterVec
	RenderDuration  prometheus.Histogram
	PDFSizeBytes    prometheus.Histogram
	ImagesFallback  prometheus.Counter
	ActiveRenders   prometheus.Gauge
}

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// GetMetrics returns the global metrics instance, initializing and registering
// it on the default registry if necessary.
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = newMetrics(prometheus.DefaultRegisterer)
	})
	return globalMetrics
}

// NewMetrics creates a metrics set registered on the given registerer.
// Exposed for tests that need an isolated registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return newMetrics(reg)
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ReportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "reports_generated_total",
			Help:      "Total number of report generation calls, labeled by template variant.",
		}, []string{"variant"}),
		ReportFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "report_failures_total",
			Help:      "Total number of failed report generation calls, labeled by error code.",
		}, []string{"code"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent in the headless renderer per report.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		PDFSizeBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "pdf_size_bytes",
			Help:      "Size of the exported PDF document.",
			Buckets:   prometheus.ExponentialBuckets(16*1024, 2, 12),
		}),
		ImagesFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "image_fallbacks_total",
			Help:      "Total number of image embeds that degraded to the placeholder.",
		}),
		ActiveRenders: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_renders",
			Help:      "Number of renderer processes currently running.",
		}),
	}

	reg.MustRegister(
		m.ReportsTotal,
		m.ReportFailures,
		m.RenderDuration,
		m.PDFSizeBytes,
		m.ImagesFallback,
		m.ActiveRenders,
	)
	return m
}

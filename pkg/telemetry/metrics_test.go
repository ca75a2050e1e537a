package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ReportsTotal.WithLabelValues("lca").Inc()
	m.ReportFailures.WithLabelValues("E4004").Inc()
	m.ImagesFallback.Inc()
	m.ActiveRenders.Inc()
	m.RenderDuration.Observe(2.5)
	m.PDFSizeBytes.Observe(128 * 1024)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsTotal.WithLabelValues("lca")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportFailures.WithLabelValues("E4004")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ImagesFallback))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveRenders))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 6)
}

func TestGetMetricsIsSingleton(t *testing.T) {
	first := GetMetrics()
	second := GetMetrics()

	require.NotNil(t, first)
	assert.Same(t, first, second)
}

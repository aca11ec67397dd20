package providers

import (
	"showtimer/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useFreshRegistry(t *testing.T) {
	t.Helper()
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	})
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/timer", 200)
	m.ObserveRequestDuration("/timer", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(time.Millisecond)
	m.IncFlushWrites()
	m.IncFlushSkipped()
	m.IncFlushFailures()
	m.IncAutoStops("timer")
	m.SetStage("duration", 2)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	useFreshRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_RecordsEngineMetrics(t *testing.T) {
	useFreshRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	mp, ok := m.(*MetricsProvider)
	require.True(t, ok)

	m.IncRequestsTotal("/timer:duration", 200)
	m.IncRequestsTotal("/timer:duration", 204)
	m.IncRequestsTotal("/timer/start:duration", 409)
	m.ObserveRequestDuration("/timer:duration", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(10 * time.Millisecond)
	m.IncFlushWrites()
	m.IncFlushSkipped()
	m.IncFlushSkipped()
	m.IncFlushFailures()
	m.IncAutoStops("timer")
	m.SetStage("duration", 1)
	m.SetStage("duration", 2)

	assert.Equal(t, float64(2), promtest.ToFloat64(mp.requestsTotal.WithLabelValues("/timer:duration", "2xx")))
	assert.Equal(t, float64(1), promtest.ToFloat64(mp.requestsTotal.WithLabelValues("/timer/start:duration", "4xx")))
	assert.Equal(t, float64(1), promtest.ToFloat64(mp.flushWrites))
	assert.Equal(t, float64(2), promtest.ToFloat64(mp.flushSkipped))
	assert.Equal(t, float64(1), promtest.ToFloat64(mp.flushFailures))
	assert.Equal(t, float64(1), promtest.ToFloat64(mp.autoStops.WithLabelValues("timer")))
	assert.Equal(t, float64(2), promtest.ToFloat64(mp.stage.WithLabelValues("duration")))
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{204, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{409, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}

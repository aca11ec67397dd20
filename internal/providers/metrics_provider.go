package providers

import (
	"showtimer/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncFlushWrites()
	IncFlushSkipped()
	IncFlushFailures()
	IncAutoStops(variant string)
	SetStage(variant string, stage int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	flushWrites         prometheus.Counter
	flushSkipped        prometheus.Counter
	flushFailures       prometheus.Counter
	autoStops           *prometheus.CounterVec
	stage               *prometheus.GaugeVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncFlushWrites() {
	m.flushWrites.Inc()
}

func (m *MetricsProvider) IncFlushSkipped() {
	m.flushSkipped.Inc()
}

func (m *MetricsProvider) IncFlushFailures() {
	m.flushFailures.Inc()
}

func (m *MetricsProvider) IncAutoStops(variant string) {
	m.autoStops.WithLabelValues(variant).Inc()
}

func (m *MetricsProvider) SetStage(variant string, stage int) {
	m.stage.WithLabelValues(variant).Set(float64(stage))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "showtimer_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "showtimer_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "showtimer_cache_hits_total",
			Help: "Total number of view cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "showtimer_cache_misses_total",
			Help: "Total number of view cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "showtimer_persistence_duration_seconds",
			Help:    "Duration of snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		flushWrites: promauto.NewCounter(prometheus.CounterOpts{
			Name: "showtimer_flush_writes_total",
			Help: "Total number of durable snapshot writes",
		}),

		flushSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "showtimer_flush_skipped_total",
			Help: "Flush ticks skipped because a write was still in flight",
		}),

		flushFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "showtimer_flush_failures_total",
			Help: "Total number of failed snapshot writes",
		}),

		autoStops: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "showtimer_auto_stops_total",
			Help: "Timers stopped because their duration reached the display cap",
		}, []string{"variant"}),

		stage: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "showtimer_stage",
			Help: "Last observed stage per variant (0 okay, 1 warning, 2 alert)",
		}, []string{"variant"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncFlushWrites()                                  {}
func (n *noopMetrics) IncFlushSkipped()                                 {}
func (n *noopMetrics) IncFlushFailures()                                {}
func (n *noopMetrics) IncAutoStops(_ string)                            {}
func (n *noopMetrics) SetStage(_ string, _ int)                         {}

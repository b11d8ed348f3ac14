package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type UpstreamMetricsCollector struct {
	Requests *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

var (
	globalCollector *UpstreamMetricsCollector
	collectorOnce   sync.Once
)

func getCollector() *UpstreamMetricsCollector {
	collectorOnce.Do(func() {
		globalCollector = &UpstreamMetricsCollector{
			Requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "dashboard_upstream_requests_total",
					Help: "The total number of requests made to upstream APIs",
				},
				[]string{"upstream"},
			),
			Failures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "dashboard_upstream_failures_total",
					Help: "The total number of failed upstream API requests",
				},
				[]string{"upstream"},
			),
			Latency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "dashboard_upstream_duration_seconds",
					Help:    "Upstream API request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"upstream"},
			),
		}
	})
	return globalCollector
}

// UpstreamMetrics tracks calls to one upstream API (geocoding, forecast, llm)
type UpstreamMetrics struct {
	upstream  string
	requests  int64
	failures  int64
	collector *UpstreamMetricsCollector
	mu        sync.RWMutex
}

func NewUpstreamMetrics(upstream string) *UpstreamMetrics {
	return &UpstreamMetrics{
		upstream:  upstream,
		collector: getCollector(),
	}
}

// RecordRequest counts one attempted upstream call
func (m *UpstreamMetrics) RecordRequest() {
	m.mu.Lock()
	m.requests++
	m.mu.Unlock()
	m.collector.Requests.WithLabelValues(m.upstream).Inc()
}

// RecordFailure counts one failed upstream call
func (m *UpstreamMetrics) RecordFailure() {
	m.mu.Lock()
	m.failures++
	m.mu.Unlock()
	m.collector.Failures.WithLabelValues(m.upstream).Inc()
}

// ObserveLatency records the duration of one upstream call
func (m *UpstreamMetrics) ObserveLatency(d time.Duration) {
	m.collector.Latency.WithLabelValues(m.upstream).Observe(d.Seconds())
}

// Snapshot returns current in-process counters for debug reporting
func (m *UpstreamMetrics) Snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]interface{}{
		"upstream": m.upstream,
		"requests": m.requests,
		"failures": m.failures,
	}
}

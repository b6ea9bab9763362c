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
	// RPC pool metrics
	RPCCallLatency *prometheus.HistogramVec
	RPCCallsTotal  *prometheus.CounterVec
	RPCCacheHits   prometheus.Counter
	RPCCacheSize   prometheus.Gauge

	// Liquidity discovery metrics
	VenuesDiscovered *prometheus.CounterVec
	StrategyDuration *prometheus.HistogramVec

	// Scan metrics
	ScansTotal   *prometheus.CounterVec
	ScanDuration prometheus.Histogram
	ScansAborted *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "tokenscan"
	}

	return &Metrics{
		RPCCallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "call_latency_seconds",
			Help:      "JSON-RPC call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		RPCCallsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "calls_total",
			Help:      "Total number of JSON-RPC calls by endpoint and outcome",
		}, []string{"endpoint", "status"}),
		RPCCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "cache_hits_total",
			Help:      "Total number of calls served from the response cache",
		}),
		RPCCacheSize: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "cache_size",
			Help:      "Current number of entries in the response cache",
		}),

		VenuesDiscovered: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "liquidity",
			Name:      "venues_discovered_total",
			Help:      "Total number of liquidity venues discovered by strategy",
		}, []string{"strategy"}),
		StrategyDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "liquidity",
			Name:      "strategy_duration_seconds",
			Help:      "Discovery strategy execution duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"strategy"}),

		ScansTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "total",
			Help:      "Total number of completed scans by score band",
		}, []string{"band"}),
		ScanDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "duration_seconds",
			Help:      "Full scan duration in seconds",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120},
		}),
		ScansAborted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "aborted_total",
			Help:      "Total number of scans aborted early by reason",
		}, []string{"reason"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordRPCCall records one JSON-RPC call outcome.
func RecordRPCCall(method, endpoint, status string, seconds float64) {
	DefaultMetrics.RPCCallLatency.WithLabelValues(method).Observe(seconds)
	DefaultMetrics.RPCCallsTotal.WithLabelValues(endpoint, status).Inc()
}

// RecordCacheHit increments the response cache hit counter.
func RecordCacheHit() {
	DefaultMetrics.RPCCacheHits.Inc()
}

// UpdateCacheSize updates the response cache size gauge.
func UpdateCacheSize(n int) {
	DefaultMetrics.RPCCacheSize.Set(float64(n))
}

// RecordVenueDiscovered increments the venue counter for a strategy.
func RecordVenueDiscovered(strategy string) {
	DefaultMetrics.VenuesDiscovered.WithLabelValues(strategy).Inc()
}

// RecordStrategyDuration records one discovery strategy run.
func RecordStrategyDuration(strategy string, seconds float64) {
	DefaultMetrics.StrategyDuration.WithLabelValues(strategy).Observe(seconds)
}

// RecordScan records a completed scan.
func RecordScan(band string, seconds float64) {
	DefaultMetrics.ScansTotal.WithLabelValues(band).Inc()
	DefaultMetrics.ScanDuration.Observe(seconds)
}

// RecordScanAborted records an early-terminated scan.
func RecordScanAborted(reason string) {
	DefaultMetrics.ScansAborted.WithLabelValues(reason).Inc()
}

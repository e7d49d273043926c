package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Trace store metrics
	MessagesRecorded prometheus.Counter
	MessagesDropped  prometheus.Counter
	MessagesEvicted  prometheus.Counter
	MessagesPruned   prometheus.Counter
	StoreSize        prometheus.Gauge
	ChainsTracked    prometheus.Gauge
	TreesBuilt       prometheus.Counter

	// Analysis metrics
	AnalysisRuns      *prometheus.CounterVec
	AnalysisDuration  *prometheus.HistogramVec
	AnomaliesDetected *prometheus.CounterVec
	ReportsGenerated  prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests    int64
	TotalErrors      int64
	MessagesRecorded int64
	StoreSize        int64
	TotalDuration    float64 // sum of all request durations
	RequestCount     int64   // count for averaging
}

// NewMetrics creates a metrics collector on the default Prometheus registry
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates a metrics collector on a custom registry.
// Tests pass a fresh registry to avoid duplicate registration.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracer_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracer_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracer_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracer_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Trace store metrics
		MessagesRecorded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tracer_messages_recorded_total",
				Help: "Total number of messages recorded",
			},
		),
		MessagesDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tracer_messages_dropped_total",
				Help: "Total number of messages dropped for missing IDs",
			},
		),
		MessagesEvicted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tracer_messages_evicted_total",
				Help: "Total number of messages evicted by the size bound",
			},
		),
		MessagesPruned: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tracer_messages_pruned_total",
				Help: "Total number of messages removed by retention pruning",
			},
		),
		StoreSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tracer_store_size",
				Help: "Number of messages currently stored",
			},
		),
		ChainsTracked: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tracer_chains_tracked",
				Help: "Number of distinct chains currently stored",
			},
		),
		TreesBuilt: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tracer_trees_built_total",
				Help: "Total number of trace trees reconstructed",
			},
		),

		// Analysis metrics
		AnalysisRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracer_analysis_runs_total",
				Help: "Total number of analysis runs",
			},
			[]string{"kind", "status"},
		),
		AnalysisDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracer_analysis_duration_seconds",
				Help:    "Analysis run duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"kind"},
		),
		AnomaliesDetected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracer_anomalies_detected_total",
				Help: "Total number of anomalies detected",
			},
			[]string{"type", "severity"},
		),
		ReportsGenerated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tracer_reports_generated_total",
				Help: "Total number of chain reports generated",
			},
		),

		// System metrics
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tracer_uptime_seconds",
				Help: "Tracer uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	// Update snapshot
	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordMessage records one stored message
func (m *Metrics) RecordMessage() {
	m.MessagesRecorded.Inc()
	m.mu.Lock()
	m.snapshot.MessagesRecorded++
	m.mu.Unlock()
}

// RecordDropped records a message rejected for a missing ID
func (m *Metrics) RecordDropped() {
	m.MessagesDropped.Inc()
}

// RecordEvicted records one message evicted by the size bound
func (m *Metrics) RecordEvicted() {
	m.MessagesEvicted.Inc()
}

// RecordPruned records messages removed by retention pruning
func (m *Metrics) RecordPruned(count int) {
	m.MessagesPruned.Add(float64(count))
}

// SetStoreSize sets the current number of stored messages
func (m *Metrics) SetStoreSize(count int) {
	m.StoreSize.Set(float64(count))
	m.mu.Lock()
	m.snapshot.StoreSize = int64(count)
	m.mu.Unlock()
}

// SetChainsTracked sets the current number of distinct chains
func (m *Metrics) SetChainsTracked(count int) {
	m.ChainsTracked.Set(float64(count))
}

// RecordTreeBuilt records one tree reconstruction
func (m *Metrics) RecordTreeBuilt() {
	m.TreesBuilt.Inc()
}

// RecordAnalysis records an analysis run
func (m *Metrics) RecordAnalysis(kind, status string, duration time.Duration) {
	m.AnalysisRuns.WithLabelValues(kind, status).Inc()
	m.AnalysisDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordAnomaly records one detected anomaly
func (m *Metrics) RecordAnomaly(anomalyType, severity string) {
	m.AnomaliesDetected.WithLabelValues(anomalyType, severity).Inc()
}

// RecordReport records one generated chain report
func (m *Metrics) RecordReport() {
	m.ReportsGenerated.Inc()
}

// GetSnapshot returns current metric values for the JSON API
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// UptimeSeconds returns seconds since the collector was created
func (m *Metrics) UptimeSeconds() float64 {
	return time.Since(m.startTime).Seconds()
}

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	Predictions         *prometheus.CounterVec
	AuditWritten        prometheus.Counter
	AuditFailed         prometheus.Counter
	AuditDropped        prometheus.Counter
	AuditWriteLatency   prometheus.Histogram
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
// A custom registry (instead of prometheus.DefaultRegisterer) keeps tests
// isolated.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served, by route pattern and status.",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time from request receipt to handler return.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of predictions served, split by whether the request carried JSON input.",
		}, []string{"with_input"}),

		AuditWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "audit_records_written_total",
			Help: "Total number of audit records accepted by the sink.",
		}),
		AuditFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "audit_records_failed_total",
			Help: "Total number of audit records abandoned after exhausting retries.",
		}),
		AuditDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "audit_records_dropped_total",
			Help: "Total number of audit records refused because the queue was full.",
		}),
		AuditWriteLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "audit_write_seconds",
			Help:    "Latency from dequeue to sink acknowledgement, retries included.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.Predictions,
		m.AuditWritten,
		m.AuditFailed,
		m.AuditDropped,
		m.AuditWriteLatency,
	)

	return m
}

// RegisterQueueDepth exposes the audit queue depth as a gauge sampled at
// scrape time.
func RegisterQueueDepth(reg prometheus.Registerer, depth func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "audit_queue_depth",
		Help: "Current number of audit records waiting to be written.",
	}, func() float64 { return float64(depth()) }))
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, latency time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

// ServiceHooks returns the callbacks expected by service.Hooks.
func (m *Metrics) ServiceHooks() (
	onPrediction func(withInput bool),
	onDropped func(),
) {
	onPrediction = func(withInput bool) {
		m.Predictions.WithLabelValues(strconv.FormatBool(withInput)).Inc()
	}
	onDropped = func() {
		m.AuditDropped.Inc()
	}
	return
}

// WorkerHooks returns the metric callback functions expected by worker.MetricHooks.
// Centralises the prometheus observation calls so the worker package stays import-free.
func (m *Metrics) WorkerHooks() (
	onWritten func(latency time.Duration),
	onFailed func(),
) {
	onWritten = func(latency time.Duration) {
		m.AuditWritten.Inc()
		m.AuditWriteLatency.Observe(latency.Seconds())
	}
	onFailed = func() {
		m.AuditFailed.Inc()
	}
	return
}

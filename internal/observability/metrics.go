package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	errors      *prometheus.CounterVec
	storeOps    *prometheus.CounterVec
	backendMode *prometheus.GaugeVec
	emails      *prometheus.CounterVec
}

// NewMetrics registers the collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hris_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"path", "method", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hris_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hris_http_errors_total",
			Help: "Error responses by error code.",
		}, []string{"path", "method", "code"}),
		storeOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hris_store_operations_total",
			Help: "Repository operations by collection, operation, backend and outcome.",
		}, []string{"collection", "op", "backend", "outcome"}),
		backendMode: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hris_store_backend_mode",
			Help: "1 for the backend currently serving repositories.",
		}, []string{"mode"}),
		emails: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hris_emails_total",
			Help: "Outbound e-mails by template and result.",
		}, []string{"template", "result"}),
	}
}

// RecordRequest counts a served request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError counts an error response.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(path, method, code).Inc()
}

// RecordStoreOp counts a repository operation.
func (m *Metrics) RecordStoreOp(collection, op, backend string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.storeOps.WithLabelValues(collection, op, backend, outcome).Inc()
}

// SetBackendMode flags which backend serves repositories.
func (m *Metrics) SetBackendMode(mode string) {
	if m == nil {
		return
	}
	m.backendMode.Reset()
	m.backendMode.WithLabelValues(mode).Set(1)
}

// RecordEmail counts an outbound e-mail attempt.
func (m *Metrics) RecordEmail(template string, sent bool) {
	if m == nil {
		return
	}
	m.emails.WithLabelValues(template, strconv.FormatBool(sent)).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package metrics exposes Prometheus collectors for console requests and
// backend calls.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the console's collectors on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	backendCalls    *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	statusChanges   *prometheus.CounterVec
}

// New registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "konzola",
			Name:      "http_requests_total",
			Help:      "Console HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "konzola",
			Name:      "http_request_duration_seconds",
			Help:      "Console HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "konzola",
			Name:      "backend_requests_total",
			Help:      "Backend API calls by method and status code; code 0 is a transport failure.",
		}, []string{"method", "code"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "konzola",
			Name:      "backend_request_duration_seconds",
			Help:      "Backend API call latency by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "konzola",
			Name:      "status_transitions_total",
			Help:      "Status transitions sent to the backend by entity and target status.",
		}, []string{"entity", "target"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.backendCalls,
		m.backendDuration,
		m.statusChanges,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one console request.
func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveBackend records one backend call. Its signature matches
// client.Observer. The path is left out of the labels to bound cardinality.
func (m *Metrics) ObserveBackend(method, _ string, code int, elapsed time.Duration) {
	m.backendCalls.WithLabelValues(method, strconv.Itoa(code)).Inc()
	m.backendDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveTransition records a status change sent to the backend.
func (m *Metrics) ObserveTransition(entity string, target int64) {
	m.statusChanges.WithLabelValues(entity, strconv.FormatInt(target, 10)).Inc()
}

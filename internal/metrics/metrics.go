// Package metrics exposes Prometheus collectors for lifecycle operations
// and HTTP traffic.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the service collectors. A nil *Metrics is a no-op.
type Metrics struct {
	operations      *prometheus.CounterVec
	validation      *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg, or with the
// default registerer when reg is nil.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hms",
			Subsystem: "lifecycle",
			Name:      "operations_total",
			Help:      "Entity lifecycle operations by outcome",
		}, []string{"entity", "operation", "outcome"}),
		validation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hms",
			Subsystem: "lifecycle",
			Name:      "validation_failures_total",
			Help:      "Rejected fields by entity",
		}, []string{"entity", "field"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hms",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hms",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.operations, m.validation, m.requests, m.requestDuration)
	return m
}

// ObserveOperation counts one create, update or delete.
func (m *Metrics) ObserveOperation(entity, operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(entity, operation, outcome).Inc()
}

// ObserveValidationFailure counts a rejected field.
func (m *Metrics) ObserveValidationFailure(entity, field string) {
	if m == nil {
		return
	}
	m.validation.WithLabelValues(entity, field).Inc()
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(seconds)
}

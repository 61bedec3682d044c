package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveOperation(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveOperation("appointment", "create", "rejected")
	m.ObserveOperation("appointment", "create", "rejected")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("appointment", "create", "rejected")))
}

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveRequest("GET", "/api/v1/patients", 403, 0.01)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/patients", "403")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("ward", "delete", "success")
		m.ObserveValidationFailure("ward", "capacity")
		m.ObserveRequest("GET", "/", 200, 0)
	})
}

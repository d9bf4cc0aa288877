// Package prometheus provides the Prometheus-backed implementation of the
// RoamFS client metrics interface.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/roamfs/roamfs/pkg/metrics"
)

// ClientMetrics implements metrics.ClientMetrics on top of Prometheus
// collectors registered against the given registerer.
type ClientMetrics struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	bytes      *prometheus.CounterVec
}

var _ metrics.ClientMetrics = (*ClientMetrics)(nil)

// NewClientMetrics registers the RoamFS client collectors with reg and
// returns the metrics sink to inject into backends. Pass
// prometheus.DefaultRegisterer for the process-wide registry.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	factory := promauto.With(reg)

	return &ClientMetrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "roamfs_client_operations_total",
			Help: "Backend operations performed, by backend, operation and outcome.",
		}, []string{"backend", "operation", "status"}),

		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roamfs_client_operation_duration_seconds",
			Help:    "Backend operation latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend", "operation"}),

		bytes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "roamfs_client_bytes_total",
			Help: "Payload bytes transferred, by backend and direction.",
		}, []string{"backend", "direction"}),
	}
}

// ObserveOperation implements metrics.ClientMetrics.
func (m *ClientMetrics) ObserveOperation(backend, operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.operations.WithLabelValues(backend, operation, status).Inc()
	m.durations.WithLabelValues(backend, operation).Observe(duration.Seconds())
}

// AddBytesRead implements metrics.ClientMetrics.
func (m *ClientMetrics) AddBytesRead(backend string, n int64) {
	m.bytes.WithLabelValues(backend, "read").Add(float64(n))
}

// AddBytesWritten implements metrics.ClientMetrics.
func (m *ClientMetrics) AddBytesWritten(backend string, n int64) {
	m.bytes.WithLabelValues(backend, "written").Add(float64(n))
}

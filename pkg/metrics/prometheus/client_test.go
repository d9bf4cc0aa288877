package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/roamfs/roamfs/pkg/metrics"
)

func TestObserveOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetrics(reg)

	m.ObserveOperation("memory", "List", 5*time.Millisecond, nil)
	m.ObserveOperation("memory", "List", 5*time.Millisecond, nil)
	m.ObserveOperation("memory", "Stat", time.Millisecond, errors.New("boom"))

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.operations.WithLabelValues("memory", "List", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.operations.WithLabelValues("memory", "Stat", "error")))
}

func TestBytesCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetrics(reg)

	m.AddBytesRead("s3", 1024)
	m.AddBytesWritten("s3", 100)
	m.AddBytesWritten("s3", 28)

	assert.Equal(t, float64(1024), testutil.ToFloat64(
		m.bytes.WithLabelValues("s3", "read")))
	assert.Equal(t, float64(128), testutil.ToFloat64(
		m.bytes.WithLabelValues("s3", "written")))
}

func TestNilSafeHelpers(t *testing.T) {
	// The helpers must be no-ops without a sink.
	assert.NotPanics(t, func() {
		metrics.ObserveOp(nil, "memory", "List", time.Now(), nil)
		metrics.AddRead(nil, "memory", 10)
		metrics.AddWritten(nil, "memory", 10)
	})
}

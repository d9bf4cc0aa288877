// Package metrics defines the instrumentation hooks RoamFS backends emit
// into. Backends receive a ClientMetrics by injection and call it around
// every operation; a nil ClientMetrics means metrics are disabled and
// costs nothing. The Prometheus implementation lives in
// pkg/metrics/prometheus so backends do not pull the Prometheus client
// into their dependency graph.
package metrics

import "time"

// ClientMetrics collects per-operation measurements from a backend.
type ClientMetrics interface {
	// ObserveOperation records one backend operation with its duration
	// and outcome. operation is the Client method name (List, Stat, ...).
	ObserveOperation(backend, operation string, duration time.Duration, err error)

	// AddBytesRead records payload bytes read from the backend.
	AddBytesRead(backend string, n int64)

	// AddBytesWritten records payload bytes written to the backend.
	AddBytesWritten(backend string, n int64)
}

// ObserveOp is the nil-safe helper backends call from a defer:
//
//	defer func() { metrics.ObserveOp(c.metrics, c.name, "List", start, err) }()
func ObserveOp(m ClientMetrics, backend, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.ObserveOperation(backend, operation, time.Since(start), err)
}

// AddRead is the nil-safe counterpart of AddBytesRead.
func AddRead(m ClientMetrics, backend string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.AddBytesRead(backend, n)
}

// AddWritten is the nil-safe counterpart of AddBytesWritten.
func AddWritten(m ClientMetrics, backend string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.AddBytesWritten(backend, n)
}

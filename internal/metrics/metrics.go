// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Registration metrics
	IncRegistration(status string) // status: "success", "rejected", "failed"
	ObserveRegistrationDuration(duration time.Duration)

	// Session metrics
	IncSessionResolve(status string) // status: "hit" or "miss"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}

package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncRegistration is a no-op.
func (n *NoopRecorder) IncRegistration(status string) {}

// ObserveRegistrationDuration is a no-op.
func (n *NoopRecorder) ObserveRegistrationDuration(duration time.Duration) {}

// IncSessionResolve is a no-op.
func (n *NoopRecorder) IncSessionResolve(status string) {}

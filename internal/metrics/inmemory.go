package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	RegistrationsSucceeded      uint64
	RegistrationsRejected       uint64
	RegistrationsFailed         uint64
	RegistrationDurationCount   uint64
	RegistrationDurationTotalNs int64
	SessionResolveHits          uint64
	SessionResolveMisses        uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	registrationsSucceeded      uint64
	registrationsRejected       uint64
	registrationsFailed         uint64
	registrationDurationCount   uint64
	registrationDurationTotalNs int64
	sessionResolveHits          uint64
	sessionResolveMisses        uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		RegistrationsSucceeded:      atomic.LoadUint64(&m.registrationsSucceeded),
		RegistrationsRejected:       atomic.LoadUint64(&m.registrationsRejected),
		RegistrationsFailed:         atomic.LoadUint64(&m.registrationsFailed),
		RegistrationDurationCount:   atomic.LoadUint64(&m.registrationDurationCount),
		RegistrationDurationTotalNs: atomic.LoadInt64(&m.registrationDurationTotalNs),
		SessionResolveHits:          atomic.LoadUint64(&m.sessionResolveHits),
		SessionResolveMisses:        atomic.LoadUint64(&m.sessionResolveMisses),
	}
}

// IncRegistration increments the counter for the given outcome.
func (m *InMemoryRecorder) IncRegistration(status string) {
	switch status {
	case "success":
		atomic.AddUint64(&m.registrationsSucceeded, 1)
	case "rejected":
		atomic.AddUint64(&m.registrationsRejected, 1)
	default:
		atomic.AddUint64(&m.registrationsFailed, 1)
	}
}

// ObserveRegistrationDuration records a registration duration.
func (m *InMemoryRecorder) ObserveRegistrationDuration(duration time.Duration) {
	atomic.AddUint64(&m.registrationDurationCount, 1)
	atomic.AddInt64(&m.registrationDurationTotalNs, duration.Nanoseconds())
}

// IncSessionResolve increments the session lookup counter.
func (m *InMemoryRecorder) IncSessionResolve(status string) {
	if status == "hit" {
		atomic.AddUint64(&m.sessionResolveHits, 1)
	} else {
		atomic.AddUint64(&m.sessionResolveMisses, 1)
	}
}

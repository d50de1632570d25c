package metrics

import (
	"testing"
	"time"
)

func TestInMemoryRecorder_Counters(t *testing.T) {
	t.Parallel()

	m := NewInMemory()

	m.IncRegistration("success")
	m.IncRegistration("success")
	m.IncRegistration("rejected")
	m.IncRegistration("failed")
	m.IncSessionResolve("hit")
	m.IncSessionResolve("miss")
	m.ObserveRegistrationDuration(10 * time.Millisecond)

	snap := m.Snapshot()

	if snap.RegistrationsSucceeded != 2 {
		t.Errorf("RegistrationsSucceeded = %d, want 2", snap.RegistrationsSucceeded)
	}
	if snap.RegistrationsRejected != 1 {
		t.Errorf("RegistrationsRejected = %d, want 1", snap.RegistrationsRejected)
	}
	if snap.RegistrationsFailed != 1 {
		t.Errorf("RegistrationsFailed = %d, want 1", snap.RegistrationsFailed)
	}
	if snap.SessionResolveHits != 1 {
		t.Errorf("SessionResolveHits = %d, want 1", snap.SessionResolveHits)
	}
	if snap.SessionResolveMisses != 1 {
		t.Errorf("SessionResolveMisses = %d, want 1", snap.SessionResolveMisses)
	}
	if snap.RegistrationDurationCount != 1 || snap.RegistrationDurationTotalNs != int64(10*time.Millisecond) {
		t.Errorf("duration counters = %d/%d, want 1/%d",
			snap.RegistrationDurationCount, snap.RegistrationDurationTotalNs, int64(10*time.Millisecond))
	}
}

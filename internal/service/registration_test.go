package service

import (
	"context"
	"errors"
	"testing"

	"github.com/accountd/accountd/internal/cache"
	"github.com/accountd/accountd/internal/metrics"
	"github.com/accountd/accountd/internal/model"
	"github.com/accountd/accountd/internal/repository"
)

// fakeDeps wires fake collaborators and records the call order so tests can
// assert the persist → issue → put sequencing.
type fakeDeps struct {
	calls []string

	registerErr error
	issueErr    error
	putErr      error

	sessions map[string]string
}

func newFakeDeps() *fakeDeps {
	return &fakeDeps{sessions: make(map[string]string)}
}

func (f *fakeDeps) RegisterUser(ctx context.Context, user *model.User, passwordHash string) (*model.User, error) {
	f.calls = append(f.calls, "register")
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	copied := *user
	return &copied, nil
}

func (f *fakeDeps) Issue(email string) (string, error) {
	f.calls = append(f.calls, "issue")
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return "token-for-" + email, nil
}

func (f *fakeDeps) PutSession(ctx context.Context, token, userID string) error {
	f.calls = append(f.calls, "put")
	if f.putErr != nil {
		return f.putErr
	}
	f.sessions[token] = userID
	return nil
}

func (f *fakeDeps) ResolveSession(ctx context.Context, token string) (string, error) {
	if userID, ok := f.sessions[token]; ok {
		return userID, nil
	}
	return "", cache.ErrSessionNotFound
}

func newTestService(deps *fakeDeps) (*RegistrationService, *metrics.InMemoryRecorder) {
	recorder := metrics.NewInMemory()
	return NewRegistrationService(deps, deps, deps, recorder), recorder
}

func validInput() RegisterInput {
	return RegisterInput{Email: "a@x.com", Name: "A", Password: "pw"}
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	deps := newFakeDeps()
	svc, recorder := newTestService(deps)

	result, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if result.User.ID == "" {
		t.Error("user should have a minted ID")
	}
	if result.Token == "" {
		t.Error("result should carry a token")
	}
	if result.User.JoinedAt.IsZero() {
		t.Error("user should have a join timestamp")
	}

	// Commit happens before issuance, issuance before the session write.
	want := []string{"register", "issue", "put"}
	if len(deps.calls) != len(want) {
		t.Fatalf("call sequence = %v, want %v", deps.calls, want)
	}
	for i := range want {
		if deps.calls[i] != want[i] {
			t.Fatalf("call sequence = %v, want %v", deps.calls, want)
		}
	}

	if got := recorder.Snapshot().RegistrationsSucceeded; got != 1 {
		t.Errorf("RegistrationsSucceeded = %d, want 1", got)
	}
}

func TestRegister_IncompleteForm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing email", RegisterInput{Email: "", Name: "A", Password: "pw"}},
		{"missing name", RegisterInput{Email: "a@x.com", Name: "", Password: "pw"}},
		{"missing password", RegisterInput{Email: "a@x.com", Name: "A", Password: ""}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deps := newFakeDeps()
			svc, _ := newTestService(deps)

			_, err := svc.Register(context.Background(), tt.input)
			if !errors.Is(err, ErrIncompleteForm) {
				t.Fatalf("expected ErrIncompleteForm, got %v", err)
			}

			// Rejection must happen before any store interaction.
			if len(deps.calls) != 0 {
				t.Errorf("no collaborator should be called, got %v", deps.calls)
			}
		})
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	t.Parallel()

	deps := newFakeDeps()
	deps.registerErr = repository.ErrEmailExists
	svc, _ := newTestService(deps)

	_, err := svc.Register(context.Background(), validInput())
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_StoreFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	deps := newFakeDeps()
	deps.registerErr = cause
	svc, _ := newTestService(deps)

	_, err := svc.Register(context.Background(), validInput())
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Fatalf("expected ErrRegistrationFailed, got %v", err)
	}
	// The cause stays attached internally.
	if !errors.Is(err, cause) {
		t.Errorf("wrapped error should preserve the cause, got %v", err)
	}

	// No token is minted for a user that was not persisted.
	for _, call := range deps.calls {
		if call == "issue" || call == "put" {
			t.Errorf("no token work should happen after a persistence failure, calls = %v", deps.calls)
		}
	}
}

func TestRegister_IssueFailure(t *testing.T) {
	t.Parallel()

	deps := newFakeDeps()
	deps.issueErr = errors.New("signing failed")
	svc, _ := newTestService(deps)

	_, err := svc.Register(context.Background(), validInput())
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Fatalf("expected ErrRegistrationFailed, got %v", err)
	}
	if len(deps.sessions) != 0 {
		t.Error("no session should be recorded when issuance fails")
	}
}

func TestRegister_SessionWriteFailure(t *testing.T) {
	t.Parallel()

	deps := newFakeDeps()
	deps.putErr = errors.New("store unavailable")
	svc, _ := newTestService(deps)

	_, err := svc.Register(context.Background(), validInput())
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Fatalf("expected ErrRegistrationFailed, got %v", err)
	}
}

func TestResolve_RoundTrip(t *testing.T) {
	t.Parallel()

	deps := newFakeDeps()
	svc, recorder := newTestService(deps)

	result, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	userID, err := svc.Resolve(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if userID != result.User.ID {
		t.Fatalf("resolved user id %q, want %q", userID, result.User.ID)
	}

	if got := recorder.Snapshot().SessionResolveHits; got != 1 {
		t.Errorf("SessionResolveHits = %d, want 1", got)
	}
}

func TestResolve_Unknown(t *testing.T) {
	t.Parallel()

	deps := newFakeDeps()
	svc, _ := newTestService(deps)

	for _, token := range []string{"", "never-issued"} {
		if _, err := svc.Resolve(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Resolve(%q) = %v, want ErrUnauthorized", token, err)
		}
	}
}

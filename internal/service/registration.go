// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/accountd/accountd/internal/auth"
	"github.com/accountd/accountd/internal/cache"
	"github.com/accountd/accountd/internal/metrics"
	"github.com/accountd/accountd/internal/model"
	"github.com/accountd/accountd/internal/repository"
)

// Service errors.
var (
	ErrIncompleteForm     = errors.New("incomplete registration form")
	ErrEmailTaken         = errors.New("email already registered")
	ErrRegistrationFailed = errors.New("registration failed")
	ErrUnauthorized       = errors.New("unauthorized")
)

// UserStore persists new accounts.
type UserStore interface {
	RegisterUser(ctx context.Context, user *model.User, passwordHash string) (*model.User, error)
}

// SessionStore associates issued tokens with user ids.
type SessionStore interface {
	PutSession(ctx context.Context, token, userID string) error
	ResolveSession(ctx context.Context, token string) (string, error)
}

// TokenIssuer mints signed identity tokens.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

// RegistrationService orchestrates account creation and session lookup.
type RegistrationService struct {
	store    UserStore
	sessions SessionStore
	issuer   TokenIssuer
	metrics  metrics.Recorder
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(store UserStore, sessions SessionStore, issuer TokenIssuer, recorder metrics.Recorder) *RegistrationService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RegistrationService{
		store:    store,
		sessions: sessions,
		issuer:   issuer,
		metrics:  recorder,
	}
}

// RegisterInput defines input for registering an account.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// RegisterResult is the outcome of a successful registration.
type RegisterResult struct {
	User  *model.User
	Token string
}

// Register validates the form, persists the account, then issues a session
// token. Persistence commits before the token is minted, and the token is
// minted before the session is recorded; a token never exists for a user
// that was not durably created.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	start := time.Now()

	if input.Email == "" || input.Name == "" || input.Password == "" {
		s.metrics.IncRegistration("rejected")
		return nil, ErrIncompleteForm
	}

	passwordHash, err := auth.HashPassword(input.Password)
	if err != nil {
		s.metrics.IncRegistration("failed")
		return nil, fmt.Errorf("%w: hash password: %w", ErrRegistrationFailed, err)
	}

	user := &model.User{
		ID:       ulid.Make().String(),
		Email:    input.Email,
		Name:     input.Name,
		JoinedAt: time.Now().UTC(),
	}

	created, err := s.store.RegisterUser(ctx, user, passwordHash)
	if err != nil {
		s.metrics.IncRegistration("failed")
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		// Cause stays attached for logs and tests; the HTTP boundary
		// flattens it to a generic client error.
		return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	token, err := s.issuer.Issue(created.Email)
	if err != nil {
		s.metrics.IncRegistration("failed")
		return nil, fmt.Errorf("%w: issue token: %w", ErrRegistrationFailed, err)
	}

	if err := s.sessions.PutSession(ctx, token, created.ID); err != nil {
		s.metrics.IncRegistration("failed")
		return nil, fmt.Errorf("%w: record session: %w", ErrRegistrationFailed, err)
	}

	s.metrics.IncRegistration("success")
	s.metrics.ObserveRegistrationDuration(time.Since(start))

	return &RegisterResult{User: created, Token: token}, nil
}

// Resolve returns the user id a token authenticates.
// A missing or unknown token yields ErrUnauthorized.
func (s *RegistrationService) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		s.metrics.IncSessionResolve("miss")
		return "", ErrUnauthorized
	}

	userID, err := s.sessions.ResolveSession(ctx, token)
	if err != nil {
		s.metrics.IncSessionResolve("miss")
		if errors.Is(err, cache.ErrSessionNotFound) {
			return "", ErrUnauthorized
		}
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	s.metrics.IncSessionResolve("hit")
	return userID, nil
}

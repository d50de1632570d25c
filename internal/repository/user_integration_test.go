//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/accountd/accountd/internal/testutil"
)

func TestIntegrationRegisterUser(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("register"))

	created, err := repo.RegisterUser(ctx, user, "$argon2id$test-hash")
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}

	if created.ID != user.ID {
		t.Errorf("ID mismatch: got %q, want %q", created.ID, user.ID)
	}
	if created.JoinedAt.IsZero() {
		t.Error("JoinedAt should be set")
	}

	// Both rows must exist after commit.
	profile, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if profile.Name != user.Name {
		t.Errorf("Name mismatch: got %q, want %q", profile.Name, user.Name)
	}

	hash, err := repo.GetPasswordHash(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetPasswordHash failed: %v", err)
	}
	if hash != "$argon2id$test-hash" {
		t.Errorf("hash mismatch: got %q", hash)
	}
}

func TestIntegrationRegisterUser_DuplicateEmail(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	email := testutil.UniqueEmail("dup")
	first := testutil.NewTestUser(t, email)
	second := testutil.NewTestUser(t, email)
	second.ID = first.ID + "-2"

	if _, err := repo.RegisterUser(ctx, first, "hash-1"); err != nil {
		t.Fatalf("RegisterUser (first) failed: %v", err)
	}

	_, err := repo.RegisterUser(ctx, second, "hash-2")
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got: %v", err)
	}
}

func TestIntegrationRegisterUser_AllOrNothing(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	email := testutil.UniqueEmail("rollback")

	// Force the profile insert to fail after the credential insert
	// succeeds: a second registration reusing an existing profile ID
	// violates the users primary key.
	existing := testutil.NewTestUser(t, testutil.UniqueEmail("existing"))
	if _, err := repo.RegisterUser(ctx, existing, "hash"); err != nil {
		t.Fatalf("RegisterUser (setup) failed: %v", err)
	}

	conflicting := testutil.NewTestUser(t, email)
	conflicting.ID = existing.ID

	if _, err := repo.RegisterUser(ctx, conflicting, "hash"); err == nil {
		t.Fatal("expected profile insert to fail")
	}

	// The credential row from the failed attempt must not survive.
	if _, err := repo.GetPasswordHash(ctx, email); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("credential row should have been rolled back, got: %v", err)
	}
	if _, err := repo.GetUserByEmail(ctx, email); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("no profile row should exist, got: %v", err)
	}
}

func TestIntegrationGetUserByID_NotFound(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	if _, err := repo.GetUserByID(ctx, "no-such-user"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
}

func newUserTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetAuthSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset auth schema: %v", err)
	}

	return ctx, repo
}

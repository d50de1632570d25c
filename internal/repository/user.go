package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/accountd/accountd/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)

// RegisterUser creates a credential row and its linked profile row in a
// single transaction. The two inserts are all-or-nothing: a failure at
// either step rolls back both, so a credential without a profile is never
// observable.
func (r *Repository) RegisterUser(ctx context.Context, user *model.User, passwordHash string) (*model.User, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("begin registration: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	credentialQuery := `
		INSERT INTO user_credentials (email, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING email
	`

	var credentialEmail string
	err = tx.QueryRow(ctx, credentialQuery, user.Email, passwordHash, user.JoinedAt).Scan(&credentialEmail)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}

	profileQuery := `
		INSERT INTO users (id, email, name, joined_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, name, joined_at
	`

	var created model.User
	err = tx.QueryRow(ctx, profileQuery, user.ID, credentialEmail, user.Name, user.JoinedAt).Scan(
		&created.ID,
		&created.Email,
		&created.Name,
		&created.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit registration: %w", err)
	}

	return &created, nil
}

// GetUserByID retrieves a user profile by its ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, email, name, joined_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.JoinedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &user, nil
}

// GetUserByEmail retrieves a user profile by its email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, name, joined_at
		FROM users
		WHERE email = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.JoinedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// GetPasswordHash retrieves the stored password hash for an email.
func (r *Repository) GetPasswordHash(ctx context.Context, email string) (string, error) {
	query := `
		SELECT password_hash
		FROM user_credentials
		WHERE email = $1
	`

	var hash string
	if err := r.pool.QueryRow(ctx, query, email).Scan(&hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get password hash: %w", err)
	}

	return hash, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	// PostgreSQL error code 23505 is unique_violation
	return err != nil && (strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "unique"))
}

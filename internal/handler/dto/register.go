// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// RegisterRequest represents the request body for registering an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// RegisterResponse represents a successful registration.
// Success is the string "true" for compatibility with existing clients.
type RegisterResponse struct {
	Success string `json:"success"`
	UserID  string `json:"userId"`
	Token   string `json:"token"`
}

// SessionResponse represents a resolved session lookup.
type SessionResponse struct {
	ID string `json:"id"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account profile.
// The password hash lives in a separate credentials row and is never
// carried on this struct.
type User struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}

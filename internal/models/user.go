package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns a collection of invoices.
// Invoices are keyed by the username; pricing never looks at the user.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Username is the login name and the owner key for invoices (unique).
	Username string `json:"username"`

	// PasswordHash is a bcrypt hash. Never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`
}

// NewUser creates a user with a fresh ID.
func NewUser(username, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}

package user

import (
	"context"
)

// Repository defines the interface for user persistence operations
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, u *User) error

	// Get retrieves a non-deleted user by ID
	Get(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a non-deleted user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates an existing user
	Update(ctx context.Context, u *User) error
}

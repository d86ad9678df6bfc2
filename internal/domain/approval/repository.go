package approval

import (
	"context"
)

// Repository defines the interface for approval record persistence.
// The log is append-only, so there are no update or delete operations.
type Repository interface {
	// Create appends a new approval record
	Create(ctx context.Context, r *Record) error

	// ListByContract retrieves all approval records for a contract,
	// newest first
	ListByContract(ctx context.Context, contractID string) ([]*Record, error)
}

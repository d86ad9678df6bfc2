package lead

import (
	"context"
	"time"

	"github.com/dealdesk/dealdesk/internal/types"
)

// Repository defines the interface for lead persistence operations
type Repository interface {
	// Create creates a new lead
	Create(ctx context.Context, l *Lead) error

	// Get retrieves a non-deleted lead by ID
	Get(ctx context.Context, id string) (*Lead, error)

	// Update updates an existing lead
	Update(ctx context.Context, l *Lead) error

	// Delete soft deletes a lead
	Delete(ctx context.Context, id string) error

	// List retrieves leads based on filter criteria
	List(ctx context.Context, filter *types.LeadFilter) ([]*Lead, error)

	// Count returns the total count of leads based on filter criteria
	Count(ctx context.Context, filter *types.LeadFilter) (int, error)

	// CountCreatedBetween counts non-deleted leads created in [start, end)
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int, error)
}

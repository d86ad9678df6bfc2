package customer

import (
	"context"
	"time"

	"github.com/dealdesk/dealdesk/internal/types"
)

// Repository defines the interface for customer persistence operations
type Repository interface {
	// Create creates a new customer
	Create(ctx context.Context, c *Customer) error

	// Get retrieves a non-deleted customer by ID
	Get(ctx context.Context, id string) (*Customer, error)

	// Update updates an existing customer
	Update(ctx context.Context, c *Customer) error

	// Delete soft deletes a customer
	Delete(ctx context.Context, id string) error

	// List retrieves customers based on filter criteria
	List(ctx context.Context, filter *types.CustomerFilter) ([]*Customer, error)

	// Count returns the total count of customers based on filter criteria
	Count(ctx context.Context, filter *types.CustomerFilter) (int, error)

	// CountCreatedBetween counts non-deleted customers created in [start, end)
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int, error)
}

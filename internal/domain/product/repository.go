package product

import (
	"context"

	"github.com/dealdesk/dealdesk/internal/types"
)

// Repository defines the interface for product persistence operations
type Repository interface {
	// Create creates a new product
	Create(ctx context.Context, p *Product) error

	// Get retrieves a non-deleted product by ID
	Get(ctx context.Context, id string) (*Product, error)

	// GetForUpdate retrieves a product by ID taking a row-level lock so
	// concurrent stock adjustments serialize. Must be called inside a
	// transaction.
	GetForUpdate(ctx context.Context, id string) (*Product, error)

	// Update updates an existing product including its stock and sales
	Update(ctx context.Context, p *Product) error

	// Delete soft deletes a product
	Delete(ctx context.Context, id string) error

	// List retrieves products based on filter criteria
	List(ctx context.Context, filter *types.ProductFilter) ([]*Product, error)

	// Count returns the total count of products based on filter criteria
	Count(ctx context.Context, filter *types.ProductFilter) (int, error)
}

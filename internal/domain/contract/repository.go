package contract

import (
	"context"
	"time"

	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for contract persistence operations
type Repository interface {
	// Create creates a new contract
	Create(ctx context.Context, c *Contract) error

	// Get retrieves a non-deleted contract by ID
	Get(ctx context.Context, id string) (*Contract, error)

	// Update updates an existing contract's header fields
	Update(ctx context.Context, c *Contract) error

	// Delete soft deletes a contract
	Delete(ctx context.Context, id string) error

	// List retrieves contracts based on filter criteria
	List(ctx context.Context, filter *types.ContractFilter) ([]*Contract, error)

	// Count returns the total count of contracts based on filter criteria
	Count(ctx context.Context, filter *types.ContractFilter) (int, error)

	// ExistsActiveByName reports whether a non-deleted contract with the
	// given name exists for the tenant
	ExistsActiveByName(ctx context.Context, name string) (bool, error)

	// CountByStatusUpdatedBetween counts non-deleted contracts in the given
	// status whose update time falls in [start, end), scoped to an owner
	// when ownerID is non-empty
	CountByStatusUpdatedBetween(ctx context.Context, ownerID string, status types.ContractStatus, start, end time.Time) (int, error)

	// CountCreatedBetween counts non-deleted contracts created in [start, end)
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int, error)

	// SumAmountCreatedBetween sums total amounts of non-deleted contracts
	// created in [start, end)
	SumAmountCreatedBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// CountGroupedByStatus returns per-status counts of an owner's
	// non-deleted contracts
	CountGroupedByStatus(ctx context.Context, ownerID string) (map[types.ContractStatus]int, error)
}

// LineItemRepository defines the interface for contract line item persistence
type LineItemRepository interface {
	// Create creates a new line item
	Create(ctx context.Context, item *LineItem) error

	// Update updates an existing line item
	Update(ctx context.Context, item *LineItem) error

	// Delete removes a line item
	Delete(ctx context.Context, id string) error

	// ListByContract retrieves all line items belonging to a contract
	ListByContract(ctx context.Context, contractID string) ([]*LineItem, error)

	// CountActiveByProduct counts line items referencing a product across
	// all non-deleted contracts
	CountActiveByProduct(ctx context.Context, productID string) (int, error)
}

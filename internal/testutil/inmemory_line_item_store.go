package testutil

import (
	"context"

	"github.com/dealdesk/dealdesk/internal/domain/contract"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
)

// InMemoryLineItemStore implements contract.LineItemRepository. It holds a
// reference to the contract store so CountActiveByProduct can exclude items
// of deleted contracts, the way the SQL join does.
type InMemoryLineItemStore struct {
	*InMemoryStore[*contract.LineItem]
	contracts *InMemoryContractStore
}

func NewInMemoryLineItemStore(contracts *InMemoryContractStore) *InMemoryLineItemStore {
	return &InMemoryLineItemStore{
		InMemoryStore: NewInMemoryStore[*contract.LineItem](),
		contracts:     contracts,
	}
}

func (s *InMemoryLineItemStore) Create(ctx context.Context, item *contract.LineItem) error {
	if item == nil {
		return ierr.NewError("line item cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, item.ID, item)
}

func (s *InMemoryLineItemStore) Update(ctx context.Context, item *contract.LineItem) error {
	if item == nil {
		return ierr.NewError("line item cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, item.ID, item)
}

func (s *InMemoryLineItemStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryLineItemStore) ListByContract(ctx context.Context, contractID string) ([]*contract.LineItem, error) {
	items := make([]*contract.LineItem, 0)
	for _, item := range s.All() {
		if item.ContractID == contractID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *InMemoryLineItemStore) SnapshotState() func() {
	return snapshotStore(s.InMemoryStore)
}

func (s *InMemoryLineItemStore) CountActiveByProduct(ctx context.Context, productID string) (int, error) {
	count := 0
	for _, item := range s.All() {
		if item.ProductID != productID {
			continue
		}
		c, err := s.contracts.InMemoryStore.Get(ctx, item.ContractID)
		if err != nil || c.Status == types.StatusDeleted {
			continue
		}
		count++
	}
	return count, nil
}

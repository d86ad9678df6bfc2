package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/dealdesk/dealdesk/internal/domain/contract"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/shopspring/decimal"
)

// InMemoryContractStore implements contract.Repository
type InMemoryContractStore struct {
	*InMemoryStore[*contract.Contract]
}

func NewInMemoryContractStore() *InMemoryContractStore {
	return &InMemoryContractStore{
		InMemoryStore: NewInMemoryStore[*contract.Contract](),
	}
}

func contractFilterFn(ctx context.Context, c *contract.Contract, filter interface{}) bool {
	if c == nil || c.Status == types.StatusDeleted {
		return false
	}
	if tenantID := types.GetTenantID(ctx); tenantID != "" && c.TenantID != tenantID {
		return false
	}

	f, ok := filter.(*types.ContractFilter)
	if !ok || f == nil {
		return true
	}

	if f.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Number != "" && c.Number != f.Number {
		return false
	}
	if f.CustomerID != "" && c.CustomerID != f.CustomerID {
		return false
	}
	if f.Status != nil && c.ContractStatus != *f.Status {
		return false
	}
	if f.OwnerID != "" && c.OwnerID != f.OwnerID {
		return false
	}
	return true
}

func contractSortFn(i, j *contract.Contract) bool {
	if i == nil || j == nil {
		return false
	}
	return i.CreatedAt.After(j.CreatedAt)
}

func (s *InMemoryContractStore) Create(ctx context.Context, c *contract.Contract) error {
	if c == nil {
		return ierr.NewError("contract cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, c.ID, c)
}

func (s *InMemoryContractStore) Get(ctx context.Context, id string) (*contract.Contract, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, contractNotFound(id)
	}
	if c.Status == types.StatusDeleted {
		return nil, contractNotFound(id)
	}
	return c, nil
}

func (s *InMemoryContractStore) Update(ctx context.Context, c *contract.Contract) error {
	if c == nil {
		return ierr.NewError("contract cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, c.ID, c)
}

func (s *InMemoryContractStore) Delete(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	c.Status = types.StatusDeleted
	return s.InMemoryStore.Update(ctx, id, c)
}

func (s *InMemoryContractStore) List(ctx context.Context, filter *types.ContractFilter) ([]*contract.Contract, error) {
	return s.InMemoryStore.List(ctx, filter, contractFilterFn, contractSortFn)
}

func (s *InMemoryContractStore) Count(ctx context.Context, filter *types.ContractFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, contractFilterFn)
}

func (s *InMemoryContractStore) ExistsActiveByName(ctx context.Context, name string) (bool, error) {
	for _, c := range s.All() {
		if c.Status != types.StatusDeleted && c.TenantID == types.GetTenantID(ctx) && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemoryContractStore) CountByStatusUpdatedBetween(ctx context.Context, ownerID string, status types.ContractStatus, start, end time.Time) (int, error) {
	count := 0
	for _, c := range s.All() {
		if c.Status == types.StatusDeleted || c.TenantID != types.GetTenantID(ctx) {
			continue
		}
		if c.ContractStatus != status {
			continue
		}
		if ownerID != "" && c.OwnerID != ownerID {
			continue
		}
		if c.UpdatedAt.Before(start) || !c.UpdatedAt.Before(end) {
			continue
		}
		count++
	}
	return count, nil
}

func (s *InMemoryContractStore) CountCreatedBetween(ctx context.Context, start, end time.Time) (int, error) {
	count := 0
	for _, c := range s.All() {
		if c.Status == types.StatusDeleted || c.TenantID != types.GetTenantID(ctx) {
			continue
		}
		if c.CreatedAt.Before(start) || !c.CreatedAt.Before(end) {
			continue
		}
		count++
	}
	return count, nil
}

func (s *InMemoryContractStore) SumAmountCreatedBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range s.All() {
		if c.Status == types.StatusDeleted || c.TenantID != types.GetTenantID(ctx) {
			continue
		}
		if c.CreatedAt.Before(start) || !c.CreatedAt.Before(end) {
			continue
		}
		sum = sum.Add(c.TotalAmount)
	}
	return sum, nil
}

func (s *InMemoryContractStore) CountGroupedByStatus(ctx context.Context, ownerID string) (map[types.ContractStatus]int, error) {
	counts := make(map[types.ContractStatus]int)
	for _, c := range s.All() {
		if c.Status == types.StatusDeleted || c.TenantID != types.GetTenantID(ctx) {
			continue
		}
		if ownerID != "" && c.OwnerID != ownerID {
			continue
		}
		counts[c.ContractStatus]++
	}
	return counts, nil
}

func (s *InMemoryContractStore) SnapshotState() func() {
	return snapshotStore(s.InMemoryStore)
}

func contractNotFound(id string) error {
	return ierr.NewError("contract not found").
		WithHintf("Contract with ID %s was not found", id).
		Mark(ierr.ErrNotFound)
}

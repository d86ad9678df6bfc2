package testutil

import (
	"context"
	"sort"

	"github.com/dealdesk/dealdesk/internal/domain/approval"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
)

// InMemoryApprovalStore implements approval.Repository
type InMemoryApprovalStore struct {
	*InMemoryStore[*approval.Record]
}

func NewInMemoryApprovalStore() *InMemoryApprovalStore {
	return &InMemoryApprovalStore{
		InMemoryStore: NewInMemoryStore[*approval.Record](),
	}
}

func (s *InMemoryApprovalStore) Create(ctx context.Context, r *approval.Record) error {
	if r == nil {
		return ierr.NewError("approval record cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, r.ID, r)
}

func (s *InMemoryApprovalStore) ListByContract(ctx context.Context, contractID string) ([]*approval.Record, error) {
	records := make([]*approval.Record, 0)
	for _, r := range s.All() {
		if r.ContractID == contractID {
			records = append(records, r)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *InMemoryApprovalStore) SnapshotState() func() {
	return snapshotStore(s.InMemoryStore)
}

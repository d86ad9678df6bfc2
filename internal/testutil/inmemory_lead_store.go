package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/dealdesk/dealdesk/internal/domain/lead"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
)

// InMemoryLeadStore implements lead.Repository
type InMemoryLeadStore struct {
	*InMemoryStore[*lead.Lead]
}

func NewInMemoryLeadStore() *InMemoryLeadStore {
	return &InMemoryLeadStore{
		InMemoryStore: NewInMemoryStore[*lead.Lead](),
	}
}

func leadFilterFn(ctx context.Context, l *lead.Lead, filter interface{}) bool {
	if l == nil || l.Status == types.StatusDeleted {
		return false
	}
	if tenantID := types.GetTenantID(ctx); tenantID != "" && l.TenantID != tenantID {
		return false
	}

	f, ok := filter.(*types.LeadFilter)
	if !ok || f == nil {
		return true
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(l.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Status != nil && l.LeadStatus != *f.Status {
		return false
	}
	if f.OwnerID != "" && l.OwnerID != f.OwnerID {
		return false
	}
	return true
}

func leadSortFn(i, j *lead.Lead) bool {
	if i == nil || j == nil {
		return false
	}
	return i.CreatedAt.After(j.CreatedAt)
}

func (s *InMemoryLeadStore) Create(ctx context.Context, l *lead.Lead) error {
	if l == nil {
		return ierr.NewError("lead cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, l.ID, l)
}

func (s *InMemoryLeadStore) Get(ctx context.Context, id string) (*lead.Lead, error) {
	l, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || l.Status == types.StatusDeleted {
		return nil, ierr.NewError("lead not found").
			WithHintf("Lead with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return l, nil
}

func (s *InMemoryLeadStore) Update(ctx context.Context, l *lead.Lead) error {
	if l == nil {
		return ierr.NewError("lead cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, l.ID, l)
}

func (s *InMemoryLeadStore) Delete(ctx context.Context, id string) error {
	l, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	l.Status = types.StatusDeleted
	return s.InMemoryStore.Update(ctx, id, l)
}

func (s *InMemoryLeadStore) List(ctx context.Context, filter *types.LeadFilter) ([]*lead.Lead, error) {
	return s.InMemoryStore.List(ctx, filter, leadFilterFn, leadSortFn)
}

func (s *InMemoryLeadStore) Count(ctx context.Context, filter *types.LeadFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, leadFilterFn)
}

func (s *InMemoryLeadStore) CountCreatedBetween(ctx context.Context, start, end time.Time) (int, error) {
	count := 0
	for _, l := range s.All() {
		if l.Status == types.StatusDeleted || l.TenantID != types.GetTenantID(ctx) {
			continue
		}
		if l.CreatedAt.Before(start) || !l.CreatedAt.Before(end) {
			continue
		}
		count++
	}
	return count, nil
}

func (s *InMemoryLeadStore) SnapshotState() func() {
	return snapshotStore(s.InMemoryStore)
}

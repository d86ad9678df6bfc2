package testutil

import (
	"context"

	"github.com/dealdesk/dealdesk/internal/domain/user"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, u.ID, u)
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || u.Status == types.StatusDeleted {
		return nil, userNotFound()
	}
	return u, nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range s.All() {
		if u.Status != types.StatusDeleted && u.Email == email {
			return u, nil
		}
	}
	return nil, userNotFound()
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, u.ID, u)
}

func userNotFound() error {
	return ierr.NewError("user not found").
		WithHint("User was not found").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryUserStore) SnapshotState() func() {
	return snapshotStore(s.InMemoryStore)
}

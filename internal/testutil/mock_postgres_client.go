package testutil

import (
	"context"

	"github.com/dealdesk/dealdesk/internal/logger"
	"github.com/dealdesk/dealdesk/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// TxStore is a store whose state the mock client can capture and restore, so
// WithTx keeps rollback semantics against in-memory stores.
type TxStore interface {
	// SnapshotState captures the current contents and returns a function
	// that restores them.
	SnapshotState() func()
}

// MockPostgresClient satisfies postgres.IClient for tests that run against
// in-memory stores. WithTx snapshots every registered store before running
// the function and restores all of them when it returns an error, so a
// failure partway through a multi-write operation leaves no partial state.
type MockPostgresClient struct {
	logger *logger.Logger
	stores []TxStore
}

func NewMockPostgresClient(logger *logger.Logger, stores ...TxStore) postgres.IClient {
	return &MockPostgresClient{logger: logger, stores: stores}
}

func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	restores := make([]func(), 0, len(c.stores))
	for _, store := range c.stores {
		restores = append(restores, store.SnapshotState())
	}

	if err := fn(ctx); err != nil {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
		return err
	}
	return nil
}

// GetQuerier returns nil: repository code never runs in these tests.
func (c *MockPostgresClient) GetQuerier(ctx context.Context) postgres.Querier {
	return nil
}

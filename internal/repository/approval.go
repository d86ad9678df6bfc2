package repository

import (
	"context"

	"github.com/dealdesk/dealdesk/internal/domain/approval"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/logger"
	"github.com/dealdesk/dealdesk/internal/postgres"
	"github.com/dealdesk/dealdesk/internal/types"
)

type approvalRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewApprovalRepository(client postgres.IClient, logger *logger.Logger) approval.Repository {
	return &approvalRepository{client: client, logger: logger}
}

func (r *approvalRepository) Create(ctx context.Context, rec *approval.Record) error {
	q := r.client.GetQuerier(ctx)
	_, err := q.NamedExecContext(ctx, `
		INSERT INTO approval_records (
			id, tenant_id, contract_id, reviewer_id, decision, comment, created_at
		) VALUES (
			:id, :tenant_id, :contract_id, :reviewer_id, :decision, :comment, :created_at
		)`, rec)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record approval").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *approvalRepository) ListByContract(ctx context.Context, contractID string) ([]*approval.Record, error) {
	q := r.client.GetQuerier(ctx)
	records := make([]*approval.Record, 0)
	err := q.SelectContext(ctx, &records, `
		SELECT id, tenant_id, contract_id, reviewer_id, decision, comment, created_at
		FROM approval_records
		WHERE contract_id = $1 AND tenant_id = $2
		ORDER BY created_at DESC`,
		contractID, types.GetTenantID(ctx))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list approval records").
			Mark(ierr.ErrDatabase)
	}
	return records, nil
}

package repository

import (
	"context"

	"github.com/dealdesk/dealdesk/internal/domain/contract"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/logger"
	"github.com/dealdesk/dealdesk/internal/postgres"
	"github.com/dealdesk/dealdesk/internal/types"
)

type lineItemRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewLineItemRepository(client postgres.IClient, logger *logger.Logger) contract.LineItemRepository {
	return &lineItemRepository{client: client, logger: logger}
}

func (r *lineItemRepository) Create(ctx context.Context, item *contract.LineItem) error {
	q := r.client.GetQuerier(ctx)
	_, err := q.NamedExecContext(ctx, `
		INSERT INTO contract_line_items (
			id, tenant_id, contract_id, product_id, product_name, unit_price, count, total,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :contract_id, :product_id, :product_name, :unit_price, :count, :total,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`, item)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create contract line item").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *lineItemRepository) Update(ctx context.Context, item *contract.LineItem) error {
	q := r.client.GetQuerier(ctx)
	res, err := q.NamedExecContext(ctx, `
		UPDATE contract_line_items SET
			product_name = :product_name,
			unit_price = :unit_price,
			count = :count,
			total = :total,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id`, item)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update contract line item").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("line item not found").
			WithHintf("Line item with ID %s was not found", item.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *lineItemRepository) Delete(ctx context.Context, id string) error {
	q := r.client.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		DELETE FROM contract_line_items WHERE id = $1 AND tenant_id = $2`,
		id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete contract line item").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *lineItemRepository) ListByContract(ctx context.Context, contractID string) ([]*contract.LineItem, error) {
	q := r.client.GetQuerier(ctx)
	items := make([]*contract.LineItem, 0)
	err := q.SelectContext(ctx, &items, `
		SELECT id, tenant_id, contract_id, product_id, product_name, unit_price, count, total,
			status, created_at, updated_at, created_by, updated_by
		FROM contract_line_items
		WHERE contract_id = $1 AND tenant_id = $2
		ORDER BY created_at ASC`,
		contractID, types.GetTenantID(ctx))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list contract line items").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *lineItemRepository) CountActiveByProduct(ctx context.Context, productID string) (int, error) {
	q := r.client.GetQuerier(ctx)
	var count int
	err := q.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM contract_line_items li
		JOIN contracts c ON c.id = li.contract_id AND c.tenant_id = li.tenant_id
		WHERE li.product_id = $1 AND li.tenant_id = $2 AND c.status != $3`,
		productID, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count line items for product").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

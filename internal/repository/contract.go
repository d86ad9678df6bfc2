package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/dealdesk/dealdesk/internal/domain/contract"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/logger"
	"github.com/dealdesk/dealdesk/internal/postgres"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/shopspring/decimal"
)

type contractRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewContractRepository(client postgres.IClient, logger *logger.Logger) contract.Repository {
	return &contractRepository{client: client, logger: logger}
}

func (r *contractRepository) Create(ctx context.Context, c *contract.Contract) error {
	q := r.client.GetQuerier(ctx)
	_, err := q.NamedExecContext(ctx, `
		INSERT INTO contracts (
			id, tenant_id, name, number, customer_id, owner_id, contract_status,
			total_amount, received_amount, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :name, :number, :customer_id, :owner_id, :contract_status,
			:total_amount, :received_amount, :status, :created_at, :updated_at, :created_by, :updated_by
		)`, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create contract").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *contractRepository) Get(ctx context.Context, id string) (*contract.Contract, error) {
	q := r.client.GetQuerier(ctx)
	var c contract.Contract
	err := q.GetContext(ctx, &c, `
		SELECT id, tenant_id, name, number, customer_id, owner_id, contract_status,
			total_amount, received_amount, status, created_at, updated_at, created_by, updated_by
		FROM contracts
		WHERE id = $1 AND tenant_id = $2 AND status != $3`,
		id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("contract not found").
				WithHintf("Contract with ID %s was not found", id).
				WithReportableDetails(map[string]any{"contract_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get contract").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *contractRepository) Update(ctx context.Context, c *contract.Contract) error {
	q := r.client.GetQuerier(ctx)
	res, err := q.NamedExecContext(ctx, `
		UPDATE contracts SET
			name = :name,
			customer_id = :customer_id,
			contract_status = :contract_status,
			total_amount = :total_amount,
			received_amount = :received_amount,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id AND status != 'deleted'`, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update contract").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("contract not found").
			WithHintf("Contract with ID %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *contractRepository) Delete(ctx context.Context, id string) error {
	q := r.client.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE contracts SET status = $1, updated_at = $2, updated_by = $3
		WHERE id = $4 AND tenant_id = $5 AND status != $1`,
		types.StatusDeleted, time.Now().UTC(), types.GetUserID(ctx), id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete contract").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("contract not found").
			WithHintf("Contract with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *contractRepository) List(ctx context.Context, filter *types.ContractFilter) ([]*contract.Contract, error) {
	query, args := r.buildListQuery(ctx, filter, `
		SELECT id, tenant_id, name, number, customer_id, owner_id, contract_status,
			total_amount, received_amount, status, created_at, updated_at, created_by, updated_by
		FROM contracts`)

	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.GetLimit(), filter.GetOffset())

	q := r.client.GetQuerier(ctx)
	contracts := make([]*contract.Contract, 0)
	if err := q.SelectContext(ctx, &contracts, rebind(query), args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list contracts").
			Mark(ierr.ErrDatabase)
	}
	return contracts, nil
}

func (r *contractRepository) Count(ctx context.Context, filter *types.ContractFilter) (int, error) {
	query, args := r.buildListQuery(ctx, filter, `SELECT COUNT(*) FROM contracts`)

	q := r.client.GetQuerier(ctx)
	var count int
	if err := q.GetContext(ctx, &count, rebind(query), args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count contracts").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

// buildListQuery appends the filter conditions shared by List and Count.
// Placeholders use `?` and are rebound to postgres form at the call site.
func (r *contractRepository) buildListQuery(ctx context.Context, filter *types.ContractFilter, base string) (string, []any) {
	query := base + ` WHERE tenant_id = ? AND status != ?`
	args := []any{types.GetTenantID(ctx), types.StatusDeleted}

	if filter.OwnerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, filter.OwnerID)
	}
	if filter.Name != "" {
		query += ` AND name ILIKE ?`
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.Number != "" {
		query += ` AND number ILIKE ?`
		args = append(args, "%"+filter.Number+"%")
	}
	if filter.CustomerID != "" {
		query += ` AND customer_id = ?`
		args = append(args, filter.CustomerID)
	}
	if filter.Status != nil {
		query += ` AND contract_status = ?`
		args = append(args, *filter.Status)
	}
	return query, args
}

func (r *contractRepository) ExistsActiveByName(ctx context.Context, name string) (bool, error) {
	q := r.client.GetQuerier(ctx)
	var exists bool
	err := q.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM contracts
			WHERE tenant_id = $1 AND name = $2 AND status != $3
		)`, types.GetTenantID(ctx), name, types.StatusDeleted)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check contract name").
			Mark(ierr.ErrDatabase)
	}
	return exists, nil
}

func (r *contractRepository) CountByStatusUpdatedBetween(ctx context.Context, ownerID string, status types.ContractStatus, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM contracts
		WHERE tenant_id = ? AND status != ? AND contract_status = ?
			AND updated_at >= ? AND updated_at < ?`
	args := []any{types.GetTenantID(ctx), types.StatusDeleted, status, start, end}
	if ownerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, ownerID)
	}

	q := r.client.GetQuerier(ctx)
	var count int
	if err := q.GetContext(ctx, &count, rebind(query), args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count contracts by status").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *contractRepository) CountCreatedBetween(ctx context.Context, start, end time.Time) (int, error) {
	q := r.client.GetQuerier(ctx)
	var count int
	err := q.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM contracts
		WHERE tenant_id = $1 AND status != $2 AND created_at >= $3 AND created_at < $4`,
		types.GetTenantID(ctx), types.StatusDeleted, start, end)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count contracts").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *contractRepository) SumAmountCreatedBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	q := r.client.GetQuerier(ctx)
	var sum decimal.Decimal
	err := q.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(total_amount), 0) FROM contracts
		WHERE tenant_id = $1 AND status != $2 AND created_at >= $3 AND created_at < $4`,
		types.GetTenantID(ctx), types.StatusDeleted, start, end)
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("Failed to sum contract amounts").
			Mark(ierr.ErrDatabase)
	}
	return sum, nil
}

func (r *contractRepository) CountGroupedByStatus(ctx context.Context, ownerID string) (map[types.ContractStatus]int, error) {
	query := `
		SELECT contract_status, COUNT(*) AS count FROM contracts
		WHERE tenant_id = ? AND status != ?`
	args := []any{types.GetTenantID(ctx), types.StatusDeleted}
	if ownerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, ownerID)
	}
	query += ` GROUP BY contract_status`

	q := r.client.GetQuerier(ctx)
	rows := make([]struct {
		ContractStatus types.ContractStatus `db:"contract_status"`
		Count          int                  `db:"count"`
	}, 0)
	if err := q.SelectContext(ctx, &rows, rebind(query), args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to count contracts by status").
			Mark(ierr.ErrDatabase)
	}

	result := make(map[types.ContractStatus]int, len(rows))
	for _, row := range rows {
		result[row.ContractStatus] = row.Count
	}
	return result, nil
}

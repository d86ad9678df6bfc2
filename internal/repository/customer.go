package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/dealdesk/dealdesk/internal/domain/customer"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/logger"
	"github.com/dealdesk/dealdesk/internal/postgres"
	"github.com/dealdesk/dealdesk/internal/types"
)

type customerRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewCustomerRepository(client postgres.IClient, logger *logger.Logger) customer.Repository {
	return &customerRepository{client: client, logger: logger}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	q := r.client.GetQuerier(ctx)
	_, err := q.NamedExecContext(ctx, `
		INSERT INTO customers (
			id, tenant_id, name, email, phone,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :name, :email, :phone,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create customer").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	q := r.client.GetQuerier(ctx)
	var c customer.Customer
	err := q.GetContext(ctx, &c, `
		SELECT id, tenant_id, name, email, phone,
			status, created_at, updated_at, created_by, updated_by
		FROM customers
		WHERE id = $1 AND tenant_id = $2 AND status != $3`,
		id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("customer not found").
				WithHintf("Customer with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get customer").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	q := r.client.GetQuerier(ctx)
	res, err := q.NamedExecContext(ctx, `
		UPDATE customers SET
			name = :name,
			email = :email,
			phone = :phone,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id AND status != 'deleted'`, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update customer").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	q := r.client.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE customers SET status = $1, updated_at = $2, updated_by = $3
		WHERE id = $4 AND tenant_id = $5 AND status != $1`,
		types.StatusDeleted, time.Now().UTC(), types.GetUserID(ctx), id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete customer").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *customerRepository) List(ctx context.Context, filter *types.CustomerFilter) ([]*customer.Customer, error) {
	query := `
		SELECT id, tenant_id, name, email, phone,
			status, created_at, updated_at, created_by, updated_by
		FROM customers WHERE tenant_id = ? AND status != ?`
	args := []any{types.GetTenantID(ctx), types.StatusDeleted}

	if filter.Name != "" {
		query += ` AND name ILIKE ?`
		args = append(args, "%"+filter.Name+"%")
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.GetLimit(), filter.GetOffset())

	q := r.client.GetQuerier(ctx)
	customers := make([]*customer.Customer, 0)
	if err := q.SelectContext(ctx, &customers, rebind(query), args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list customers").
			Mark(ierr.ErrDatabase)
	}
	return customers, nil
}

func (r *customerRepository) Count(ctx context.Context, filter *types.CustomerFilter) (int, error) {
	query := `SELECT COUNT(*) FROM customers WHERE tenant_id = ? AND status != ?`
	args := []any{types.GetTenantID(ctx), types.StatusDeleted}

	if filter.Name != "" {
		query += ` AND name ILIKE ?`
		args = append(args, "%"+filter.Name+"%")
	}

	q := r.client.GetQuerier(ctx)
	var count int
	if err := q.GetContext(ctx, &count, rebind(query), args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count customers").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *customerRepository) CountCreatedBetween(ctx context.Context, start, end time.Time) (int, error) {
	q := r.client.GetQuerier(ctx)
	var count int
	err := q.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM customers
		WHERE tenant_id = $1 AND status != $2 AND created_at >= $3 AND created_at < $4`,
		types.GetTenantID(ctx), types.StatusDeleted, start, end)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count customers").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

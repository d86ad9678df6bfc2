package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/dealdesk/dealdesk/internal/domain/product"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/logger"
	"github.com/dealdesk/dealdesk/internal/postgres"
	"github.com/dealdesk/dealdesk/internal/types"
)

type productRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewProductRepository(client postgres.IClient, logger *logger.Logger) product.Repository {
	return &productRepository{client: client, logger: logger}
}

const productColumns = `id, tenant_id, name, price, stock, sales,
	status, created_at, updated_at, created_by, updated_by`

func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	q := r.client.GetQuerier(ctx)
	_, err := q.NamedExecContext(ctx, `
		INSERT INTO products (
			id, tenant_id, name, price, stock, sales,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :name, :price, :stock, :sales,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`, p)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create product").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *productRepository) Get(ctx context.Context, id string) (*product.Product, error) {
	return r.get(ctx, id, false)
}

func (r *productRepository) GetForUpdate(ctx context.Context, id string) (*product.Product, error) {
	return r.get(ctx, id, true)
}

func (r *productRepository) get(ctx context.Context, id string, forUpdate bool) (*product.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE id = $1 AND tenant_id = $2 AND status != $3`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	q := r.client.GetQuerier(ctx)
	var p product.Product
	err := q.GetContext(ctx, &p, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("product not found").
				WithHintf("Product with ID %s was not found", id).
				WithReportableDetails(map[string]any{"product_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get product").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	q := r.client.GetQuerier(ctx)
	res, err := q.NamedExecContext(ctx, `
		UPDATE products SET
			name = :name,
			price = :price,
			stock = :stock,
			sales = :sales,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id AND status != 'deleted'`, p)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update product").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("product not found").
			WithHintf("Product with ID %s was not found", p.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	q := r.client.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE products SET status = $1, updated_at = $2, updated_by = $3
		WHERE id = $4 AND tenant_id = $5 AND status != $1`,
		types.StatusDeleted, time.Now().UTC(), types.GetUserID(ctx), id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete product").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("product not found").
			WithHintf("Product with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *productRepository) List(ctx context.Context, filter *types.ProductFilter) ([]*product.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE tenant_id = ? AND status != ?`
	args := []any{types.GetTenantID(ctx), types.StatusDeleted}

	if filter.Name != "" {
		query += ` AND name ILIKE ?`
		args = append(args, "%"+filter.Name+"%")
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.GetLimit(), filter.GetOffset())

	q := r.client.GetQuerier(ctx)
	products := make([]*product.Product, 0)
	if err := q.SelectContext(ctx, &products, rebind(query), args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list products").
			Mark(ierr.ErrDatabase)
	}
	return products, nil
}

func (r *productRepository) Count(ctx context.Context, filter *types.ProductFilter) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE tenant_id = ? AND status != ?`
	args := []any{types.GetTenantID(ctx), types.StatusDeleted}

	if filter.Name != "" {
		query += ` AND name ILIKE ?`
		args = append(args, "%"+filter.Name+"%")
	}

	q := r.client.GetQuerier(ctx)
	var count int
	if err := q.GetContext(ctx, &count, rebind(query), args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count products").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/dealdesk/dealdesk/internal/domain/lead"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/logger"
	"github.com/dealdesk/dealdesk/internal/postgres"
	"github.com/dealdesk/dealdesk/internal/types"
)

type leadRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewLeadRepository(client postgres.IClient, logger *logger.Logger) lead.Repository {
	return &leadRepository{client: client, logger: logger}
}

const leadColumns = `id, tenant_id, name, source, phone, lead_status, owner_id,
	status, created_at, updated_at, created_by, updated_by`

func (r *leadRepository) Create(ctx context.Context, l *lead.Lead) error {
	q := r.client.GetQuerier(ctx)
	_, err := q.NamedExecContext(ctx, `
		INSERT INTO leads (
			id, tenant_id, name, source, phone, lead_status, owner_id,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :name, :source, :phone, :lead_status, :owner_id,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`, l)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create lead").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *leadRepository) Get(ctx context.Context, id string) (*lead.Lead, error) {
	q := r.client.GetQuerier(ctx)
	var l lead.Lead
	err := q.GetContext(ctx, &l, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE id = $1 AND tenant_id = $2 AND status != $3`,
		id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("lead not found").
				WithHintf("Lead with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get lead").
			Mark(ierr.ErrDatabase)
	}
	return &l, nil
}

func (r *leadRepository) Update(ctx context.Context, l *lead.Lead) error {
	q := r.client.GetQuerier(ctx)
	res, err := q.NamedExecContext(ctx, `
		UPDATE leads SET
			name = :name,
			source = :source,
			phone = :phone,
			lead_status = :lead_status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id AND status != 'deleted'`, l)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update lead").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("lead not found").
			WithHintf("Lead with ID %s was not found", l.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *leadRepository) Delete(ctx context.Context, id string) error {
	q := r.client.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE leads SET status = $1, updated_at = $2, updated_by = $3
		WHERE id = $4 AND tenant_id = $5 AND status != $1`,
		types.StatusDeleted, time.Now().UTC(), types.GetUserID(ctx), id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete lead").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("lead not found").
			WithHintf("Lead with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *leadRepository) List(ctx context.Context, filter *types.LeadFilter) ([]*lead.Lead, error) {
	query, args := r.buildListQuery(ctx, filter, `SELECT `+leadColumns+` FROM leads`)

	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.GetLimit(), filter.GetOffset())

	q := r.client.GetQuerier(ctx)
	leads := make([]*lead.Lead, 0)
	if err := q.SelectContext(ctx, &leads, rebind(query), args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list leads").
			Mark(ierr.ErrDatabase)
	}
	return leads, nil
}

func (r *leadRepository) Count(ctx context.Context, filter *types.LeadFilter) (int, error) {
	query, args := r.buildListQuery(ctx, filter, `SELECT COUNT(*) FROM leads`)

	q := r.client.GetQuerier(ctx)
	var count int
	if err := q.GetContext(ctx, &count, rebind(query), args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count leads").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *leadRepository) buildListQuery(ctx context.Context, filter *types.LeadFilter, base string) (string, []any) {
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
	if filter.Status != nil {
		query += ` AND lead_status = ?`
		args = append(args, *filter.Status)
	}
	return query, args
}

func (r *leadRepository) CountCreatedBetween(ctx context.Context, start, end time.Time) (int, error) {
	q := r.client.GetQuerier(ctx)
	var count int
	err := q.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM leads
		WHERE tenant_id = $1 AND status != $2 AND created_at >= $3 AND created_at < $4`,
		types.GetTenantID(ctx), types.StatusDeleted, start, end)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count leads").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

package approval

import (
	"time"

	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
)

// Record is one approval decision on a contract. Records are append-only:
// they are never updated or deleted, so they carry their own audit fields
// instead of the mutable BaseModel.
type Record struct {
	ID         string                 `db:"id" json:"id"`
	TenantID   string                 `db:"tenant_id" json:"tenant_id"`
	ContractID string                 `db:"contract_id" json:"contract_id"`
	ReviewerID string                 `db:"reviewer_id" json:"reviewer_id"`
	Decision   types.ApprovalDecision `db:"decision" json:"decision"`
	Comment    string                 `db:"comment" json:"comment"`
	CreatedAt  time.Time              `db:"created_at" json:"created_at"`
}

func (r *Record) Validate() error {
	if r.ContractID == "" {
		return ierr.NewError("approval contract ID is required").
			WithHint("Approval record must reference a contract").
			Mark(ierr.ErrValidation)
	}

	if r.Comment == "" {
		return ierr.NewError("approval comment is required").
			WithHint("Please provide a review comment").
			Mark(ierr.ErrValidation)
	}

	return r.Decision.Validate()
}

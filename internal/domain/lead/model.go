package lead

import (
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
)

// Lead represents a sales lead prior to conversion into a customer
type Lead struct {
	ID         string           `db:"id" json:"id"`
	Name       string           `db:"name" json:"name"`
	Source     string           `db:"source" json:"source"`
	Phone      string           `db:"phone" json:"phone"`
	LeadStatus types.LeadStatus `db:"lead_status" json:"lead_status"`
	OwnerID    string           `db:"owner_id" json:"owner_id"`
	types.BaseModel
}

func (l *Lead) Validate() error {
	if l.Name == "" {
		return ierr.NewError("lead name is required").
			WithHint("Please provide a lead name").
			Mark(ierr.ErrValidation)
	}
	return l.LeadStatus.Validate()
}

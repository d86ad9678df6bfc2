package types

import (
	ierr "github.com/dealdesk/dealdesk/internal/errors"
)

// LeadStatus tracks a sales lead through qualification.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

func (s LeadStatus) Validate() error {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusLost:
		return nil
	default:
		return ierr.NewError("invalid lead status").
			WithHintf("Invalid lead status: %s", s).
			Mark(ierr.ErrValidation)
	}
}

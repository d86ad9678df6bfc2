package dto

import (
	"context"

	"github.com/dealdesk/dealdesk/internal/domain/lead"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/dealdesk/dealdesk/internal/validator"
)

type CreateLeadRequest struct {
	Name   string            `json:"name" validate:"required"`
	Source string            `json:"source"`
	Phone  string            `json:"phone"`
	Status *types.LeadStatus `json:"status,omitempty"`
}

func (r *CreateLeadRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Status != nil {
		return r.Status.Validate()
	}
	return nil
}

func (r *CreateLeadRequest) ToLead(ctx context.Context) *lead.Lead {
	l := &lead.Lead{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEAD),
		Name:       r.Name,
		Source:     r.Source,
		Phone:      r.Phone,
		LeadStatus: types.LeadStatusNew,
		OwnerID:    types.GetUserID(ctx),
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
	if r.Status != nil {
		l.LeadStatus = *r.Status
	}
	return l
}

type UpdateLeadRequest struct {
	Name   *string           `json:"name,omitempty"`
	Source *string           `json:"source,omitempty"`
	Phone  *string           `json:"phone,omitempty"`
	Status *types.LeadStatus `json:"status,omitempty"`
}

func (r *UpdateLeadRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return ierr.NewError("lead name cannot be empty").
			WithHint("Please provide a non-empty lead name").
			Mark(ierr.ErrValidation)
	}
	if r.Status != nil {
		return r.Status.Validate()
	}
	return nil
}

type LeadResponse struct {
	*lead.Lead
}

type ListLeadsResponse struct {
	Items      []*LeadResponse          `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

package dto

import (
	"context"

	"github.com/dealdesk/dealdesk/internal/domain/customer"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/dealdesk/dealdesk/internal/validator"
)

type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

func (r *CreateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateCustomerRequest) ToCustomer(ctx context.Context) *customer.Customer {
	return &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty"`
}

func (r *UpdateCustomerRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Name != nil && *r.Name == "" {
		return ierr.NewError("customer name cannot be empty").
			WithHint("Please provide a non-empty customer name").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type CustomerResponse struct {
	*customer.Customer
}

type ListCustomersResponse struct {
	Items      []*CustomerResponse      `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

package dto

import (
	"context"

	"github.com/dealdesk/dealdesk/internal/domain/approval"
	"github.com/dealdesk/dealdesk/internal/domain/contract"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/dealdesk/dealdesk/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ContractLineItemRequest is one entry in the caller's desired line-item
// list, keyed by product.
type ContractLineItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Count     int    `json:"count" validate:"required,gt=0"`
}

type CreateContractRequest struct {
	Name           string                    `json:"name" validate:"required"`
	CustomerID     string                    `json:"customer_id" validate:"required"`
	TotalAmount    decimal.Decimal           `json:"total_amount"`
	ReceivedAmount *decimal.Decimal          `json:"received_amount,omitempty"`
	Status         *types.ContractStatus     `json:"status,omitempty"`
	LineItems      []ContractLineItemRequest `json:"line_items,omitempty"`
}

func (r *CreateContractRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.Status != nil {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}

	return validateLineItemRequests(r.LineItems)
}

func (r *CreateContractRequest) ToContract(ctx context.Context) *contract.Contract {
	c := &contract.Contract{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CONTRACT),
		Name:           r.Name,
		Number:         types.GenerateContractNumber(),
		CustomerID:     r.CustomerID,
		OwnerID:        types.GetUserID(ctx),
		ContractStatus: types.ContractStatusInit,
		TotalAmount:    r.TotalAmount,
		ReceivedAmount: decimal.Zero,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}

	if r.Status != nil {
		c.ContractStatus = *r.Status
	}
	if r.ReceivedAmount != nil {
		c.ReceivedAmount = *r.ReceivedAmount
	}

	return c
}

// UpdateContractRequest carries only the fields the caller wants to change.
// A nil LineItems leaves the persisted line items untouched; a non-nil
// (possibly empty) list is reconciled as the full desired set.
type UpdateContractRequest struct {
	Name           *string                    `json:"name,omitempty"`
	CustomerID     *string                    `json:"customer_id,omitempty"`
	TotalAmount    *decimal.Decimal           `json:"total_amount,omitempty"`
	ReceivedAmount *decimal.Decimal           `json:"received_amount,omitempty"`
	LineItems      *[]ContractLineItemRequest `json:"line_items,omitempty"`
}

func (r *UpdateContractRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.Name != nil && *r.Name == "" {
		return ierr.NewError("contract name cannot be empty").
			WithHint("Please provide a non-empty contract name").
			Mark(ierr.ErrValidation)
	}

	if r.LineItems != nil {
		return validateLineItemRequests(*r.LineItems)
	}
	return nil
}

func validateLineItemRequests(items []ContractLineItemRequest) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			return ierr.NewError("line item product ID is required").
				WithHint("Each line item must reference a product").
				Mark(ierr.ErrValidation)
		}
		if item.Count <= 0 {
			return ierr.NewError("line item count must be positive").
				WithHint("Each line item count must be greater than zero").
				WithReportableDetails(map[string]any{"product_id": item.ProductID}).
				Mark(ierr.ErrValidation)
		}
		if _, ok := seen[item.ProductID]; ok {
			return ierr.NewError("duplicate product in line items").
				WithHint("Each product may appear at most once").
				WithReportableDetails(map[string]any{"product_id": item.ProductID}).
				Mark(ierr.ErrValidation)
		}
		seen[item.ProductID] = struct{}{}
	}
	return nil
}

// ApproveContractRequest records a reviewer decision
type ApproveContractRequest struct {
	Decision types.ApprovalDecision `json:"decision" validate:"required"`
	Comment  string                 `json:"comment" validate:"required"`
}

func (r *ApproveContractRequest) Validate() error {
	if lo.IsEmpty(r.Comment) {
		return ierr.NewError("approval comment is required").
			WithHint("Please provide a review comment").
			Mark(ierr.ErrValidation)
	}
	return r.Decision.Validate()
}

type ContractResponse struct {
	*contract.Contract
}

type ListContractsResponse struct {
	Items      []*ContractResponse      `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

type ApprovalRecordResponse struct {
	*approval.Record
}

type ListApprovalRecordsResponse struct {
	Items []*ApprovalRecordResponse `json:"items"`
}

// ContractStatusBreakdown is one slice of the status distribution chart
type ContractStatusBreakdown struct {
	Status     types.ContractStatus `json:"status"`
	Count      int                  `json:"count"`
	Proportion float64              `json:"proportion"`
}

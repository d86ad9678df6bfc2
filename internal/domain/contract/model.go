package contract

import (
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Contract represents the contract domain model. A contract owns its line
// items; they live and die with it. Number is assigned at creation and is
// immutable afterwards.
type Contract struct {
	ID             string               `db:"id" json:"id"`
	Name           string               `db:"name" json:"name"`
	Number         string               `db:"number" json:"number"`
	CustomerID     string               `db:"customer_id" json:"customer_id"`
	OwnerID        string               `db:"owner_id" json:"owner_id"`
	ContractStatus types.ContractStatus `db:"contract_status" json:"contract_status"`
	TotalAmount    decimal.Decimal      `db:"total_amount" json:"total_amount"`
	ReceivedAmount decimal.Decimal      `db:"received_amount" json:"received_amount"`
	LineItems      []*LineItem          `db:"-" json:"line_items,omitempty"`
	types.BaseModel
}

func (c *Contract) Validate() error {
	if c.Name == "" {
		return ierr.NewError("contract name is required").
			WithHint("Please provide a contract name").
			Mark(ierr.ErrValidation)
	}

	if c.CustomerID == "" {
		return ierr.NewError("customer ID is required").
			WithHint("Please provide a customer for the contract").
			Mark(ierr.ErrValidation)
	}

	if err := c.ContractStatus.Validate(); err != nil {
		return err
	}

	if c.TotalAmount.IsNegative() {
		return ierr.NewError("total amount must be non negative").
			WithHint("Total amount must be non negative").
			Mark(ierr.ErrValidation)
	}

	if c.ReceivedAmount.IsNegative() {
		return ierr.NewError("received amount must be non negative").
			WithHint("Received amount must be non negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

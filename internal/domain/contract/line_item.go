package contract

import (
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/shopspring/decimal"
)

// LineItem associates a contract with a product at a given count.
// ProductName and UnitPrice are denormalized snapshots taken when the item
// is added or its count changes; Total is always UnitPrice * Count.
type LineItem struct {
	ID          string          `db:"id" json:"id"`
	ContractID  string          `db:"contract_id" json:"contract_id"`
	ProductID   string          `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	Count       int             `db:"count" json:"count"`
	Total       decimal.Decimal `db:"total" json:"total"`
	types.BaseModel
}

func (li *LineItem) Validate() error {
	if li.ContractID == "" {
		return ierr.NewError("line item contract ID is required").
			WithHint("Line item must belong to a contract").
			Mark(ierr.ErrValidation)
	}

	if li.ProductID == "" {
		return ierr.NewError("line item product ID is required").
			WithHint("Line item must reference a product").
			Mark(ierr.ErrValidation)
	}

	if li.Count <= 0 {
		return ierr.NewError("line item count must be positive").
			WithHint("Line item count must be greater than zero").
			Mark(ierr.ErrValidation)
	}

	if li.UnitPrice.IsNegative() {
		return ierr.NewError("line item unit price must be non negative").
			WithHint("Line item unit price must be non negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

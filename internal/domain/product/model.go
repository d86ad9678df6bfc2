package product

import (
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Product represents a sellable product. Stock is the quantity available
// for reservation and may never go negative; Sales is the cumulative count
// reserved by contracts.
type Product struct {
	ID    string          `db:"id" json:"id"`
	Name  string          `db:"name" json:"name"`
	Price decimal.Decimal `db:"price" json:"price"`
	Stock int             `db:"stock" json:"stock"`
	Sales int             `db:"sales" json:"sales"`
	types.BaseModel
}

func (p *Product) Validate() error {
	if p.Name == "" {
		return ierr.NewError("product name is required").
			WithHint("Please provide a product name").
			Mark(ierr.ErrValidation)
	}

	if p.Price.IsNegative() {
		return ierr.NewError("product price must be non negative").
			WithHint("Product price must be non negative").
			Mark(ierr.ErrValidation)
	}

	if p.Stock < 0 {
		return ierr.NewError("product stock must be non negative").
			WithHint("Product stock must be non negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

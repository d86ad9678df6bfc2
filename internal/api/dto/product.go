package dto

import (
	"context"

	"github.com/dealdesk/dealdesk/internal/domain/product"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/dealdesk/dealdesk/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

func (r *CreateProductRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.Price.IsNegative() {
		return ierr.NewError("product price must be non negative").
			WithHint("Product price must be non negative").
			Mark(ierr.ErrValidation)
	}

	if r.Stock < 0 {
		return ierr.NewError("product stock must be non negative").
			WithHint("Product stock must be non negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

func (r *CreateProductRequest) ToProduct(ctx context.Context) *product.Product {
	return &product.Product{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT),
		Name:      r.Name,
		Price:     r.Price,
		Stock:     r.Stock,
		Sales:     0,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type UpdateProductRequest struct {
	Name  *string          `json:"name,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
	Stock *int             `json:"stock,omitempty"`
}

func (r *UpdateProductRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return ierr.NewError("product name cannot be empty").
			WithHint("Please provide a non-empty product name").
			Mark(ierr.ErrValidation)
	}
	if r.Price != nil && r.Price.IsNegative() {
		return ierr.NewError("product price must be non negative").
			WithHint("Product price must be non negative").
			Mark(ierr.ErrValidation)
	}
	if r.Stock != nil && *r.Stock < 0 {
		return ierr.NewError("product stock must be non negative").
			WithHint("Product stock must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type ProductResponse struct {
	*product.Product
}

type ListProductsResponse struct {
	Items      []*ProductResponse       `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

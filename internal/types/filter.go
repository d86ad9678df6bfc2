package types

import (
	ierr "github.com/dealdesk/dealdesk/internal/errors"
)

const (
	FilterDefaultLimit = 50
	FilterMaxLimit     = 1000
)

// QueryFilter holds the common pagination fields shared by all list filters.
type QueryFilter struct {
	Limit  *int `json:"limit,omitempty" form:"limit"`
	Offset *int `json:"offset,omitempty" form:"offset"`
}

func (f QueryFilter) GetLimit() int {
	if f.Limit == nil || *f.Limit <= 0 {
		return FilterDefaultLimit
	}
	return *f.Limit
}

func (f QueryFilter) GetOffset() int {
	if f.Offset == nil || *f.Offset < 0 {
		return 0
	}
	return *f.Offset
}

func (f QueryFilter) Validate() error {
	if f.Limit != nil && *f.Limit > FilterMaxLimit {
		return ierr.NewError("limit too large").
			WithHintf("Limit must be at most %d", FilterMaxLimit).
			Mark(ierr.ErrValidation)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("offset must be non-negative").
			WithHint("Offset must be non-negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ContractFilter narrows contract list queries. All fields are optional and
// combine with AND. OwnerID is stamped from context by the service layer.
type ContractFilter struct {
	QueryFilter
	Name       string          `json:"name,omitempty" form:"name"`
	Number     string          `json:"number,omitempty" form:"number"`
	CustomerID string          `json:"customer_id,omitempty" form:"customer_id"`
	Status     *ContractStatus `json:"status,omitempty" form:"status"`
	OwnerID    string          `json:"-" form:"-"`
}

func NewContractFilter() *ContractFilter {
	return &ContractFilter{}
}

func (f *ContractFilter) Validate() error {
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ProductFilter narrows product list queries.
type ProductFilter struct {
	QueryFilter
	Name string `json:"name,omitempty" form:"name"`
}

func NewProductFilter() *ProductFilter {
	return &ProductFilter{}
}

func (f *ProductFilter) Validate() error {
	return f.QueryFilter.Validate()
}

// CustomerFilter narrows customer list queries.
type CustomerFilter struct {
	QueryFilter
	Name string `json:"name,omitempty" form:"name"`
}

func NewCustomerFilter() *CustomerFilter {
	return &CustomerFilter{}
}

func (f *CustomerFilter) Validate() error {
	return f.QueryFilter.Validate()
}

// LeadFilter narrows lead list queries.
type LeadFilter struct {
	QueryFilter
	Name    string      `json:"name,omitempty" form:"name"`
	Status  *LeadStatus `json:"status,omitempty" form:"status"`
	OwnerID string      `json:"-" form:"-"`
}

func NewLeadFilter() *LeadFilter {
	return &LeadFilter{}
}

func (f *LeadFilter) Validate() error {
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

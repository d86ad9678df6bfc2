package service

import (
	"testing"

	"github.com/dealdesk/dealdesk/internal/api/dto"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/testutil"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ProductServiceSuite struct {
	testutil.BaseServiceTestSuite
	service   ProductService
	contracts ContractService
}

func TestProductService(t *testing.T) {
	suite.Run(t, new(ProductServiceSuite))
}

func (s *ProductServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	params := ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		Sender:       s.GetSender(),
		Cache:        s.GetCache(),
		ContractRepo: stores.ContractRepo,
		LineItemRepo: stores.LineItemRepo,
		ProductRepo:  stores.ProductRepo,
		ApprovalRepo: stores.ApprovalRepo,
		CustomerRepo: stores.CustomerRepo,
		LeadRepo:     stores.LeadRepo,
		UserRepo:     stores.UserRepo,
	}
	s.service = NewProductService(params)
	s.contracts = NewContractService(params)
}

func (s *ProductServiceSuite) TestCreateProduct() {
	resp, err := s.service.CreateProduct(s.GetContext(), dto.CreateProductRequest{
		Name:  "Widget",
		Price: decimal.NewFromInt(50),
		Stock: 10,
	})
	s.NoError(err)
	s.Equal("Widget", resp.Name)
	s.Equal(10, resp.Stock)
	s.Equal(0, resp.Sales)
}

func (s *ProductServiceSuite) TestCreateProductNegativePrice() {
	_, err := s.service.CreateProduct(s.GetContext(), dto.CreateProductRequest{
		Name:  "Widget",
		Price: decimal.NewFromInt(-1),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ProductServiceSuite) TestUpdateProduct() {
	resp, err := s.service.CreateProduct(s.GetContext(), dto.CreateProductRequest{
		Name:  "Widget",
		Price: decimal.NewFromInt(50),
		Stock: 10,
	})
	s.NoError(err)

	newPrice := decimal.NewFromInt(75)
	updated, err := s.service.UpdateProduct(s.GetContext(), resp.ID, dto.UpdateProductRequest{Price: &newPrice})
	s.NoError(err)
	s.True(updated.Price.Equal(newPrice))
	s.Equal(10, updated.Stock)
}

func (s *ProductServiceSuite) TestDeleteProduct() {
	resp, err := s.service.CreateProduct(s.GetContext(), dto.CreateProductRequest{
		Name:  "Widget",
		Price: decimal.NewFromInt(50),
		Stock: 10,
	})
	s.NoError(err)

	s.NoError(s.service.DeleteProduct(s.GetContext(), resp.ID))

	_, err = s.service.GetProduct(s.GetContext(), resp.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ProductServiceSuite) TestDeleteProductBlockedWhileReferenced() {
	p, err := s.service.CreateProduct(s.GetContext(), dto.CreateProductRequest{
		Name:  "Widget",
		Price: decimal.NewFromInt(50),
		Stock: 10,
	})
	s.NoError(err)

	c, err := s.contracts.CreateContract(s.GetContext(), dto.CreateContractRequest{
		Name:        "Acme deal",
		CustomerID:  "cust_test",
		TotalAmount: decimal.NewFromInt(100),
		LineItems:   []dto.ContractLineItemRequest{{ProductID: p.ID, Count: 1}},
	})
	s.NoError(err)

	err = s.service.DeleteProduct(s.GetContext(), p.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	// once the contract is gone the product can be deleted
	s.NoError(s.contracts.DeleteContract(s.GetContext(), c.ID))
	s.NoError(s.service.DeleteProduct(s.GetContext(), p.ID))
}

func (s *ProductServiceSuite) TestListProducts() {
	for _, name := range []string{"Widget", "Gadget", "Widget Pro"} {
		_, err := s.service.CreateProduct(s.GetContext(), dto.CreateProductRequest{
			Name:  name,
			Price: decimal.NewFromInt(10),
			Stock: 1,
		})
		s.NoError(err)
	}

	filter := types.NewProductFilter()
	filter.Name = "widget"
	resp, err := s.service.ListProducts(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(2, resp.Pagination.Total)
}

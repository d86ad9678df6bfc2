package service

import (
	"testing"
	"time"

	"github.com/dealdesk/dealdesk/internal/api/dto"
	"github.com/dealdesk/dealdesk/internal/domain/product"
	"github.com/dealdesk/dealdesk/internal/domain/user"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/testutil"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ContractServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ContractService
}

func TestContractService(t *testing.T) {
	suite.Run(t, new(ContractServiceSuite))
}

func (s *ContractServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewContractService(s.params())

	// the acting user owns contracts and receives decision notifications
	err := s.GetStores().UserRepo.Create(s.GetContext(), &user.User{
		ID:    types.DefaultUserID,
		Name:  "Owner",
		Email: "owner@example.com",
		BaseModel: types.BaseModel{
			TenantID: types.DefaultTenantID,
			Status:   types.StatusPublished,
		},
	})
	s.NoError(err)
}

func (s *ContractServiceSuite) params() ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
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
}

func (s *ContractServiceSuite) seedProduct(name string, price int64, stock int) *product.Product {
	p := &product.Product{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT),
		Name:      name,
		Price:     decimal.NewFromInt(price),
		Stock:     stock,
		Sales:     0,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ProductRepo.Create(s.GetContext(), p))
	return p
}

func (s *ContractServiceSuite) getProduct(id string) *product.Product {
	p, err := s.GetStores().ProductRepo.Get(s.GetContext(), id)
	s.NoError(err)
	return p
}

func (s *ContractServiceSuite) createContract(name string, items ...dto.ContractLineItemRequest) *dto.ContractResponse {
	resp, err := s.service.CreateContract(s.GetContext(), dto.CreateContractRequest{
		Name:        name,
		CustomerID:  "cust_test",
		TotalAmount: decimal.NewFromInt(1000),
		LineItems:   items,
	})
	s.NoError(err)
	s.Require().NotNil(resp)
	return resp
}

func (s *ContractServiceSuite) TestCreateContract() {
	p := s.seedProduct("Widget", 50, 10)

	resp := s.createContract("Acme deal", dto.ContractLineItemRequest{ProductID: p.ID, Count: 3})

	s.Equal(types.ContractStatusInit, resp.ContractStatus)
	s.NotEmpty(resp.Number)
	s.Len(resp.LineItems, 1)

	item := resp.LineItems[0]
	s.Equal("Widget", item.ProductName)
	s.True(item.UnitPrice.Equal(decimal.NewFromInt(50)))
	s.True(item.Total.Equal(decimal.NewFromInt(150)))

	got := s.getProduct(p.ID)
	s.Equal(7, got.Stock)
	s.Equal(3, got.Sales)
}

func (s *ContractServiceSuite) TestCreateContractDuplicateName() {
	s.createContract("Acme deal")

	_, err := s.service.CreateContract(s.GetContext(), dto.CreateContractRequest{
		Name:        "Acme deal",
		CustomerID:  "cust_test",
		TotalAmount: decimal.NewFromInt(1),
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *ContractServiceSuite) TestCreateContractInsufficientStock() {
	p := s.seedProduct("Scarce", 10, 2)

	_, err := s.service.CreateContract(s.GetContext(), dto.CreateContractRequest{
		Name:        "Too big",
		CustomerID:  "cust_test",
		TotalAmount: decimal.NewFromInt(1),
		LineItems:   []dto.ContractLineItemRequest{{ProductID: p.ID, Count: 5}},
	})
	s.Error(err)
	s.True(ierr.IsInsufficientStock(err))

	// the failed reservation must leave the product untouched
	got := s.getProduct(p.ID)
	s.Equal(2, got.Stock)
	s.Equal(0, got.Sales)
}

func (s *ContractServiceSuite) TestCreateContractPartialFailureRollsBack() {
	p1 := s.seedProduct("Plenty", 50, 10)
	p2 := s.seedProduct("Scarce", 10, 1)

	// the second reservation fails after the first already went through;
	// the whole transaction must come back, first product included
	_, err := s.service.CreateContract(s.GetContext(), dto.CreateContractRequest{
		Name:        "Big deal",
		CustomerID:  "cust_test",
		TotalAmount: decimal.NewFromInt(1),
		LineItems: []dto.ContractLineItemRequest{
			{ProductID: p1.ID, Count: 4},
			{ProductID: p2.ID, Count: 5},
		},
	})
	s.Error(err)
	s.True(ierr.IsInsufficientStock(err))

	got := s.getProduct(p1.ID)
	s.Equal(10, got.Stock)
	s.Equal(0, got.Sales)

	// the contract row was rolled back too, so the name is free again
	resp := s.createContract("Big deal", dto.ContractLineItemRequest{ProductID: p1.ID, Count: 4})
	s.Len(resp.LineItems, 1)
	s.Equal(6, s.getProduct(p1.ID).Stock)
}

func (s *ContractServiceSuite) TestCreateContractUnknownProduct() {
	_, err := s.service.CreateContract(s.GetContext(), dto.CreateContractRequest{
		Name:        "Ghost product",
		CustomerID:  "cust_test",
		TotalAmount: decimal.NewFromInt(1),
		LineItems:   []dto.ContractLineItemRequest{{ProductID: "prod_missing", Count: 1}},
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ContractServiceSuite) TestCreateContractDuplicateLineItemProduct() {
	p := s.seedProduct("Widget", 50, 10)

	_, err := s.service.CreateContract(s.GetContext(), dto.CreateContractRequest{
		Name:        "Doubled",
		CustomerID:  "cust_test",
		TotalAmount: decimal.NewFromInt(1),
		LineItems: []dto.ContractLineItemRequest{
			{ProductID: p.ID, Count: 1},
			{ProductID: p.ID, Count: 2},
		},
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ContractServiceSuite) TestUpdateContractReconcilesCounts() {
	p := s.seedProduct("Widget", 50, 10)
	c := s.createContract("Acme deal", dto.ContractLineItemRequest{ProductID: p.ID, Count: 3})
	s.Equal(7, s.getProduct(p.ID).Stock)

	// shrink the reservation: 3 -> 1 releases the difference
	items := []dto.ContractLineItemRequest{{ProductID: p.ID, Count: 1}}
	resp, err := s.service.UpdateContract(s.GetContext(), c.ID, dto.UpdateContractRequest{LineItems: &items})
	s.NoError(err)
	s.Len(resp.LineItems, 1)
	s.Equal(1, resp.LineItems[0].Count)
	s.True(resp.LineItems[0].Total.Equal(decimal.NewFromInt(50)))

	got := s.getProduct(p.ID)
	s.Equal(9, got.Stock)
	s.Equal(1, got.Sales)

	// drop the item entirely: everything comes back
	empty := []dto.ContractLineItemRequest{}
	resp, err = s.service.UpdateContract(s.GetContext(), c.ID, dto.UpdateContractRequest{LineItems: &empty})
	s.NoError(err)
	s.Len(resp.LineItems, 0)

	got = s.getProduct(p.ID)
	s.Equal(10, got.Stock)
	s.Equal(0, got.Sales)
}

func (s *ContractServiceSuite) TestUpdateContractReconcileIsIdempotent() {
	p := s.seedProduct("Widget", 50, 10)
	c := s.createContract("Acme deal", dto.ContractLineItemRequest{ProductID: p.ID, Count: 4})

	items := []dto.ContractLineItemRequest{{ProductID: p.ID, Count: 4}}
	_, err := s.service.UpdateContract(s.GetContext(), c.ID, dto.UpdateContractRequest{LineItems: &items})
	s.NoError(err)

	got := s.getProduct(p.ID)
	s.Equal(6, got.Stock)
	s.Equal(4, got.Sales)
}

func (s *ContractServiceSuite) TestUpdateContractNilLineItemsLeavesItems() {
	p := s.seedProduct("Widget", 50, 10)
	c := s.createContract("Acme deal", dto.ContractLineItemRequest{ProductID: p.ID, Count: 3})

	newName := "Acme deal v2"
	resp, err := s.service.UpdateContract(s.GetContext(), c.ID, dto.UpdateContractRequest{Name: &newName})
	s.NoError(err)
	s.Equal("Acme deal v2", resp.Name)
	s.Len(resp.LineItems, 1)
	s.Equal(7, s.getProduct(p.ID).Stock)
}

func (s *ContractServiceSuite) TestUpdateContractChangeResnapshotsPrice() {
	p := s.seedProduct("Widget", 50, 10)
	c := s.createContract("Acme deal", dto.ContractLineItemRequest{ProductID: p.ID, Count: 2})

	// price changes after the item was added
	p = s.getProduct(p.ID)
	p.Price = decimal.NewFromInt(80)
	s.NoError(s.GetStores().ProductRepo.Update(s.GetContext(), p))

	items := []dto.ContractLineItemRequest{{ProductID: p.ID, Count: 3}}
	resp, err := s.service.UpdateContract(s.GetContext(), c.ID, dto.UpdateContractRequest{LineItems: &items})
	s.NoError(err)

	item := resp.LineItems[0]
	s.True(item.UnitPrice.Equal(decimal.NewFromInt(80)))
	s.True(item.Total.Equal(decimal.NewFromInt(240)))
}

func (s *ContractServiceSuite) TestUpdateContractBlockedUnderReview() {
	c := s.createContract("Acme deal")
	_, err := s.service.StartApproval(s.GetContext(), c.ID)
	s.NoError(err)

	newName := "sneaky edit"
	_, err = s.service.UpdateContract(s.GetContext(), c.ID, dto.UpdateContractRequest{Name: &newName})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ContractServiceSuite) TestRemoveLineItemForVanishedProduct() {
	p := s.seedProduct("Widget", 50, 10)
	c := s.createContract("Acme deal", dto.ContractLineItemRequest{ProductID: p.ID, Count: 3})

	// the product vanishes while still referenced
	s.NoError(s.GetStores().ProductRepo.Delete(s.GetContext(), p.ID))

	empty := []dto.ContractLineItemRequest{}
	resp, err := s.service.UpdateContract(s.GetContext(), c.ID, dto.UpdateContractRequest{LineItems: &empty})
	s.NoError(err)
	s.Len(resp.LineItems, 0)
}

func (s *ContractServiceSuite) TestStartApproval() {
	c := s.createContract("Acme deal")

	resp, err := s.service.StartApproval(s.GetContext(), c.ID)
	s.NoError(err)
	s.Equal(types.ContractStatusUnderReview, resp.ContractStatus)

	// resubmitting is not allowed
	_, err = s.service.StartApproval(s.GetContext(), c.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ContractServiceSuite) TestRecordApproval() {
	c := s.createContract("Acme deal")
	_, err := s.service.StartApproval(s.GetContext(), c.ID)
	s.NoError(err)

	resp, err := s.service.RecordApproval(s.GetContext(), c.ID, dto.ApproveContractRequest{
		Decision: types.ApprovalDecisionApproved,
		Comment:  "looks good",
	})
	s.NoError(err)
	s.Equal(types.ContractStatusApproved, resp.ContractStatus)

	records, err := s.service.ListApprovals(s.GetContext(), c.ID)
	s.NoError(err)
	s.Len(records.Items, 1)
	s.Equal("looks good", records.Items[0].Comment)

	// delivery happens in the background; wait for it before asserting
	s.Require().True(s.GetSender().WaitForAttempts(1, time.Second))
	messages := s.GetSender().Messages()
	s.Require().Len(messages, 1)
	s.Equal("owner@example.com", messages[0].To)
	s.Contains(messages[0].Subject, resp.Number)
}

func (s *ContractServiceSuite) TestRecordApprovalRejection() {
	c := s.createContract("Acme deal")
	_, err := s.service.StartApproval(s.GetContext(), c.ID)
	s.NoError(err)

	resp, err := s.service.RecordApproval(s.GetContext(), c.ID, dto.ApproveContractRequest{
		Decision: types.ApprovalDecisionRejected,
		Comment:  "pricing is off",
	})
	s.NoError(err)
	s.Equal(types.ContractStatusRejected, resp.ContractStatus)

	// rejected contracts are editable again
	newName := "Acme deal revised"
	updated, err := s.service.UpdateContract(s.GetContext(), c.ID, dto.UpdateContractRequest{Name: &newName})
	s.NoError(err)
	s.Equal("Acme deal revised", updated.Name)
}

func (s *ContractServiceSuite) TestRecordApprovalRequiresUnderReview() {
	c := s.createContract("Acme deal")

	_, err := s.service.RecordApproval(s.GetContext(), c.ID, dto.ApproveContractRequest{
		Decision: types.ApprovalDecisionApproved,
		Comment:  "ok",
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ContractServiceSuite) TestRecordApprovalRequiresComment() {
	c := s.createContract("Acme deal")
	_, err := s.service.StartApproval(s.GetContext(), c.ID)
	s.NoError(err)

	_, err = s.service.RecordApproval(s.GetContext(), c.ID, dto.ApproveContractRequest{
		Decision: types.ApprovalDecisionApproved,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ContractServiceSuite) TestRecordApprovalNotificationFailureKeepsDecision() {
	c := s.createContract("Acme deal")
	_, err := s.service.StartApproval(s.GetContext(), c.ID)
	s.NoError(err)

	s.GetSender().Err = ierr.NewError("smtp down").Mark(ierr.ErrSystem)

	resp, err := s.service.RecordApproval(s.GetContext(), c.ID, dto.ApproveContractRequest{
		Decision: types.ApprovalDecisionApproved,
		Comment:  "ok",
	})
	s.NoError(err)
	s.Equal(types.ContractStatusApproved, resp.ContractStatus)

	// the failed delivery left no message behind and the decision stands
	s.Require().True(s.GetSender().WaitForAttempts(1, time.Second))
	s.Len(s.GetSender().Messages(), 0)

	got, err := s.service.GetContract(s.GetContext(), c.ID)
	s.NoError(err)
	s.Equal(types.ContractStatusApproved, got.ContractStatus)
}

func (s *ContractServiceSuite) TestCountTodayDecisions() {
	for _, name := range []string{"one", "two"} {
		c := s.createContract(name)
		_, err := s.service.StartApproval(s.GetContext(), c.ID)
		s.NoError(err)
		_, err = s.service.RecordApproval(s.GetContext(), c.ID, dto.ApproveContractRequest{
			Decision: types.ApprovalDecisionApproved,
			Comment:  "ok",
		})
		s.NoError(err)
	}

	c := s.createContract("three")
	_, err := s.service.StartApproval(s.GetContext(), c.ID)
	s.NoError(err)
	_, err = s.service.RecordApproval(s.GetContext(), c.ID, dto.ApproveContractRequest{
		Decision: types.ApprovalDecisionRejected,
		Comment:  "no",
	})
	s.NoError(err)

	count, err := s.service.CountTodayDecisions(s.GetContext())
	s.NoError(err)
	s.Equal(3, count)
}

func (s *ContractServiceSuite) TestDeleteContractReleasesStock() {
	p := s.seedProduct("Widget", 50, 10)
	c := s.createContract("Acme deal", dto.ContractLineItemRequest{ProductID: p.ID, Count: 4})
	s.Equal(6, s.getProduct(p.ID).Stock)

	s.NoError(s.service.DeleteContract(s.GetContext(), c.ID))

	got := s.getProduct(p.ID)
	s.Equal(10, got.Stock)
	s.Equal(0, got.Sales)

	_, err := s.service.GetContract(s.GetContext(), c.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ContractServiceSuite) TestDeleteContractBlockedUnderReview() {
	c := s.createContract("Acme deal")
	_, err := s.service.StartApproval(s.GetContext(), c.ID)
	s.NoError(err)

	err = s.service.DeleteContract(s.GetContext(), c.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ContractServiceSuite) TestListContracts() {
	s.createContract("first")
	s.createContract("second")

	resp, err := s.service.ListContracts(s.GetContext(), nil)
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(2, resp.Pagination.Total)
}

func (s *ContractServiceSuite) TestListContractsScopedToOwner() {
	s.createContract("mine")

	other := types.SetUserID(s.GetContext(), "user_other")
	resp, err := s.service.ListContracts(other, nil)
	s.NoError(err)
	s.Len(resp.Items, 0)
}

func (s *ContractServiceSuite) TestGetContractStatusBreakdown() {
	s.createContract("draft one")
	s.createContract("draft two")
	c := s.createContract("approved one")
	_, err := s.service.StartApproval(s.GetContext(), c.ID)
	s.NoError(err)
	_, err = s.service.RecordApproval(s.GetContext(), c.ID, dto.ApproveContractRequest{
		Decision: types.ApprovalDecisionApproved,
		Comment:  "ok",
	})
	s.NoError(err)

	breakdown, err := s.service.GetContractStatusBreakdown(s.GetContext())
	s.NoError(err)
	s.Require().Len(breakdown, 4)

	byStatus := make(map[types.ContractStatus]*dto.ContractStatusBreakdown)
	for _, b := range breakdown {
		byStatus[b.Status] = b
	}
	s.Equal(2, byStatus[types.ContractStatusInit].Count)
	s.Equal(1, byStatus[types.ContractStatusApproved].Count)
	s.InDelta(66.66, byStatus[types.ContractStatusInit].Proportion, 0.01)
	s.InDelta(33.33, byStatus[types.ContractStatusApproved].Proportion, 0.01)
}

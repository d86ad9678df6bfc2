package service

import (
	"testing"
	"time"

	"github.com/dealdesk/dealdesk/internal/domain/customer"
	"github.com/dealdesk/dealdesk/internal/domain/lead"
	"github.com/dealdesk/dealdesk/internal/testutil"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceSuite struct {
	testutil.BaseServiceTestSuite
	service DashboardService
}

func TestDashboardService(t *testing.T) {
	suite.Run(t, new(DashboardServiceSuite))
}

func (s *DashboardServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewDashboardService(ServiceParams{
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
	})
}

func (s *DashboardServiceSuite) seedCustomer(createdAt time.Time) {
	c := &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      "Customer",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	c.CreatedAt = createdAt
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), c))
}

func (s *DashboardServiceSuite) seedLead(createdAt time.Time) {
	l := &lead.Lead{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEAD),
		Name:       "Lead",
		LeadStatus: types.LeadStatusNew,
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	l.CreatedAt = createdAt
	s.NoError(s.GetStores().LeadRepo.Create(s.GetContext(), l))
}

func (s *DashboardServiceSuite) TestGetDashboard() {
	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1)

	s.seedCustomer(now)
	s.seedCustomer(now)
	s.seedCustomer(yesterday)
	s.seedLead(now)

	resp, err := s.service.GetDashboard(s.GetContext())
	s.NoError(err)
	s.Require().NotNil(resp.Statistics)
	s.Require().NotNil(resp.Trend)

	s.Equal(2, resp.Statistics.NewCustomerCount)
	s.Equal(100, resp.Statistics.CustomerChange)
	s.Equal(1, resp.Statistics.NewLeadCount)
	// no leads yesterday, so the zero baseline yields 100
	s.Equal(100, resp.Statistics.LeadChange)

	s.Len(resp.Trend.Dates, 7)
	s.Equal(types.DateString(now), resp.Trend.Dates[6])
	s.Equal(2, resp.Trend.CustomerData[6])
	s.Equal(1, resp.Trend.CustomerData[5])
	s.Equal(1, resp.Trend.LeadData[6])
}

func (s *DashboardServiceSuite) TestGetDashboardCachesResults() {
	now := time.Now().UTC()
	s.seedCustomer(now)

	resp, err := s.service.GetDashboard(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Statistics.NewCustomerCount)

	// new data within the cache window is not picked up
	s.seedCustomer(now)
	resp, err = s.service.GetDashboard(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Statistics.NewCustomerCount)
}

func TestChangeRate(t *testing.T) {
	tests := []struct {
		name      string
		today     int
		yesterday int
		want      int
	}{
		{"zero baseline with activity", 5, 0, 100},
		{"zero baseline without activity", 0, 0, 0},
		{"doubled", 10, 5, 100},
		{"halved", 5, 10, -50},
		{"unchanged", 7, 7, 0},
		{"truncates toward zero", 10, 3, 233},
		{"negative truncates toward zero", 2, 3, -33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, changeRate(tt.today, tt.yesterday))
		})
	}
}

func TestAmountChangeRate(t *testing.T) {
	tests := []struct {
		name      string
		today     int64
		yesterday int64
		want      int
	}{
		{"zero baseline with activity", 500, 0, 100},
		{"zero baseline without activity", 0, 0, 0},
		{"doubled", 200, 100, 100},
		{"halved", 50, 100, -50},
		{"rounds fractions", 10, 3, 233},
		{"rounds half up", 9, 8, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := amountChangeRate(decimal.NewFromInt(tt.today), decimal.NewFromInt(tt.yesterday))
			assert.Equal(t, tt.want, got)
		})
	}
}

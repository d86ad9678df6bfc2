package testutil

import (
	"context"
	"time"

	"github.com/dealdesk/dealdesk/internal/cache"
	"github.com/dealdesk/dealdesk/internal/config"
	"github.com/dealdesk/dealdesk/internal/domain/approval"
	"github.com/dealdesk/dealdesk/internal/domain/contract"
	"github.com/dealdesk/dealdesk/internal/domain/customer"
	"github.com/dealdesk/dealdesk/internal/domain/lead"
	"github.com/dealdesk/dealdesk/internal/domain/product"
	"github.com/dealdesk/dealdesk/internal/domain/user"
	"github.com/dealdesk/dealdesk/internal/logger"
	"github.com/dealdesk/dealdesk/internal/postgres"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	ContractRepo contract.Repository
	LineItemRepo contract.LineItemRepository
	ProductRepo  product.Repository
	ApprovalRepo approval.Repository
	CustomerRepo customer.Repository
	LeadRepo     lead.Repository
	UserRepo     user.Repository
}

// BaseServiceTestSuite provides common functionality for all service test
// suites: a tenant-scoped context, fresh in-memory stores per test, a mock
// transaction client and a recording notification sender.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     postgres.IClient
	logger *logger.Logger
	config *config.Configuration
	cache  cache.Cache
	sender *RecordingSender
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	cfg := &config.Configuration{
		Logging: config.LoggingConfig{
			Level: types.LogLevelInfo,
		},
		Auth: config.AuthConfig{
			Secret:         "test-secret-for-unit-tests-only",
			TokenExpiryHrs: 1,
		},
	}
	s.config = cfg

	var err error
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.cache = cache.NewInMemoryCache()
	s.sender = NewRecordingSender()
	s.now = time.Now().UTC()
}

func (s *BaseServiceTestSuite) setupContext() {
	ctx := context.Background()
	ctx = types.SetTenantID(ctx, types.DefaultTenantID)
	ctx = types.SetUserID(ctx, types.DefaultUserID)
	s.ctx = ctx
}

func (s *BaseServiceTestSuite) setupStores() {
	contracts := NewInMemoryContractStore()
	lineItems := NewInMemoryLineItemStore(contracts)
	products := NewInMemoryProductStore()
	approvals := NewInMemoryApprovalStore()
	customers := NewInMemoryCustomerStore()
	leads := NewInMemoryLeadStore()
	users := NewInMemoryUserStore()

	s.stores = Stores{
		ContractRepo: contracts,
		LineItemRepo: lineItems,
		ProductRepo:  products,
		ApprovalRepo: approvals,
		CustomerRepo: customers,
		LeadRepo:     leads,
		UserRepo:     users,
	}

	// every store participates in the mock transaction so a failed WithTx
	// rolls all of them back together
	s.db = NewMockPostgresClient(s.logger,
		contracts, lineItems, products, approvals, customers, leads, users)
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// SetContext replaces the suite context, e.g. to act as another user
func (s *BaseServiceTestSuite) SetContext(ctx context.Context) {
	s.ctx = ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetSender() *RecordingSender {
	return s.sender
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

package service

import (
	"github.com/dealdesk/dealdesk/internal/cache"
	"github.com/dealdesk/dealdesk/internal/config"
	"github.com/dealdesk/dealdesk/internal/domain/approval"
	"github.com/dealdesk/dealdesk/internal/domain/contract"
	"github.com/dealdesk/dealdesk/internal/domain/customer"
	"github.com/dealdesk/dealdesk/internal/domain/lead"
	"github.com/dealdesk/dealdesk/internal/domain/product"
	"github.com/dealdesk/dealdesk/internal/domain/user"
	"github.com/dealdesk/dealdesk/internal/logger"
	"github.com/dealdesk/dealdesk/internal/notification"
	"github.com/dealdesk/dealdesk/internal/postgres"
)

// ServiceParams bundles the dependencies shared by all services so
// constructors stay short and fx wiring stays in one place.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Sender notification.Sender
	Cache  cache.Cache

	// Repositories
	ContractRepo contract.Repository
	LineItemRepo contract.LineItemRepository
	ProductRepo  product.Repository
	ApprovalRepo approval.Repository
	CustomerRepo customer.Repository
	LeadRepo     lead.Repository
	UserRepo     user.Repository
}

// NewServiceParams assembles ServiceParams for fx
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	sender notification.Sender,
	cache cache.Cache,
	contractRepo contract.Repository,
	lineItemRepo contract.LineItemRepository,
	productRepo product.Repository,
	approvalRepo approval.Repository,
	customerRepo customer.Repository,
	leadRepo lead.Repository,
	userRepo user.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		DB:           db,
		Sender:       sender,
		Cache:        cache,
		ContractRepo: contractRepo,
		LineItemRepo: lineItemRepo,
		ProductRepo:  productRepo,
		ApprovalRepo: approvalRepo,
		CustomerRepo: customerRepo,
		LeadRepo:     leadRepo,
		UserRepo:     userRepo,
	}
}

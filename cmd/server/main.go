package main

import (
	"context"
	"time"

	"github.com/dealdesk/dealdesk/internal/api"
	v1 "github.com/dealdesk/dealdesk/internal/api/v1"
	"github.com/dealdesk/dealdesk/internal/auth"
	"github.com/dealdesk/dealdesk/internal/cache"
	"github.com/dealdesk/dealdesk/internal/config"
	"github.com/dealdesk/dealdesk/internal/logger"
	"github.com/dealdesk/dealdesk/internal/notification"
	"github.com/dealdesk/dealdesk/internal/postgres"
	"github.com/dealdesk/dealdesk/internal/repository"
	"github.com/dealdesk/dealdesk/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// all timestamps are stored and compared in UTC
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,

			cache.NewInMemoryCache,

			postgres.NewDB,
			provideDBClient,

			notification.NewEmailClient,
			notification.NewEmailSender,

			auth.NewTokenService,

			repository.NewContractRepository,
			repository.NewLineItemRepository,
			repository.NewProductRepository,
			repository.NewApprovalRepository,
			repository.NewCustomerRepository,
			repository.NewLeadRepository,
			repository.NewUserRepository,

			service.NewServiceParams,
			service.NewContractService,
			service.NewProductService,
			service.NewCustomerService,
			service.NewLeadService,
			service.NewDashboardService,
			service.NewAuthService,

			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideDBClient(db *postgres.DB) postgres.IClient {
	return db
}

func provideHandlers(
	log *logger.Logger,
	authService service.AuthService,
	contractService service.ContractService,
	productService service.ProductService,
	customerService service.CustomerService,
	leadService service.LeadService,
	dashboardService service.DashboardService,
) api.Handlers {
	return api.Handlers{
		Health:    v1.NewHealthHandler(),
		Auth:      v1.NewAuthHandler(authService, log),
		Contract:  v1.NewContractHandler(contractService, log),
		Product:   v1.NewProductHandler(productService, log),
		Customer:  v1.NewCustomerHandler(customerService, log),
		Lead:      v1.NewLeadHandler(leadService, log),
		Dashboard: v1.NewDashboardHandler(dashboardService, log),
	}
}

func provideRouter(handlers api.Handlers, tokens auth.TokenService, log *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, tokens, log)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			db.Close()
			return nil
		},
	})
}

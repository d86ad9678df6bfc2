package api

import (
	v1 "github.com/dealdesk/dealdesk/internal/api/v1"
	"github.com/dealdesk/dealdesk/internal/auth"
	"github.com/dealdesk/dealdesk/internal/logger"
	"github.com/dealdesk/dealdesk/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health    *v1.HealthHandler
	Auth      *v1.AuthHandler
	Contract  *v1.ContractHandler
	Product   *v1.ProductHandler
	Customer  *v1.CustomerHandler
	Lead      *v1.LeadHandler
	Dashboard *v1.DashboardHandler
}

func NewRouter(handlers Handlers, tokens auth.TokenService, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	public := router.Group("/v1/auth")
	{
		public.POST("/signup", handlers.Auth.SignUp)
		public.POST("/login", handlers.Auth.Login)
	}

	private := router.Group("/v1")
	private.Use(middleware.AuthenticateMiddleware(tokens, log))
	registerV1Routes(private, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	contracts := router.Group("/contracts")
	{
		contracts.POST("", handlers.Contract.CreateContract)
		contracts.GET("", handlers.Contract.ListContracts)
		contracts.GET("/breakdown", handlers.Contract.StatusBreakdown)
		contracts.GET("/decisions/today", handlers.Contract.TodayDecisionCount)
		contracts.GET("/:id", handlers.Contract.GetContract)
		contracts.PUT("/:id", handlers.Contract.UpdateContract)
		contracts.DELETE("/:id", handlers.Contract.DeleteContract)
		contracts.POST("/:id/submit", handlers.Contract.SubmitForReview)
		contracts.POST("/:id/decision", handlers.Contract.RecordDecision)
		contracts.GET("/:id/approvals", handlers.Contract.ListApprovals)
	}

	products := router.Group("/products")
	{
		products.POST("", handlers.Product.CreateProduct)
		products.GET("", handlers.Product.ListProducts)
		products.GET("/:id", handlers.Product.GetProduct)
		products.PUT("/:id", handlers.Product.UpdateProduct)
		products.DELETE("/:id", handlers.Product.DeleteProduct)
	}

	customers := router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.ListCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.PUT("/:id", handlers.Customer.UpdateCustomer)
		customers.DELETE("/:id", handlers.Customer.DeleteCustomer)
	}

	leads := router.Group("/leads")
	{
		leads.POST("", handlers.Lead.CreateLead)
		leads.GET("", handlers.Lead.ListLeads)
		leads.GET("/:id", handlers.Lead.GetLead)
		leads.PUT("/:id", handlers.Lead.UpdateLead)
		leads.DELETE("/:id", handlers.Lead.DeleteLead)
	}

	router.GET("/dashboard", handlers.Dashboard.GetDashboard)
}

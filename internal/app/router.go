// internal/app/router.go
package app

import (
	authHandler "aquadesk-service/internal/handlers/auth"
	bottleHandler "aquadesk-service/internal/handlers/bottle"
	customerHandler "aquadesk-service/internal/handlers/customer"
	employeeHandler "aquadesk-service/internal/handlers/employee"
	financeHandler "aquadesk-service/internal/handlers/finance"
	orderHandler "aquadesk-service/internal/handlers/order"
	pricingHandler "aquadesk-service/internal/handlers/pricing"
	productHandler "aquadesk-service/internal/handlers/product"
	riderHandler "aquadesk-service/internal/handlers/rider"
	"aquadesk-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler     *authHandler.AuthHandler
	CustomerHandler *customerHandler.CustomerHandler
	ProductHandler  *productHandler.ProductHandler
	EmployeeHandler *employeeHandler.EmployeeHandler
	OrderHandler    *orderHandler.OrderHandler
	PricingHandler  *pricingHandler.PricingHandler
	BottleHandler   *bottleHandler.BottleHandler
	RiderHandler    *riderHandler.RiderHandler
	FinanceHandler  *financeHandler.FinanceHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Admin Auth Routes ====================
	authAdmin := api.Group("/auth")
	authAdmin.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireAdmin())
	{
		authAdmin.POST("/register", h.AuthHandler.Register)
	}

	// ==================== Customers ====================
	customers := api.Group("/customers")
	customers.Use(h.AuthMiddleware.Auth())
	{
		customers.GET("", h.CustomerHandler.ListCustomers)
		customers.GET("/:id", h.CustomerHandler.GetCustomer)
		customers.POST("", h.CustomerHandler.CreateCustomer)
		customers.PUT("/:id", h.CustomerHandler.UpdateCustomer)
		customers.PUT("/:id/status", h.CustomerHandler.SetCustomerStatus)
		customers.DELETE("/:id", h.CustomerHandler.DeleteCustomer)

		// Bottle balances
		customers.GET("/:id/balances", h.BottleHandler.ListBalances)
		customers.GET("/:id/balances/:productId", h.BottleHandler.GetBalance)

		// Pricing
		customers.GET("/:id/prices/:productId", h.PricingHandler.ResolvePrice)
		customers.DELETE("/:id/prices/:productId", h.PricingHandler.RemoveCustomPrice)

		// Finance
		customers.GET("/:id/ledger", h.FinanceHandler.GetCustomerLedger)
		customers.GET("/:id/advances", h.FinanceHandler.ListCustomerAdvances)
	}

	// ==================== Products ====================
	products := api.Group("/products")
	products.Use(h.AuthMiddleware.Auth())
	{
		products.GET("", h.ProductHandler.ListProducts)
		products.GET("/:id", h.ProductHandler.GetProduct)
		products.POST("", h.ProductHandler.CreateProduct)
		products.PUT("/:id", h.ProductHandler.UpdateProduct)
		products.PUT("/:id/status", h.ProductHandler.SetProductStatus)
		products.DELETE("/:id", h.ProductHandler.DeleteProduct)
	}

	// ==================== Employees ====================
	employees := api.Group("/employees")
	employees.Use(h.AuthMiddleware.Auth())
	{
		employees.GET("", h.EmployeeHandler.ListEmployees)
		employees.GET("/:id", h.EmployeeHandler.GetEmployee)
		employees.POST("", h.EmployeeHandler.CreateEmployee)
		employees.PUT("/:id", h.EmployeeHandler.UpdateEmployee)
		employees.PUT("/:id/status", h.EmployeeHandler.SetEmployeeStatus)
		employees.DELETE("/:id", h.EmployeeHandler.DeleteEmployee)

		employees.GET("/:id/ledger", h.FinanceHandler.GetEmployeeLedger) // ?month=YYYY-MM
		employees.GET("/:id/advances", h.FinanceHandler.ListEmployeeAdvances)
	}

	// ==================== Orders ====================
	orders := api.Group("/orders")
	orders.Use(h.AuthMiddleware.Auth())
	{
		orders.GET("", h.OrderHandler.ListOrders)
		orders.GET("/:id", h.OrderHandler.GetOrder)
		orders.POST("", h.OrderHandler.CreateOrder)
		orders.PUT("/:id/status", h.OrderHandler.UpdateOrderStatus)
		orders.PUT("/:id/payment-status", h.OrderHandler.UpdatePaymentStatus)
	}

	// ==================== Custom Pricing ====================
	pricing := api.Group("/pricing")
	pricing.Use(h.AuthMiddleware.Auth())
	{
		pricing.GET("", h.PricingHandler.ListCustomPrices)
		pricing.POST("", h.PricingHandler.SetCustomPrice)
	}

	// ==================== Bottle Ledger ====================
	bottles := api.Group("/bottles")
	bottles.Use(h.AuthMiddleware.Auth())
	{
		bottles.POST("/opening", h.BottleHandler.SetOpeningBottles)
		bottles.POST("/migrate", h.BottleHandler.MigrateLegacyOpeningBottles)
	}

	// ==================== Rider Accountability ====================
	riders := api.Group("/riders")
	riders.Use(h.AuthMiddleware.Auth())
	{
		riders.POST("/activities", h.RiderHandler.RecordActivity)
		riders.GET("/activities", h.RiderHandler.ListActivities)
		riders.GET("/accountability", h.RiderHandler.GetComprehensiveReport) // ?from=&to=
		riders.GET("/:id/accountability/:productId", h.RiderHandler.GetAccountability)
		riders.GET("/:id/accountability/:productId/daily", h.RiderHandler.GetDailyAccountability) // ?date=
	}

	// ==================== Finance ====================
	finance := api.Group("/finance")
	finance.Use(h.AuthMiddleware.Auth())
	{
		finance.POST("/advances/customers", h.FinanceHandler.RecordCustomerAdvance)
		finance.POST("/advances/employees", h.FinanceHandler.RecordEmployeeAdvance)
		finance.POST("/expenditures", h.FinanceHandler.RecordExpenditure)
		finance.GET("/expenditures", h.FinanceHandler.ListExpenditures)
		finance.GET("/expenditures/summary", h.FinanceHandler.GetMonthlyExpenditureSummary) // ?month=YYYY-MM
	}
}

// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"aquadesk-service/internal/config"
	"aquadesk-service/internal/db"
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
	"aquadesk-service/internal/pkg/jwt"
	"aquadesk-service/internal/pkg/session"
	"aquadesk-service/internal/repository/postgres"
	authsvc "aquadesk-service/internal/service/auth"
	"aquadesk-service/internal/service/bottleledger"
	customersvc "aquadesk-service/internal/service/customer"
	employeesvc "aquadesk-service/internal/service/employee"
	financesvc "aquadesk-service/internal/service/finance"
	ordersvc "aquadesk-service/internal/service/order"
	pricingsvc "aquadesk-service/internal/service/pricing"
	productsvc "aquadesk-service/internal/service/product"
	ridersvc "aquadesk-service/internal/service/rider"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.NewPostgresPool(ctx, db.PostgresConfig{
		DSN:      s.cfg.DatabaseDSN,
		MaxConns: s.cfg.DBMaxConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis (optional) -----
	var redisClient *redis.Client
	if s.cfg.RedisAddr != "" {
		redisClient, err = db.NewRedisClient(db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       s.cfg.RedisDB,
			PoolSize: 10,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
	} else {
		logger.Warn("REDIS_ADDR not set, login rate limiting disabled")
	}

	// ----- JWT Manager -----
	jwtManager, err := jwt.NewManager(s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTTTL)
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}

	rateLimiter := session.NewRateLimiter(redisClient, s.cfg.LoginMaxAttempts, s.cfg.LoginWindow)

	// ----- Repositories -----
	userRepo := postgres.NewAuthRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	pricingRepo := postgres.NewCustomPricingRepository(pool)
	balanceRepo := postgres.NewBottleBalanceRepository(pool)
	orderRepo := postgres.NewSellOrderRepository(pool)
	activityRepo := postgres.NewRiderActivityRepository(pool)
	advanceRepo := postgres.NewAdvanceRepository(pool)
	expenditureRepo := postgres.NewExpenditureRepository(pool)

	// ----- Services -----
	authService := authsvc.NewAuthService(userRepo, jwtManager, rateLimiter, logger)
	customerService := customersvc.NewCustomerService(customerRepo, logger)
	productService := productsvc.NewProductService(productRepo, logger)
	employeeService := employeesvc.NewEmployeeService(employeeRepo, logger)
	pricingService := pricingsvc.NewPricingService(pricingRepo, customerRepo, productRepo, logger)
	ledgerService := bottleledger.NewLedgerService(balanceRepo, orderRepo, customerRepo, productRepo, logger)
	orderService := ordersvc.NewOrderService(orderRepo, customerRepo, employeeRepo, pricingService, logger)
	accountabilityService := ridersvc.NewAccountabilityService(activityRepo, orderRepo, employeeRepo, productRepo, logger)
	financeService := financesvc.NewFinanceService(advanceRepo, expenditureRepo, orderRepo, customerRepo, employeeRepo, logger)

	// ----- Bootstrap admin -----
	bootCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := authService.EnsureAdminExists(bootCtx, s.cfg.AdminEmail, s.cfg.AdminPassword); err != nil {
		logger.Error("failed to ensure bootstrap admin", zap.Error(err))
	}

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(authService)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:     authHandler.NewAuthHandler(authService),
		CustomerHandler: customerHandler.NewCustomerHandler(customerService),
		ProductHandler:  productHandler.NewProductHandler(productService),
		EmployeeHandler: employeeHandler.NewEmployeeHandler(employeeService),
		OrderHandler:    orderHandler.NewOrderHandler(orderService),
		PricingHandler:  pricingHandler.NewPricingHandler(pricingService),
		BottleHandler:   bottleHandler.NewBottleHandler(ledgerService),
		RiderHandler:    riderHandler.NewRiderHandler(accountabilityService),
		FinanceHandler:  financeHandler.NewFinanceHandler(financeService),
		AuthMiddleware:  authMiddleware,
	}
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	billingapp "github.com/pms/backend/internal/application/billing"
	identityapp "github.com/pms/backend/internal/application/identity"
	maintenanceapp "github.com/pms/backend/internal/application/maintenance"
	printingapp "github.com/pms/backend/internal/application/printing"
	propertyapp "github.com/pms/backend/internal/application/property"
	reportapp "github.com/pms/backend/internal/application/report"
	tenancyapp "github.com/pms/backend/internal/application/tenancy"
	"github.com/pms/backend/internal/infrastructure/auth"
	"github.com/pms/backend/internal/infrastructure/config"
	"github.com/pms/backend/internal/infrastructure/logger"
	"github.com/pms/backend/internal/infrastructure/persistence"
	"github.com/pms/backend/internal/infrastructure/printing"
	"github.com/pms/backend/internal/infrastructure/storage"
	"github.com/pms/backend/internal/interfaces/http/handler"
	"github.com/pms/backend/internal/interfaces/http/middleware"
	"github.com/pms/backend/internal/interfaces/http/router"
)

//	@title			Property Management API
//	@version		1.0
//	@description	Admin console backend for rental property management: properties, units, tenants, contracts, billing and reports.

//	@contact.name	API Support

//	@license.name	MIT

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is overridden at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting property management server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
	)

	// Database
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Token blacklist backed by Redis, with an in-memory fallback so a
	// single-node deployment still revokes tokens on logout
	var blacklist auth.TokenBlacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		defer func() {
			_ = redisClient.Close()
		}()
	}
	cancelPing()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	paramsRepo := persistence.NewGormSystemParametersRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	receiptRepo := persistence.NewGormReceiptRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	maintenanceRepo := persistence.NewGormMaintenanceRequestRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Object storage for tenant ID photos
	var objectStorage storage.ObjectStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
	} else {
		log.Info("Object storage disabled, ID photo endpoints will return 503")
		objectStorage = storage.NewStubObjectStorage()
	}

	// PDF renderer for receipts and contracts
	var renderer printing.PDFRenderer
	if cfg.Printing.Enabled {
		chromeRenderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Printing.RenderTimeout,
			ExecPath:       cfg.Printing.ChromePath,
			NoSandbox:      true,
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		renderer = chromeRenderer
		defer func() {
			_ = chromeRenderer.Close()
		}()
	} else {
		log.Info("PDF printing disabled, document endpoints will return 503")
	}

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo, log)
	propertyService := propertyapp.NewPropertyService(propertyRepo, paramsRepo, log)
	unitService := propertyapp.NewUnitService(unitRepo, propertyRepo, log)
	customerService := tenancyapp.NewCustomerService(customerRepo, contractRepo, objectStorage, log)
	contractService := tenancyapp.NewContractService(contractRepo, customerRepo, unitRepo, paramsRepo, log)
	receiptService := billingapp.NewReceiptService(receiptRepo, contractRepo, unitRepo, propertyRepo, paramsRepo, log)
	paymentService := billingapp.NewPaymentService(paymentRepo, receiptRepo, contractRepo, unitRepo, paramsRepo, log)
	expenseService := billingapp.NewExpenseService(expenseRepo, propertyRepo, log)
	maintenanceService := maintenanceapp.NewRequestService(maintenanceRepo, unitRepo, log)
	reportService := reportapp.NewReportService(reportRepo, cfg.Billing.ExpiryWarningDays, log)
	documentService := printingapp.NewDocumentService(receiptRepo, contractRepo, customerRepo, unitRepo, propertyRepo, renderer, log)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		// Tighter limit on the credential endpoint to slow brute forcing
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		engine.Use(middleware.RateLimitByKey(authLimiter, func(c *gin.Context) string {
			if strings.HasPrefix(c.Request.URL.Path, "/api/v1/auth/login") {
				return c.ClientIP()
			}
			return ""
		}))
	}

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Handlers and routes
	systemHandler := handler.NewSystemHandler(db.DB, version)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(systemHandler).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewUserHandler(userService, authService)).
		Register(handler.NewPropertyHandler(propertyService)).
		Register(handler.NewUnitHandler(unitService)).
		Register(handler.NewCustomerHandler(customerService)).
		Register(handler.NewContractHandler(contractService)).
		Register(handler.NewReceiptHandler(receiptService, paymentService)).
		Register(handler.NewPaymentHandler(paymentService)).
		Register(handler.NewExpenseHandler(expenseService)).
		Register(handler.NewMaintenanceHandler(maintenanceService)).
		Register(handler.NewReportHandler(reportService)).
		Register(handler.NewDocumentHandler(documentService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}

package main

import (
	"fmt"
	"net/http"
	"os"

	"bookkeeper/internal/config"
	"bookkeeper/internal/database"
	"bookkeeper/internal/handlers"
	"bookkeeper/internal/logger"
	"bookkeeper/internal/middleware"
	"bookkeeper/internal/services"
	"bookkeeper/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "bookkeeper/internal/docs" // Import swagger docs
)

// @title           Bookkeeper API
// @version         1.0
// @description     Bookkeeper is a small-business bookkeeping application for tracking income, expenses, donations, and inventory.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db)
	donationService := services.NewDonationService(db)
	inventoryService := services.NewInventoryService(db)
	summaryService := services.NewSummaryService(db, appConfig.DonationTargetRate)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	donationHandler := handlers.NewDonationHandler(donationService, auditService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, auditService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	exportHandler := handlers.NewExportHandler(transactionService, donationService, inventoryService, summaryService)
	receiptHandler := handlers.NewReceiptHandler(appConfig)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Uploaded receipts are served straight off disk
	router.Static("/uploads", appConfig.UploadDir)

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile and logout
	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/auth/logout", authHandler.Logout)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Donation routes
	donations := protected.Group("/donations")
	donations.POST("", donationHandler.CreateDonation)
	donations.GET("", donationHandler.ListDonations)
	donations.GET("/:id", donationHandler.GetDonation)
	donations.PUT("/:id", donationHandler.UpdateDonation)
	donations.DELETE("/:id", donationHandler.DeleteDonation)

	// Inventory routes
	inventory := protected.Group("/inventory")
	inventory.POST("/purchases", inventoryHandler.CreatePurchase)
	inventory.GET("/purchases", inventoryHandler.ListPurchases)
	inventory.GET("/purchases/:id", inventoryHandler.GetPurchase)
	inventory.PUT("/purchases/:id", inventoryHandler.UpdatePurchase)
	inventory.DELETE("/purchases/:id", inventoryHandler.DeletePurchase)
	inventory.GET("/batches/available", inventoryHandler.ListAvailableBatches)
	inventory.POST("/sales", inventoryHandler.RecordSale)
	inventory.GET("/sales/report", inventoryHandler.GetSalesReport)
	inventory.DELETE("/sales/:id", inventoryHandler.DeleteSale)

	// Summary routes
	summaries := protected.Group("/summaries")
	summaries.GET("/monthly", summaryHandler.GetMonthlySummary)
	summaries.GET("/yearly", summaryHandler.GetYearlySummary)

	// Export routes
	exports := protected.Group("/exports")
	exports.GET("/expenses", exportHandler.ExportExpenses)
	exports.GET("/income", exportHandler.ExportIncome)
	exports.GET("/donations", exportHandler.ExportDonations)
	exports.GET("/summary", exportHandler.ExportSummary)
	exports.GET("/inventory-sales", exportHandler.ExportInventorySales)

	// Receipt upload
	protected.POST("/receipts", receiptHandler.UploadReceipt)

	// Audit trail
	protected.GET("/audit-logs", auditHandler.ListAuditLogs)

	log.Infof("Starting Bookkeeper backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

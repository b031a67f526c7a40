package main

import (
	"fmt"
	"net/http"
	"os"

	"budgetapp/internal/config"
	"budgetapp/internal/database"
	"budgetapp/internal/handlers"
	"budgetapp/internal/logger"
	"budgetapp/internal/middleware"
	"budgetapp/internal/registry"
	"budgetapp/internal/services"
	"budgetapp/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "budgetapp/internal/docs" // Import swagger docs
)

// @title           BudgetApp API
// @version         1.0
// @description     BudgetApp expands recurring income and expense schedules into monthly budgets and keeps their totals current.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api

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

	validator.Register()

	// Initialize services
	store := registry.New(dbManager.DB())
	monthService := services.NewMonthService(store)
	budgetService := services.NewBudgetService(store, monthService)
	occurrenceService := services.NewOccurrenceService(store, monthService)

	// Initialize handlers
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	monthHandler := handlers.NewMonthHandler(monthService)
	occurrenceHandler := handlers.NewOccurrenceHandler(occurrenceService, monthService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User-ID")

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

	// API group
	api := router.Group("/api")
	api.Use(middleware.UserScope())

	// Budget routes
	api.POST("/budget", budgetHandler.CreateBudget)
	api.GET("/budget", budgetHandler.GetBudget)
	api.POST("/budget/:id", budgetHandler.UpdateBudget)

	// Month routes
	api.GET("/month/:id", monthHandler.GetMonthDetails)

	// Income routes
	api.POST("/income", occurrenceHandler.CreateIncome)
	api.GET("/income/:id", occurrenceHandler.ListIncome)
	api.POST("/income/:id", occurrenceHandler.UpdateIncome)
	api.POST("/income/item/:id", occurrenceHandler.UpdateIncomeItem)
	api.DELETE("/income/:id", occurrenceHandler.DeleteIncome)
	api.DELETE("/income/item/:id", occurrenceHandler.DeleteIncomeItem)

	// Expense routes
	api.POST("/expense", occurrenceHandler.CreateExpense)
	api.GET("/expenses/:id", occurrenceHandler.ListExpenses)
	api.POST("/expense/:id", occurrenceHandler.UpdateExpense)
	api.DELETE("/expense/:id", occurrenceHandler.DeleteExpense)
	api.DELETE("/expense/deleteMany/:ids", occurrenceHandler.DeleteManyExpenses)

	// Definition routes
	api.GET("/definitions", occurrenceHandler.ListDefinitions)

	log.Infof("Starting BudgetApp backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

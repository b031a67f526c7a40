package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"budgetapp/internal/handlers"
	"budgetapp/internal/logger"
	"budgetapp/internal/middleware"
	"budgetapp/internal/models"
	"budgetapp/internal/registry"
	"budgetapp/internal/services"
	"budgetapp/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Budget{},
		&models.BudgetSettings{},
		&models.MonthSummary{},
		&models.RecurringDefinition{},
		&models.Occurrence{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	store := registry.New(db)
	monthService := services.NewMonthService(store)
	budgetService := services.NewBudgetService(store, monthService)
	occurrenceService := services.NewOccurrenceService(store, monthService)

	// Handlers
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	monthHandler := handlers.NewMonthHandler(monthService)
	occurrenceHandler := handlers.NewOccurrenceHandler(occurrenceService, monthService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api")
	api.Use(middleware.UserScope())

	api.POST("/budget", budgetHandler.CreateBudget)
	api.GET("/budget", budgetHandler.GetBudget)
	api.POST("/budget/:id", budgetHandler.UpdateBudget)

	api.GET("/month/:id", monthHandler.GetMonthDetails)

	api.POST("/income", occurrenceHandler.CreateIncome)
	api.GET("/income/:id", occurrenceHandler.ListIncome)
	api.POST("/income/:id", occurrenceHandler.UpdateIncome)
	api.POST("/income/item/:id", occurrenceHandler.UpdateIncomeItem)
	api.DELETE("/income/:id", occurrenceHandler.DeleteIncome)
	api.DELETE("/income/item/:id", occurrenceHandler.DeleteIncomeItem)

	api.POST("/expense", occurrenceHandler.CreateExpense)
	api.GET("/expenses/:id", occurrenceHandler.ListExpenses)
	api.POST("/expense/:id", occurrenceHandler.UpdateExpense)
	api.DELETE("/expense/:id", occurrenceHandler.DeleteExpense)
	api.DELETE("/expense/deleteMany/:ids", occurrenceHandler.DeleteManyExpenses)

	api.GET("/definitions", occurrenceHandler.ListDefinitions)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONList parses the response body into a slice.
func parseJSONList(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON list: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// createBudget creates a budget for the given user and returns the budget
// document along with the IDs of its seeded months in sequence order.
func (app *testApp) createBudget(t *testing.T, userID string) (budget map[string]interface{}, monthIDs []string) {
	t.Helper()
	body := `{"name":"Household","settings":{"pay_frequency":"Bi-Weekly","last_pay_date":"2024-01-05","currency_code":"USD"}}`
	rec := app.request("POST", "/api/budget", body, userID)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
	}
	budget = parseJSON(t, rec)
	months, ok := budget["monthly_budget"].([]interface{})
	if !ok || len(months) == 0 {
		t.Fatalf("expected seeded months, got %v", budget["monthly_budget"])
	}
	for _, m := range months {
		monthIDs = append(monthIDs, m.(map[string]interface{})["id"].(string))
	}
	return budget, monthIDs
}

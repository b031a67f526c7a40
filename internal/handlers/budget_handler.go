package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetapp/internal/errors"
	"budgetapp/internal/models"
	"budgetapp/internal/services"
)

// BudgetHandler handles budget and settings requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SettingsRequest carries the pay schedule and display preferences.
type SettingsRequest struct {
	PayFrequency   string  `json:"pay_frequency" binding:"required,frequency_unit"`
	LastPayDate    *string `json:"last_pay_date"`
	FirstDayOfWeek int     `json:"first_day_of_week" binding:"omitempty,min=0,max=6"`
	CurrencyCode   string  `json:"currency_code" binding:"omitempty,iso4217"`
}

// CreateBudgetRequest is the payload for creating a budget.
type CreateBudgetRequest struct {
	Name     string          `json:"name" binding:"max=120"`
	Settings SettingsRequest `json:"settings" binding:"required"`
}

func (r SettingsRequest) toModel() (models.BudgetSettings, error) {
	settings := models.BudgetSettings{
		PayFrequency:   models.FrequencyUnit(r.PayFrequency),
		FirstDayOfWeek: r.FirstDayOfWeek,
		CurrencyCode:   r.CurrencyCode,
	}
	if r.LastPayDate != nil && *r.LastPayDate != "" {
		t, err := parseFlexibleTime(*r.LastPayDate)
		if err != nil {
			return settings, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid last_pay_date")
		}
		settings.LastPayDate = t
	} else {
		settings.LastPayDate = time.Now().UTC()
	}
	return settings, nil
}

// CreateBudget handles budget creation.
// @Summary     Create a budget
// @Description Create the user's budget with settings and a seeded month list
// @Tags        budget
// @Accept      json
// @Produce     json
// @Param       request body CreateBudgetRequest true "Budget settings"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Budget already exists"
// @Router      /budget [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := req.Settings.toModel()
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), userID, req.Name, settings)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, budget)
}

// GetBudget returns the budget with month list and navigation state.
// @Summary     Fetch the budget
// @Description Budget document with month list, active index, and the one-shot auto-advance flag
// @Tags        budget
// @Produce     json
// @Success     200 {object} services.BudgetOverview
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budget [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	overview, err := h.budgetService.GetOverview(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// UpdateBudget updates the budget's settings.
// @Summary     Update budget settings
// @Tags        budget
// @Accept      json
// @Produce     json
// @Param       id      path string          true "Budget id"
// @Param       request body SettingsRequest true "New settings"
// @Success     200 {object} models.BudgetSettings
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budget/{id} [post]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}
	budgetID := c.Param("id")

	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := req.toModel()
	if err != nil {
		respondWithError(c, err)
		return
	}

	updated, err := h.budgetService.UpdateSettings(c.Request.Context(), budgetID, settings)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "budgetapp/internal/errors"
	"budgetapp/internal/models"
	"budgetapp/internal/pagination"
	"budgetapp/internal/services"
)

// OccurrenceHandler handles income and expense entry requests. The two
// resources share one write path; only the occurrence kind differs.
type OccurrenceHandler struct {
	occurrenceService services.OccurrenceServicer
	monthService      services.MonthServicer
}

// NewOccurrenceHandler creates a new OccurrenceHandler.
func NewOccurrenceHandler(occurrenceService services.OccurrenceServicer, monthService services.MonthServicer) *OccurrenceHandler {
	return &OccurrenceHandler{occurrenceService: occurrenceService, monthService: monthService}
}

// SubmitRequest is the payload for creating an income or expense entry.
type SubmitRequest struct {
	BudgetID    string `json:"budget_id" binding:"required"`
	MonthID     string `json:"month_id"`
	Description string `json:"description" binding:"required,max=200"`
	Amount      string `json:"amount" binding:"required,amount"`
	Date        string `json:"date" binding:"required"`
	Frequency   string `json:"frequency_type" binding:"omitempty,frequency_type"`
	Unit        string `json:"frequency_unit" binding:"omitempty,frequency_unit"`
	IsAutomated bool   `json:"is_automated"`
	IsPaid      bool   `json:"is_paid"`
}

// UpdateRequest is the payload for editing an entry. Omitted fields are
// left unchanged.
type UpdateRequest struct {
	Description *string `json:"description" binding:"omitempty,max=200"`
	Amount      *string `json:"amount" binding:"omitempty,amount"`
	Date        *string `json:"date"`
	IsPaid      *bool   `json:"is_paid"`
}

func (h *OccurrenceHandler) create(c *gin.Context, kind models.OccurrenceKind) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseFlexibleTime(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date"))
		return
	}

	err = h.occurrenceService.Submit(c.Request.Context(), services.SubmitInput{
		BudgetID:    req.BudgetID,
		MonthID:     req.MonthID,
		Kind:        kind,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		Frequency:   models.FrequencyType(req.Frequency),
		Unit:        models.FrequencyUnit(req.Unit),
		IsAutomated: req.IsAutomated,
		IsPaid:      req.IsPaid,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

func (h *OccurrenceHandler) update(c *gin.Context, propagate bool) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.UpdateInput{
		Description: req.Description,
		Amount:      req.Amount,
		IsPaid:      req.IsPaid,
	}
	if req.Date != nil && *req.Date != "" {
		date, err := parseFlexibleTime(*req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date"))
			return
		}
		input.Date = &date
	}

	if err := h.occurrenceService.Update(c.Request.Context(), c.Param("id"), input, propagate); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *OccurrenceHandler) list(c *gin.Context, kind models.OccurrenceKind) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	details, err := h.monthService.GetMonthDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	if kind == models.KindExpense {
		c.JSON(http.StatusOK, details.Expenses)
		return
	}
	c.JSON(http.StatusOK, details.Income)
}

// CreateIncome creates an income entry.
// @Summary     Create income
// @Tags        income
// @Accept      json
// @Param       request body SubmitRequest true "Income entry"
// @Success     201
// @Failure     400 {object} ErrorResponse
// @Failure     409 {object} ErrorResponse
// @Router      /income [post]
func (h *OccurrenceHandler) CreateIncome(c *gin.Context) {
	h.create(c, models.KindIncome)
}

// CreateExpense creates an expense entry.
// @Summary     Create expense
// @Tags        expense
// @Accept      json
// @Param       request body SubmitRequest true "Expense entry"
// @Success     201
// @Failure     400 {object} ErrorResponse
// @Failure     409 {object} ErrorResponse
// @Router      /expense [post]
func (h *OccurrenceHandler) CreateExpense(c *gin.Context) {
	h.create(c, models.KindExpense)
}

// ListIncome returns the month's income occurrences.
// @Summary     Month income
// @Tags        income
// @Produce     json
// @Param       id path string true "Month id"
// @Success     200 {array} models.Occurrence
// @Router      /income/{id} [get]
func (h *OccurrenceHandler) ListIncome(c *gin.Context) {
	h.list(c, models.KindIncome)
}

// ListExpenses returns the month's expense occurrences.
// @Summary     Month expenses
// @Tags        expense
// @Produce     json
// @Param       id path string true "Month id"
// @Success     200 {array} models.Occurrence
// @Router      /expenses/{id} [get]
func (h *OccurrenceHandler) ListExpenses(c *gin.Context) {
	h.list(c, models.KindExpense)
}

// UpdateIncome edits an income occurrence; with propagate=true the edit
// lands on its definition and cascades forward.
// @Summary     Update income
// @Tags        income
// @Accept      json
// @Param       id        path  string        true  "Occurrence id"
// @Param       propagate query bool          false "Apply to future occurrences"
// @Param       request   body  UpdateRequest true  "Field delta"
// @Success     200
// @Failure     404 {object} ErrorResponse
// @Router      /income/{id} [post]
func (h *OccurrenceHandler) UpdateIncome(c *gin.Context) {
	propagate, _ := strconv.ParseBool(c.DefaultQuery("propagate", "false"))
	h.update(c, propagate)
}

// UpdateIncomeItem edits a single income occurrence, marking it
// manually overridden.
// @Summary     Update one income occurrence
// @Tags        income
// @Accept      json
// @Param       id      path string        true "Occurrence id"
// @Param       request body UpdateRequest true "Field delta"
// @Success     200
// @Router      /income/item/{id} [post]
func (h *OccurrenceHandler) UpdateIncomeItem(c *gin.Context) {
	h.update(c, false)
}

// UpdateExpense edits an expense occurrence.
// @Summary     Update expense
// @Tags        expense
// @Accept      json
// @Param       id        path  string        true  "Occurrence id"
// @Param       propagate query bool          false "Apply to future occurrences"
// @Param       request   body  UpdateRequest true  "Field delta"
// @Success     200
// @Router      /expense/{id} [post]
func (h *OccurrenceHandler) UpdateExpense(c *gin.Context) {
	propagate, _ := strconv.ParseBool(c.DefaultQuery("propagate", "false"))
	h.update(c, propagate)
}

// DeleteIncome deletes an income occurrence; scope=all cascades the
// owning definition from the current month forward.
// @Summary     Delete income
// @Tags        income
// @Param       id    path  string true  "Occurrence id"
// @Param       scope query string false "this or all" default(all)
// @Success     204
// @Router      /income/{id} [delete]
func (h *OccurrenceHandler) DeleteIncome(c *gin.Context) {
	h.delete(c, c.Param("id"), services.DeleteScope(c.DefaultQuery("scope", "all")))
}

// DeleteIncomeItem deletes only the targeted income occurrence.
// @Summary     Delete one income occurrence
// @Tags        income
// @Param       id path string true "Occurrence id"
// @Success     204
// @Router      /income/item/{id} [delete]
func (h *OccurrenceHandler) DeleteIncomeItem(c *gin.Context) {
	h.delete(c, c.Param("id"), services.DeleteScopeThis)
}

// DeleteExpense deletes an expense occurrence.
// @Summary     Delete expense
// @Tags        expense
// @Param       id    path  string true  "Occurrence id"
// @Param       scope query string false "this or all" default(this)
// @Success     204
// @Router      /expense/{id} [delete]
func (h *OccurrenceHandler) DeleteExpense(c *gin.Context) {
	h.delete(c, c.Param("id"), services.DeleteScope(c.DefaultQuery("scope", "this")))
}

// DeleteManyExpenses deletes a comma-separated list of expense
// occurrences as one transactional batch.
// @Summary     Delete several expenses
// @Tags        expense
// @Param       ids path string true "Comma-separated occurrence ids"
// @Success     204
// @Router      /expense/deleteMany/{ids} [delete]
func (h *OccurrenceHandler) DeleteManyExpenses(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var ids []string
	for _, id := range strings.Split(c.Param("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if err := h.occurrenceService.DeleteMany(c.Request.Context(), ids); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OccurrenceHandler) delete(c *gin.Context, id string, scope services.DeleteScope) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}
	if scope != services.DeleteScopeThis && scope != services.DeleteScopeAll {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "scope must be this or all"))
		return
	}

	if err := h.occurrenceService.Delete(c.Request.Context(), id, scope); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListDefinitions returns a page of the budget's recurring definitions.
// @Summary     List recurring definitions
// @Tags        definitions
// @Produce     json
// @Param       budget_id query string true  "Budget id"
// @Param       kind      query string false "income or expense"
// @Param       page      query int    false "Page"
// @Param       page_size query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.RecurringDefinition]
// @Router      /definitions [get]
func (h *OccurrenceHandler) ListDefinitions(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	budgetID := c.Query("budget_id")
	if budgetID == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget_id is required"))
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var kind *models.OccurrenceKind
	if raw := c.Query("kind"); raw != "" {
		k := models.OccurrenceKind(raw)
		if k != models.KindIncome && k != models.KindExpense {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be income or expense"))
			return
		}
		kind = &k
	}

	result, err := h.occurrenceService.ListDefinitions(c.Request.Context(), budgetID, kind, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetapp/internal/services"
)

// MonthHandler serves month documents.
type MonthHandler struct {
	monthService services.MonthServicer
}

// NewMonthHandler creates a new MonthHandler.
func NewMonthHandler(monthService services.MonthServicer) *MonthHandler {
	return &MonthHandler{monthService: monthService}
}

// GetMonthDetails returns one month's document, running the
// materialization pipeline first so the figures are current.
// @Summary     Month details
// @Description Expands, reconciles, and aggregates the month, then returns its document
// @Tags        month
// @Produce     json
// @Param       id path string true "Month id"
// @Success     200 {object} services.MonthDetails
// @Failure     404 {object} ErrorResponse "Month not found"
// @Failure     503 {object} ErrorResponse "Store unavailable"
// @Router      /month/{id} [get]
func (h *MonthHandler) GetMonthDetails(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	details, err := h.monthService.GetMonthDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

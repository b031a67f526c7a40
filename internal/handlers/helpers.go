package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetapp/internal/errors"
	"budgetapp/internal/logger"
	"budgetapp/internal/middleware"
)

// getUserID extracts the caller's user id injected by the scope
// middleware. Engine calls always take an explicit user or budget id;
// nothing below the handlers reads ambient identity.
func getUserID(c *gin.Context) (string, error) {
	userID := middleware.UserID(c)
	if userID == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "missing X-User-ID header")
	}
	return userID, nil
}

// respondWithError writes a consistent JSON error response. If the error
// is an *AppError it uses the error's status code, code, and message.
// Otherwise it logs the unexpected error and returns a generic internal
// server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// parseFlexibleTime accepts RFC 3339 timestamps or plain dates.
func parseFlexibleTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ErrorResponse documents the error payload shape for swagger.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

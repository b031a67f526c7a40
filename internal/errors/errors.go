// Package errors provides custom error types for the BudgetApp API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Validation errors. Rejected before any engine work happens; the message
// carries the field-level reason.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInvalidAmount  = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be a positive value with at most two decimal places", StatusCode: http.StatusBadRequest}
	ErrDateOutOfMonth = &AppError{Code: "DATE_OUT_OF_MONTH", Message: "Date falls outside the month boundaries", StatusCode: http.StatusBadRequest}
)

// Conflict errors. No partial write is ever visible after a conflict.
var (
	ErrDuplicateBudget     = &AppError{Code: "DUPLICATE_BUDGET", Message: "A budget already exists for this user", StatusCode: http.StatusConflict}
	ErrDuplicateDefinition = &AppError{Code: "DUPLICATE_DEFINITION", Message: "An entry with the same name already exists. Try changing the name.", StatusCode: http.StatusConflict}
)

// Not-found errors. Deletes of missing records are treated as already
// resolved by the services; updates surface these.
var (
	ErrBudgetNotFound     = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrMonthNotFound      = &AppError{Code: "MONTH_NOT_FOUND", Message: "Month not found", StatusCode: http.StatusNotFound}
	ErrDefinitionNotFound = &AppError{Code: "DEFINITION_NOT_FOUND", Message: "Recurring definition not found", StatusCode: http.StatusNotFound}
	ErrOccurrenceNotFound = &AppError{Code: "OCCURRENCE_NOT_FOUND", Message: "Occurrence not found", StatusCode: http.StatusNotFound}
)

// Infrastructure errors.
var (
	ErrRegistryUnavailable = &AppError{Code: "REGISTRY_UNAVAILABLE", Message: "The data store is temporarily unavailable. Please retry.", StatusCode: http.StatusServiceUnavailable}
	ErrInternalServer      = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

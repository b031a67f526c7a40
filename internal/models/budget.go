package models

import (
	"time"
)

// Budget is the root record for a user's budget. A user has at most one
// budget; months and recurring definitions hang off it.
type Budget struct {
	Base
	UserID string `gorm:"not null;uniqueIndex" json:"user_id"`
	Name   string `json:"name"`

	// Relationships
	Settings BudgetSettings `gorm:"foreignKey:BudgetID" json:"settings"`
	Months   []MonthSummary `gorm:"foreignKey:BudgetID" json:"monthly_budget,omitempty"`
}

// BudgetSettings is the per-user configuration consumed read-only by the
// expander when generating paycheck occurrences.
type BudgetSettings struct {
	Base
	BudgetID       string        `gorm:"not null;uniqueIndex" json:"budget_id"`
	PayFrequency   FrequencyUnit `gorm:"not null;default:'Bi-Weekly'" json:"pay_frequency"`
	LastPayDate    time.Time     `json:"last_pay_date"`
	FirstDayOfWeek int           `gorm:"default:0" json:"first_day_of_week"`
	CurrencyCode   string        `gorm:"size:3;default:'USD'" json:"currency_code"`
}

// MonthSummary is one calendar month of the budget. Aggregates are the
// sums over the month's occurrence sets as of the last pipeline run; the
// display layer never recomputes them.
type MonthSummary struct {
	Base
	BudgetID string    `gorm:"not null;index" json:"budget_id"`
	Month    time.Time `gorm:"not null" json:"month"` // first of month, midnight UTC
	Sequence int       `gorm:"not null" json:"sequence"`
	Active   bool      `gorm:"default:false" json:"active"`

	// Set once the expand/reconcile pipeline has run for this month.
	Materialized bool `gorm:"default:false" json:"materialized"`

	TotalExpensesCents int64 `gorm:"default:0" json:"total_expenses_cents"`
	ExpensesPaidCents  int64 `gorm:"default:0" json:"expenses_paid_cents"`
	TotalIncomeCents   int64 `gorm:"default:0" json:"total_income_cents"`
	BalanceCents       int64 `gorm:"default:0" json:"balance_cents"`
}

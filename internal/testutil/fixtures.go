package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"budgetapp/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestBudget creates a budget with default bi-weekly settings and a
// unique user id.
func CreateTestBudget(t *testing.T, db *gorm.DB) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID: fmt.Sprintf("user-%d", nextID()),
		Name:   "My Budget",
		Settings: models.BudgetSettings{
			PayFrequency: models.UnitBiWeekly,
			LastPayDate:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			CurrencyCode: "USD",
		},
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestMonth creates a month summary for the given first-of-month date.
func CreateTestMonth(t *testing.T, db *gorm.DB, budgetID string, month time.Time, sequence int) *models.MonthSummary {
	t.Helper()

	summary := &models.MonthSummary{
		BudgetID: budgetID,
		Month:    time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC),
		Sequence: sequence,
		Active:   sequence == 0,
	}
	if err := db.Create(summary).Error; err != nil {
		t.Fatalf("failed to create test month: %v", err)
	}
	return summary
}

// CreateTestDefinition creates a recurring definition with a unique
// description.
func CreateTestDefinition(t *testing.T, db *gorm.DB, budgetID string, kind models.OccurrenceKind, unit models.FrequencyUnit, anchor time.Time, amountCents int64) *models.RecurringDefinition {
	t.Helper()

	def := &models.RecurringDefinition{
		BudgetID:    budgetID,
		Kind:        kind,
		Description: fmt.Sprintf("Test Definition %d", nextID()),
		AmountCents: amountCents,
		Type:        models.FrequencyTypeRecurring,
		Unit:        unit,
		AnchorDate:  anchor,
	}
	if err := db.Create(def).Error; err != nil {
		t.Fatalf("failed to create test definition: %v", err)
	}
	return def
}

// CreateTestOccurrence creates a one-off occurrence in the given month.
func CreateTestOccurrence(t *testing.T, db *gorm.DB, monthID string, kind models.OccurrenceKind, dueDate time.Time, amountCents int64) *models.Occurrence {
	t.Helper()

	occ := &models.Occurrence{
		MonthID:     monthID,
		Kind:        kind,
		Description: fmt.Sprintf("Test Occurrence %d", nextID()),
		AmountCents: amountCents,
		DueDate:     dueDate,
	}
	if err := db.Create(occ).Error; err != nil {
		t.Fatalf("failed to create test occurrence: %v", err)
	}
	return occ
}

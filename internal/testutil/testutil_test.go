package testutil_test

import (
	"testing"
	"time"

	"budgetapp/internal/errors"
	"budgetapp/internal/models"
	"budgetapp/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"budgets", "budget_settings", "month_summaries", "recurring_definitions", "occurrences"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	budget := testutil.CreateTestBudget(t, db)
	if budget.ID == "" {
		t.Fatal("budget should have an assigned id")
	}
	if budget.Settings.BudgetID != budget.ID {
		t.Error("settings should be attached to the budget")
	}

	monthStart := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	month := testutil.CreateTestMonth(t, db, budget.ID, monthStart, 0)
	if !month.Active {
		t.Error("sequence zero month should be active")
	}

	def := testutil.CreateTestDefinition(t, db, budget.ID, models.KindExpense, models.UnitMonthly, monthStart, 6000)
	if def.Type != models.FrequencyTypeRecurring {
		t.Errorf("expected recurring type, got %s", def.Type)
	}

	occ := testutil.CreateTestOccurrence(t, db, month.ID, models.KindIncome, monthStart.AddDate(0, 0, 4), 250000)
	if occ.AmountCents != 250000 {
		t.Errorf("expected amount 250000, got %d", occ.AmountCents)
	}
	if occ.Recurring() {
		t.Error("fixture occurrence should be a one-off")
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrMonthNotFound, "custom message")
	testutil.AssertAppError(t, err, "MONTH_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}

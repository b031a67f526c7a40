package registry

import (
	"context"
	"testing"
	"time"

	"budgetapp/internal/models"
	"budgetapp/internal/testutil"
)

func monthStart(offset int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
}

func TestPersistMonth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	reg := New(db)
	ctx := context.Background()

	budget := testutil.CreateTestBudget(t, db)
	month := testutil.CreateTestMonth(t, db, budget.ID, monthStart(0), 0)
	stale := testutil.CreateTestOccurrence(t, db, month.ID, models.KindExpense, monthStart(0).AddDate(0, 0, 2), 1000)

	upserts := []models.Occurrence{
		{
			MonthID:     month.ID,
			Kind:        models.KindExpense,
			Description: "New bill",
			AmountCents: 4500,
			DueDate:     monthStart(0).AddDate(0, 0, 12),
		},
	}
	month.Materialized = true
	month.TotalExpensesCents = 4500

	err := reg.PersistMonth(ctx, month, upserts, []string{stale.ID})
	testutil.AssertNoError(t, err)

	expenses, _, err := reg.GetMonthOccurrences(ctx, month.ID)
	testutil.AssertNoError(t, err)
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense after persist, got %d", len(expenses))
	}
	if expenses[0].ID == "" {
		t.Error("created occurrence should have an assigned id")
	}
	if expenses[0].Description != "New bill" {
		t.Errorf("expected the upserted record, got %q", expenses[0].Description)
	}

	got, err := reg.GetMonth(ctx, month.ID)
	testutil.AssertNoError(t, err)
	if !got.Materialized || got.TotalExpensesCents != 4500 {
		t.Errorf("summary fields not persisted: %+v", got)
	}
}

func TestDeleteOccurrencesByDefinition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	reg := New(db)
	ctx := context.Background()

	budget := testutil.CreateTestBudget(t, db)
	past := testutil.CreateTestMonth(t, db, budget.ID, monthStart(-1), 0)
	current := testutil.CreateTestMonth(t, db, budget.ID, monthStart(0), 1)
	def := testutil.CreateTestDefinition(t, db, budget.ID, models.KindExpense, models.UnitMonthly, monthStart(-1), 6000)

	makeOcc := func(monthID string, due time.Time, override bool) *models.Occurrence {
		occ := &models.Occurrence{
			MonthID:        monthID,
			DefinitionID:   &def.ID,
			Kind:           models.KindExpense,
			Description:    def.Description,
			AmountCents:    def.AmountCents,
			DueDate:        due,
			ManualOverride: override,
		}
		testutil.AssertNoError(t, reg.CreateOccurrence(ctx, occ))
		return occ
	}

	pastOcc := makeOcc(past.ID, monthStart(-1).AddDate(0, 0, 4), false)
	plain := makeOcc(current.ID, monthStart(0).AddDate(0, 0, 4), false)
	overridden := makeOcc(current.ID, monthStart(0).AddDate(0, 0, 18), true)

	err := reg.DeleteOccurrencesByDefinition(ctx, def.ID, monthStart(0))
	testutil.AssertNoError(t, err)

	// Prior months keep their records.
	kept, err := reg.GetOccurrence(ctx, pastOcc.ID)
	testutil.AssertNoError(t, err)
	if kept.DefinitionID == nil || *kept.DefinitionID != def.ID {
		t.Error("past occurrences must keep their definition reference")
	}

	// The plain occurrence in the window is gone.
	_, err = reg.GetOccurrence(ctx, plain.ID)
	testutil.AssertAppError(t, err, "OCCURRENCE_NOT_FOUND")

	// The overridden one survives as an orphan.
	orphan, err := reg.GetOccurrence(ctx, overridden.ID)
	testutil.AssertNoError(t, err)
	if orphan.DefinitionID != nil {
		t.Error("overridden occurrence should be orphaned, not deleted")
	}

	// The definition is no longer live.
	defs, err := reg.GetDefinitions(ctx, budget.ID)
	testutil.AssertNoError(t, err)
	if len(defs) != 0 {
		t.Errorf("expected no live definitions, got %d", len(defs))
	}
}

func TestSetActiveMonth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	reg := New(db)
	ctx := context.Background()

	budget := testutil.CreateTestBudget(t, db)
	first := testutil.CreateTestMonth(t, db, budget.ID, monthStart(0), 0)
	second := testutil.CreateTestMonth(t, db, budget.ID, monthStart(1), 1)

	testutil.AssertNoError(t, reg.SetActiveMonth(ctx, budget.ID, second.ID))

	months, err := reg.ListMonths(ctx, budget.ID)
	testutil.AssertNoError(t, err)
	for _, m := range months {
		switch m.ID {
		case first.ID:
			if m.Active {
				t.Error("previous active flag should be cleared")
			}
		case second.ID:
			if !m.Active {
				t.Error("target month should be active")
			}
		}
	}
}

func TestGetBudgetOrdersMonths(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	reg := New(db)
	ctx := context.Background()

	budget := testutil.CreateTestBudget(t, db)
	// Insert out of order; reads must come back by sequence.
	testutil.CreateTestMonth(t, db, budget.ID, monthStart(2), 2)
	testutil.CreateTestMonth(t, db, budget.ID, monthStart(0), 0)
	testutil.CreateTestMonth(t, db, budget.ID, monthStart(1), 1)

	got, err := reg.GetBudget(ctx, budget.UserID)
	testutil.AssertNoError(t, err)
	if len(got.Months) != 3 {
		t.Fatalf("expected 3 months, got %d", len(got.Months))
	}
	for i, m := range got.Months {
		if m.Sequence != i {
			t.Errorf("month %d out of order: sequence %d", i, m.Sequence)
		}
	}
	if got.Settings.ID == "" {
		t.Error("settings should be preloaded")
	}
}

func TestGetBudgetNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	reg := New(db)

	_, err := reg.GetBudget(context.Background(), "nobody")
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
}

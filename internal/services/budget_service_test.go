package services_test

import (
	"context"
	"testing"
	"time"

	"budgetapp/internal/config"
	"budgetapp/internal/models"
	"budgetapp/internal/registry"
	"budgetapp/internal/services"
	"budgetapp/internal/testutil"

	"gorm.io/gorm"
)

func newBudgetService(db *gorm.DB) (services.BudgetServicer, services.Registry) {
	reg := registry.New(db)
	months := services.NewMonthService(reg)
	return services.NewBudgetService(reg, months), reg
}

func TestCreateBudget(t *testing.T) {
	t.Run("seeds_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newBudgetService(db)
		ctx := context.Background()

		budget, err := svc.CreateBudget(ctx, uniqueName("user"), "Household", models.BudgetSettings{
			PayFrequency: models.UnitBiWeekly,
			LastPayDate:  time.Now().UTC(),
			CurrencyCode: "USD",
		})
		testutil.AssertNoError(t, err)

		want := config.Get().InitialMonths
		if len(budget.Months) != want {
			t.Fatalf("expected %d seeded months, got %d", want, len(budget.Months))
		}
		if !budget.Months[0].Month.Equal(currentMonthStart()) {
			t.Errorf("first month should be the current month, got %v", budget.Months[0].Month)
		}
		if !budget.Months[0].Active {
			t.Error("first month should start active")
		}
		for i, m := range budget.Months {
			if m.Sequence != i {
				t.Errorf("month %d has sequence %d", i, m.Sequence)
			}
		}
		if budget.Settings.PayFrequency != models.UnitBiWeekly {
			t.Errorf("expected settings persisted, got %s", budget.Settings.PayFrequency)
		}
	})

	t.Run("duplicate_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newBudgetService(db)
		ctx := context.Background()

		userID := uniqueName("user")
		_, err := svc.CreateBudget(ctx, userID, "First", models.BudgetSettings{PayFrequency: models.UnitMonthly})
		testutil.AssertNoError(t, err)

		_, err = svc.CreateBudget(ctx, userID, "Second", models.BudgetSettings{PayFrequency: models.UnitMonthly})
		testutil.AssertAppError(t, err, "DUPLICATE_BUDGET")
	})

	t.Run("missing_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newBudgetService(db)

		_, err := svc.CreateBudget(context.Background(), "", "Nobody", models.BudgetSettings{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetOverview(t *testing.T) {
	t.Run("current_first_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newBudgetService(db)
		ctx := context.Background()

		userID := uniqueName("user")
		_, err := svc.CreateBudget(ctx, userID, "Household", models.BudgetSettings{PayFrequency: models.UnitMonthly})
		testutil.AssertNoError(t, err)

		overview, err := svc.GetOverview(ctx, userID)
		testutil.AssertNoError(t, err)

		if overview.FirstActiveIdx != 0 {
			t.Errorf("expected active index 0, got %d", overview.FirstActiveIdx)
		}
		if overview.MoveToActiveMonth {
			t.Error("no auto-advance when the first month is current")
		}
	})

	t.Run("advances_past_stale_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, reg := newBudgetService(db)
		ctx := context.Background()

		// A budget whose month list starts two months back, as left by a
		// user who has not opened the app in a while.
		userID := uniqueName("user")
		budget := &models.Budget{UserID: userID, Name: "Stale", Settings: models.BudgetSettings{PayFrequency: models.UnitMonthly}}
		start := currentMonthStart().AddDate(0, -2, 0)
		months := make([]models.MonthSummary, 5)
		for i := range months {
			months[i] = models.MonthSummary{Month: start.AddDate(0, i, 0), Sequence: i, Active: i == 0}
		}
		testutil.AssertNoError(t, reg.CreateBudget(ctx, budget, months))

		overview, err := svc.GetOverview(ctx, userID)
		testutil.AssertNoError(t, err)

		if overview.FirstActiveIdx != 2 {
			t.Fatalf("expected active index 2, got %d", overview.FirstActiveIdx)
		}
		if !overview.MoveToActiveMonth {
			t.Error("expected auto-advance flag when the active month is not first")
		}
		for i, m := range overview.Budget.Months {
			if m.Active != (i == 2) {
				t.Errorf("month %d active=%v, want %v", i, m.Active, i == 2)
			}
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newBudgetService(db)

		_, err := svc.GetOverview(context.Background(), "ghost")
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestUpdateSettings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, _ := newBudgetService(db)
	ctx := context.Background()

	userID := uniqueName("user")
	budget, err := svc.CreateBudget(ctx, userID, "Household", models.BudgetSettings{
		PayFrequency: models.UnitBiWeekly,
		LastPayDate:  time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		CurrencyCode: "USD",
	})
	testutil.AssertNoError(t, err)

	updated, err := svc.UpdateSettings(ctx, budget.ID, models.BudgetSettings{
		PayFrequency: models.UnitSemiMonthly,
		CurrencyCode: "EUR",
	})
	testutil.AssertNoError(t, err)

	if updated.PayFrequency != models.UnitSemiMonthly {
		t.Errorf("expected pay frequency updated, got %s", updated.PayFrequency)
	}
	if updated.CurrencyCode != "EUR" {
		t.Errorf("expected currency EUR, got %s", updated.CurrencyCode)
	}
	if updated.LastPayDate.IsZero() {
		t.Error("an omitted pay date must keep its previous value")
	}
}

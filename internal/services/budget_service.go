package services

import (
	"context"
	"time"

	"budgetapp/internal/calendar"
	"budgetapp/internal/config"
	apperrors "budgetapp/internal/errors"
	"budgetapp/internal/models"
)

// budgetService manages the budget root record, its settings, and the
// month-list navigation state.
type budgetService struct {
	registry Registry
	months   MonthServicer
	now      func() time.Time
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(registry Registry, months MonthServicer) BudgetServicer {
	return &budgetService{registry: registry, months: months, now: time.Now}
}

// CreateBudget creates the user's budget with its settings and seeds the
// month list from the current month forward. A second budget for the
// same user is a conflict.
func (s *budgetService) CreateBudget(ctx context.Context, userID, name string, settings models.BudgetSettings) (*models.Budget, error) {
	if userID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user id is required")
	}

	budget := &models.Budget{
		UserID:   userID,
		Name:     name,
		Settings: settings,
	}

	months := seedMonths(s.now(), config.Get().InitialMonths)
	if err := s.registry.CreateBudget(ctx, budget, months); err != nil {
		return nil, err
	}
	return s.registry.GetBudget(ctx, userID)
}

// GetOverview returns the budget with its month list, the active month
// index, and the one-shot auto-advance flag consumed by the display
// layer. Active flags on the months are recomputed here, never derived
// client-side.
func (s *budgetService) GetOverview(ctx context.Context, userID string) (*BudgetOverview, error) {
	budget, err := s.registry.GetBudget(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := s.ActiveMonthIndex(budget.Months, s.now())
	if idx >= 0 {
		active := &budget.Months[idx]
		if !active.Active {
			if err := s.registry.SetActiveMonth(ctx, budget.ID, active.ID); err != nil {
				return nil, err
			}
			for i := range budget.Months {
				budget.Months[i].Active = i == idx
			}
		}
	}

	return &BudgetOverview{
		Budget:            budget,
		FirstActiveIdx:    idx,
		MoveToActiveMonth: idx > 0,
	}, nil
}

// UpdateSettings replaces the budget's settings and refreshes paycheck
// occurrences from the current month forward, since the pay schedule
// feeds the expander.
func (s *budgetService) UpdateSettings(ctx context.Context, budgetID string, settings models.BudgetSettings) (*models.BudgetSettings, error) {
	current, err := s.registry.GetSettings(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	current.PayFrequency = settings.PayFrequency
	if !settings.LastPayDate.IsZero() {
		current.LastPayDate = settings.LastPayDate
	}
	if settings.CurrencyCode != "" {
		current.CurrencyCode = settings.CurrencyCode
	}
	current.FirstDayOfWeek = settings.FirstDayOfWeek

	if err := s.registry.UpdateSettings(ctx, current); err != nil {
		return nil, err
	}

	if err := s.months.RefreshFrom(ctx, budgetID, s.now()); err != nil {
		return nil, err
	}
	return current, nil
}

// ActiveMonthIndex returns the index of the first month whose bounds
// contain today.
func (s *budgetService) ActiveMonthIndex(months []models.MonthSummary, today time.Time) int {
	return ActiveIndex(months, today)
}

// seedMonths builds count consecutive month summaries starting at the
// month containing today.
func seedMonths(today time.Time, count int) []models.MonthSummary {
	start, _ := calendar.MonthBounds(today)
	start = start.UTC()
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)

	months := make([]models.MonthSummary, count)
	for i := range months {
		months[i] = models.MonthSummary{
			Month:    start.AddDate(0, i, 0),
			Sequence: i,
			Active:   i == 0,
		}
	}
	return months
}

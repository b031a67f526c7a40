package services

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"

	"budgetapp/internal/calendar"
	"budgetapp/internal/logger"
	"budgetapp/internal/models"
)

// monthService runs the expand, reconcile, aggregate, persist pipeline
// for one month at a time.
type monthService struct {
	registry Registry

	// group collapses concurrent materializations of the same month id
	// (screen focus and background sync can fire together) into a
	// single in-flight run.
	group singleflight.Group

	now func() time.Time
}

// NewMonthService creates a new MonthServicer.
func NewMonthService(registry Registry) MonthServicer {
	return &monthService{registry: registry, now: time.Now}
}

// GetMonthDetails materializes the month's occurrences, recomputes its
// summary, persists both, and returns the month document.
func (s *monthService) GetMonthDetails(ctx context.Context, monthID string) (*MonthDetails, error) {
	v, err, _ := s.group.Do(monthID, func() (interface{}, error) {
		return s.materialize(ctx, monthID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*MonthDetails), nil
}

// RefreshFrom re-materializes every already-materialized month of the
// budget dated on or after from, strictly in chronological order, so a
// later month is never aggregated before an earlier one has settled.
func (s *monthService) RefreshFrom(ctx context.Context, budgetID string, from time.Time) error {
	months, err := s.registry.ListMonths(ctx, budgetID)
	if err != nil {
		return err
	}

	sort.Slice(months, func(i, j int) bool { return months[i].Month.Before(months[j].Month) })

	fromStart, _ := calendar.MonthBounds(from)
	for _, m := range months {
		if m.Month.Before(fromStart) {
			continue
		}
		if !m.Materialized && !calendar.Contains(m.Month, s.now()) {
			// Untouched future months stay lazy; they materialize on
			// first fetch.
			continue
		}
		if _, err := s.GetMonthDetails(ctx, m.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *monthService) materialize(ctx context.Context, monthID string) (*MonthDetails, error) {
	month, err := s.registry.GetMonth(ctx, monthID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	_, monthEnd := calendar.MonthBounds(month.Month)

	// Months fully in the past are immutable history: aggregate what is
	// stored, never regenerate.
	if monthEnd.Before(today) && month.Materialized {
		return s.loadOnly(ctx, month)
	}

	defs, err := s.registry.GetDefinitions(ctx, month.BudgetID)
	if err != nil {
		return nil, err
	}
	settings, err := s.registry.GetSettings(ctx, month.BudgetID)
	if err != nil {
		return nil, err
	}

	expenses, incomes, err := s.registry.GetMonthOccurrences(ctx, monthID)
	if err != nil {
		return nil, err
	}
	existing := append(append([]models.Occurrence{}, expenses...), incomes...)
	byDefinition := groupByDefinition(existing)

	var upserts []models.Occurrence
	var deleteIDs []string
	for i := range defs {
		def := &defs[i]
		candidates, err := Expand(def, month.Month, settings)
		if err != nil {
			logger.Get().Errorw("expand failed",
				"definition_id", def.ID,
				"month_id", monthID,
				"error", err,
			)
			continue
		}

		result := Reconcile(byDefinition[def.ID], candidates, def)
		for j := range result.Create {
			result.Create[j].MonthID = monthID
		}
		upserts = append(upserts, result.Upserts()...)
		deleteIDs = append(deleteIDs, result.DeleteIDs...)
	}

	month.Materialized = true
	if err := s.registry.PersistMonth(contextForWrite(ctx), month, upserts, deleteIDs); err != nil {
		return nil, err
	}

	// Aggregate over the post-reconciliation state.
	expenses, incomes, err = s.registry.GetMonthOccurrences(ctx, monthID)
	if err != nil {
		return nil, err
	}
	totals := Aggregate(expenses, incomes)
	totals.Apply(month)
	if err := s.registry.PersistMonth(contextForWrite(ctx), month, nil, nil); err != nil {
		return nil, err
	}

	return &MonthDetails{Month: month, Expenses: visible(expenses), Income: visible(incomes)}, nil
}

// loadOnly returns the stored month state without regeneration. Stored
// occurrences still change after a month closes (paid toggles), so the
// summary is recomputed from them and persisted when it has drifted.
func (s *monthService) loadOnly(ctx context.Context, month *models.MonthSummary) (*MonthDetails, error) {
	expenses, incomes, err := s.registry.GetMonthOccurrences(ctx, month.ID)
	if err != nil {
		return nil, err
	}

	totals := Aggregate(expenses, incomes)
	if month.TotalExpensesCents != int64(totals.TotalExpenses) ||
		month.ExpensesPaidCents != int64(totals.ExpensesPaid) ||
		month.TotalIncomeCents != int64(totals.TotalIncome) {
		totals.Apply(month)
		if err := s.registry.PersistMonth(contextForWrite(ctx), month, nil, nil); err != nil {
			return nil, err
		}
	}
	return &MonthDetails{Month: month, Expenses: visible(expenses), Income: visible(incomes)}, nil
}

// contextForWrite detaches registry writes from caller cancellation: an
// abandoned request must not leave a month half-materialized.
func contextForWrite(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func groupByDefinition(occurrences []models.Occurrence) map[string][]models.Occurrence {
	grouped := make(map[string][]models.Occurrence)
	for _, occ := range occurrences {
		if !occ.Recurring() {
			continue
		}
		grouped[*occ.DefinitionID] = append(grouped[*occ.DefinitionID], occ)
	}
	return grouped
}

// visible filters soft-hidden occurrences out of display payloads.
func visible(occurrences []models.Occurrence) []models.Occurrence {
	out := make([]models.Occurrence, 0, len(occurrences))
	for _, occ := range occurrences {
		if !occ.Hidden {
			out = append(out, occ)
		}
	}
	return out
}

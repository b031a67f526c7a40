package services

import (
	"context"
	"errors"
	"time"

	"budgetapp/internal/calendar"
	apperrors "budgetapp/internal/errors"
	"budgetapp/internal/models"
	"budgetapp/internal/money"
	"budgetapp/internal/pagination"
)

// occurrenceService is the write path for income and expense entries:
// creation of one-offs and recurring definitions, edits with or without
// propagation, and scoped deletes.
type occurrenceService struct {
	registry Registry
	months   MonthServicer
	now      func() time.Time
}

// NewOccurrenceService creates a new OccurrenceServicer.
func NewOccurrenceService(registry Registry, months MonthServicer) OccurrenceServicer {
	return &occurrenceService{registry: registry, months: months, now: time.Now}
}

// Submit creates a new entry. One-time entries become a single
// occurrence in their month; recurring ones become a definition whose
// occurrences materialize from the current month forward.
func (s *occurrenceService) Submit(ctx context.Context, input SubmitInput) error {
	amount, err := money.Parse(input.Amount)
	if err != nil || amount <= 0 {
		return apperrors.ErrInvalidAmount
	}
	if input.Description == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}

	if input.Frequency == "" || input.Frequency == models.FrequencyTypeOneTime {
		return s.submitOneOff(ctx, input, amount)
	}

	def := &models.RecurringDefinition{
		BudgetID:    input.BudgetID,
		Kind:        input.Kind,
		Description: input.Description,
		AmountCents: int64(amount),
		Type:        input.Frequency,
		Unit:        input.Unit,
		AnchorDate:  input.Date,
		IsAutomated: input.IsAutomated,
	}
	if err := s.registry.CreateDefinition(ctx, def); err != nil {
		return err
	}

	// Materialize from the current month so the new rule shows up
	// without waiting for the next fetch.
	return s.months.RefreshFrom(ctx, input.BudgetID, s.now())
}

func (s *occurrenceService) submitOneOff(ctx context.Context, input SubmitInput, amount money.Cents) error {
	if input.MonthID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month id is required for one-time entries")
	}
	month, err := s.registry.GetMonth(ctx, input.MonthID)
	if err != nil {
		return err
	}
	if !calendar.Contains(month.Month, input.Date) {
		return apperrors.ErrDateOutOfMonth
	}

	occ := &models.Occurrence{
		MonthID:     month.ID,
		Kind:        input.Kind,
		Description: input.Description,
		AmountCents: int64(amount),
		DueDate:     input.Date,
		IsPaid:      input.IsPaid,
	}
	if err := s.registry.CreateOccurrence(ctx, occ); err != nil {
		return err
	}
	return s.months.RefreshFrom(ctx, month.BudgetID, month.Month)
}

// Update applies an edit to an occurrence. With propagate the delta
// lands on the owning definition and every non-overridden occurrence of
// it from this month forward is refreshed; months before it stay as
// they were. Without propagate only this occurrence changes and it
// becomes manually overridden, immune to later regeneration.
func (s *occurrenceService) Update(ctx context.Context, id string, input UpdateInput, propagate bool) error {
	occ, err := s.registry.GetOccurrence(ctx, id)
	if err != nil {
		return err
	}
	month, err := s.registry.GetMonth(ctx, occ.MonthID)
	if err != nil {
		return err
	}

	if propagate && occ.Recurring() {
		return s.propagateToDefinition(ctx, occ, month, input)
	}

	edited := false
	if input.Description != nil && *input.Description != occ.Description {
		occ.Description = *input.Description
		edited = true
	}
	if input.Amount != nil {
		amount, err := money.Parse(*input.Amount)
		if err != nil || amount <= 0 {
			return apperrors.ErrInvalidAmount
		}
		if int64(amount) != occ.AmountCents {
			occ.AmountCents = int64(amount)
			edited = true
		}
	}
	if input.Date != nil && !input.Date.Equal(occ.DueDate) {
		if !calendar.Contains(month.Month, *input.Date) {
			return apperrors.ErrDateOutOfMonth
		}
		occ.DueDate = *input.Date
		edited = true
	}
	if input.IsPaid != nil {
		// A paid toggle alone is occurrence-local state, not an edit
		// that detaches the occurrence from its definition.
		occ.IsPaid = *input.IsPaid
	}
	if edited && occ.Recurring() {
		occ.ManualOverride = true
	}

	if err := s.registry.UpdateOccurrence(ctx, occ); err != nil {
		return err
	}
	return s.months.RefreshFrom(ctx, month.BudgetID, month.Month)
}

func (s *occurrenceService) propagateToDefinition(ctx context.Context, occ *models.Occurrence, month *models.MonthSummary, input UpdateInput) error {
	def, err := s.registry.GetDefinition(ctx, *occ.DefinitionID)
	if err != nil {
		return err
	}

	if input.Description != nil {
		def.Description = *input.Description
	}
	if input.Amount != nil {
		amount, err := money.Parse(*input.Amount)
		if err != nil || amount <= 0 {
			return apperrors.ErrInvalidAmount
		}
		def.AmountCents = int64(amount)
	}
	// Dates never propagate: the schedule stays rooted at its anchor.

	if err := s.registry.UpdateDefinition(ctx, def); err != nil {
		return err
	}

	if input.IsPaid != nil {
		occ.IsPaid = *input.IsPaid
		if err := s.registry.UpdateOccurrence(ctx, occ); err != nil {
			return err
		}
	}

	// Force-refresh from the edited occurrence's month forward; earlier
	// months are immutable history.
	return s.months.RefreshFrom(ctx, month.BudgetID, month.Month)
}

// Delete removes an occurrence. Scope "this" hides a persisted
// recurring occurrence (or hard-deletes a one-off); scope "all" removes
// the owning definition and cascades to its non-overridden occurrences
// from the current month forward. Deleting something already gone is a
// no-op.
func (s *occurrenceService) Delete(ctx context.Context, id string, scope DeleteScope) error {
	occ, err := s.registry.GetOccurrence(ctx, id)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrOccurrenceNotFound.Code {
			return nil
		}
		return err
	}
	month, err := s.registry.GetMonth(ctx, occ.MonthID)
	if err != nil {
		return err
	}

	if scope == DeleteScopeAll && occ.Recurring() {
		from, _ := calendar.MonthBounds(s.now())
		if err := s.registry.DeleteOccurrencesByDefinition(ctx, *occ.DefinitionID, from); err != nil {
			return err
		}
		return s.months.RefreshFrom(ctx, month.BudgetID, from)
	}

	if occ.Recurring() {
		// Hiding instead of deleting keeps regeneration from
		// re-creating the date on the next pipeline run.
		occ.Hidden = true
		occ.ManualOverride = true
		if err := s.registry.UpdateOccurrence(ctx, occ); err != nil {
			return err
		}
	} else if err := s.registry.DeleteOccurrence(ctx, id); err != nil {
		return err
	}
	return s.months.RefreshFrom(ctx, month.BudgetID, month.Month)
}

// DeleteMany removes a batch of occurrences with single-occurrence
// scope. The removals are applied in one registry transaction, so a
// failing id never leaves a partially deleted batch behind. Unknown ids
// are skipped.
func (s *occurrenceService) DeleteMany(ctx context.Context, ids []string) error {
	var hide []models.Occurrence
	var deleteIDs []string
	refresh := make(map[string]time.Time)

	for _, id := range ids {
		occ, err := s.registry.GetOccurrence(ctx, id)
		if err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) && appErr.Code == apperrors.ErrOccurrenceNotFound.Code {
				continue
			}
			return err
		}
		month, err := s.registry.GetMonth(ctx, occ.MonthID)
		if err != nil {
			return err
		}

		if occ.Recurring() {
			occ.Hidden = true
			occ.ManualOverride = true
			hide = append(hide, *occ)
		} else {
			deleteIDs = append(deleteIDs, occ.ID)
		}
		if from, ok := refresh[month.BudgetID]; !ok || month.Month.Before(from) {
			refresh[month.BudgetID] = month.Month
		}
	}

	if len(hide) == 0 && len(deleteIDs) == 0 {
		return nil
	}
	if err := s.registry.RemoveOccurrences(ctx, hide, deleteIDs); err != nil {
		return err
	}
	for budgetID, from := range refresh {
		if err := s.months.RefreshFrom(ctx, budgetID, from); err != nil {
			return err
		}
	}
	return nil
}

// ListDefinitions returns a page of the budget's recurring definitions.
func (s *occurrenceService) ListDefinitions(ctx context.Context, budgetID string, kind *models.OccurrenceKind, page pagination.PageRequest) (*pagination.PageResponse[models.RecurringDefinition], error) {
	return s.registry.ListDefinitions(ctx, budgetID, kind, page)
}

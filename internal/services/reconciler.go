package services

import (
	"time"

	"budgetapp/internal/models"
)

// ReconcileResult partitions a month's occurrences of one definition
// after merging freshly expanded candidates with previously materialized
// (and possibly user-edited) records.
type ReconcileResult struct {
	// Refresh holds existing non-overridden occurrences matched by a
	// candidate, with amount and description re-synced from the
	// definition. Ids and paid status survive.
	Refresh []models.Occurrence
	// Create holds brand-new unpaid occurrences for unmatched candidates.
	// Ids are assigned by the registry on persist.
	Create []models.Occurrence
	// Keep holds overridden occurrences matched by a candidate;
	// expansion is suppressed for their dates and they stay untouched.
	Keep []models.Occurrence
	// Orphan holds overridden occurrences whose date no longer matches
	// any candidate; they are retained as one-offs with the definition
	// link cleared.
	Orphan []models.Occurrence
	// DeleteIDs holds stale non-overridden occurrences whose date no
	// longer matches any candidate.
	DeleteIDs []string
}

// Upserts returns every occurrence the registry must write.
func (r ReconcileResult) Upserts() []models.Occurrence {
	out := make([]models.Occurrence, 0, len(r.Refresh)+len(r.Create)+len(r.Orphan))
	out = append(out, r.Refresh...)
	out = append(out, r.Create...)
	out = append(out, r.Orphan...)
	return out
}

// Survivors returns the full occurrence set for the month after
// reconciliation, in candidate-date order for generated records.
func (r ReconcileResult) Survivors() []models.Occurrence {
	out := make([]models.Occurrence, 0, len(r.Refresh)+len(r.Create)+len(r.Keep)+len(r.Orphan))
	out = append(out, r.Refresh...)
	out = append(out, r.Create...)
	out = append(out, r.Keep...)
	out = append(out, r.Orphan...)
	return out
}

// Reconcile merges the expanded candidate dates of one definition with
// that definition's existing occurrences in the month. Calling it twice
// with the same inputs and no intervening edits yields identical sets:
// no duplicate creation, no spurious deletes.
//
// A manually overridden occurrence is never refreshed, recreated, or
// deleted by regeneration; if its date fell out of the schedule it is
// orphaned into a plain one-off instead.
func Reconcile(existing []models.Occurrence, candidates []time.Time, def *models.RecurringDefinition) ReconcileResult {
	var result ReconcileResult

	matched := make(map[string]bool, len(existing))
	byDay := make(map[string]*models.Occurrence, len(existing))
	for i := range existing {
		byDay[dayKey(existing[i].DueDate)] = &existing[i]
	}

	for _, date := range candidates {
		key := dayKey(date)
		occ, ok := byDay[key]
		if !ok {
			result.Create = append(result.Create, models.Occurrence{
				DefinitionID: &def.ID,
				Kind:         def.Kind,
				Description:  def.Description,
				AmountCents:  def.AmountCents,
				DueDate:      date,
				IsPaid:       false,
			})
			continue
		}
		matched[occ.ID] = true

		if occ.ManualOverride {
			result.Keep = append(result.Keep, *occ)
			continue
		}

		refreshed := *occ
		refreshed.Description = def.Description
		refreshed.AmountCents = def.AmountCents
		result.Refresh = append(result.Refresh, refreshed)
	}

	for i := range existing {
		occ := existing[i]
		if matched[occ.ID] {
			continue
		}
		if occ.ManualOverride {
			orphan := occ
			orphan.DefinitionID = nil
			result.Orphan = append(result.Orphan, orphan)
			continue
		}
		result.DeleteIDs = append(result.DeleteIDs, occ.ID)
	}

	return result
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

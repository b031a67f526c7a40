package services

import (
	"time"

	"budgetapp/internal/calendar"
	"budgetapp/internal/models"
	"budgetapp/internal/money"
)

// Aggregate folds a month's occurrence sets into its summary figures.
// Hidden occurrences are excluded. Income is counted in full for the
// month regardless of whether its date has passed; only expenses carry
// a paid gate. Sums run over already-rounded cents, so no re-rounding
// happens mid-sum.
func Aggregate(expenses, incomes []models.Occurrence) Totals {
	var t Totals
	for _, e := range expenses {
		if e.Hidden {
			continue
		}
		t.TotalExpenses += money.Cents(e.AmountCents)
		if e.IsPaid {
			t.ExpensesPaid += money.Cents(e.AmountCents)
		}
	}
	for _, in := range incomes {
		if in.Hidden {
			continue
		}
		t.TotalIncome += money.Cents(in.AmountCents)
	}
	t.Balance = t.TotalIncome - t.TotalExpenses
	return t
}

// Apply writes the totals onto a month summary record.
func (t Totals) Apply(month *models.MonthSummary) {
	month.TotalExpensesCents = int64(t.TotalExpenses)
	month.ExpensesPaidCents = int64(t.ExpensesPaid)
	month.TotalIncomeCents = int64(t.TotalIncome)
	month.BalanceCents = int64(t.Balance)
}

// ActiveIndex returns the index of the month the user should land on:
// the first month whose bounds contain today. Past the final month it
// returns the last index; before the first, index zero.
func ActiveIndex(months []models.MonthSummary, today time.Time) int {
	starts := make([]time.Time, len(months))
	for i, m := range months {
		starts[i] = m.Month
	}
	return calendar.CurrentIndex(starts, today)
}

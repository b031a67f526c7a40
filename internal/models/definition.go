package models

import "time"

// OccurrenceKind distinguishes income from expense records.
type OccurrenceKind string

const (
	KindIncome  OccurrenceKind = "income"
	KindExpense OccurrenceKind = "expense"
)

// FrequencyType classifies how a definition schedules its occurrences.
type FrequencyType string

const (
	FrequencyTypePaycheck  FrequencyType = "Paycheck"
	FrequencyTypeRecurring FrequencyType = "Recurring"
	FrequencyTypeOneTime   FrequencyType = "Misc/One time"
)

// FrequencyUnit is the cadence of a recurring definition.
type FrequencyUnit string

const (
	UnitWeekly      FrequencyUnit = "Weekly"
	UnitBiWeekly    FrequencyUnit = "Bi-Weekly"
	UnitSemiMonthly FrequencyUnit = "Semi-Monthly"
	UnitMonthly     FrequencyUnit = "Monthly"
	UnitBiMonthly   FrequencyUnit = "Bi-Monthly"
)

// RecurringDefinition is the rule that generates dated occurrences. It
// outlives any single month; occurrences are materialized from it per
// month on demand, never pre-computed for the whole horizon.
type RecurringDefinition struct {
	Base
	BudgetID    string         `gorm:"not null;uniqueIndex:idx_definition_name" json:"budget_id"`
	Kind        OccurrenceKind `gorm:"not null;uniqueIndex:idx_definition_name" json:"kind"`
	Description string         `gorm:"not null;uniqueIndex:idx_definition_name" json:"description"`
	AmountCents int64          `gorm:"not null" json:"amount_cents"`
	Type        FrequencyType  `gorm:"not null" json:"frequency_type"`
	Unit        FrequencyUnit  `json:"frequency_unit,omitempty"`

	// AnchorDate roots the schedule: weekly cadences step from it,
	// calendar cadences reuse its day-of-month.
	AnchorDate time.Time `gorm:"not null" json:"anchor_date"`

	// IsAutomated marks machine-generated occurrences (paychecks) as
	// opposed to manually entered ones.
	IsAutomated bool `gorm:"default:true" json:"is_automated"`
}

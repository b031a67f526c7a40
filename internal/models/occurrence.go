package models

import "time"

// Occurrence is one concrete dated instance of income or expense inside
// a month. It belongs to exactly one month by date and references at
// most one definition; one-offs carry a nil DefinitionID.
type Occurrence struct {
	Base
	MonthID      string         `gorm:"not null;index" json:"month_id"`
	DefinitionID *string        `gorm:"index" json:"definition_id,omitempty"`
	Kind         OccurrenceKind `gorm:"not null" json:"kind"`
	Description  string         `gorm:"not null" json:"description"`
	AmountCents  int64          `gorm:"not null" json:"amount_cents"`

	// DueDate must fall within the owning month's bounds.
	DueDate time.Time `gorm:"not null" json:"due_date"`

	IsPaid bool `gorm:"default:false" json:"is_paid"`

	// ManualOverride is set once the user edits this occurrence
	// independent of its definition; regeneration never touches it again.
	ManualOverride bool `gorm:"default:false" json:"manual_override"`

	// Hidden soft-deletes a single persisted occurrence of a live
	// definition without breaking regeneration idempotence.
	Hidden bool `gorm:"default:false" json:"hidden"`
}

// Recurring reports whether the occurrence is linked to a definition.
func (o *Occurrence) Recurring() bool {
	return o.DefinitionID != nil && *o.DefinitionID != ""
}

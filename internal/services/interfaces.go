package services

import (
	"context"
	"time"

	"budgetapp/internal/models"
	"budgetapp/internal/money"
	"budgetapp/internal/pagination"
)

// Registry is the narrow contract over the durable store of budgets,
// months, recurring definitions, and occurrence sets. The engine reads
// and writes exclusively through it; transport is the registry's concern.
type Registry interface {
	GetBudget(ctx context.Context, userID string) (*models.Budget, error)
	CreateBudget(ctx context.Context, budget *models.Budget, months []models.MonthSummary) error
	GetSettings(ctx context.Context, budgetID string) (*models.BudgetSettings, error)
	UpdateSettings(ctx context.Context, settings *models.BudgetSettings) error

	GetDefinitions(ctx context.Context, budgetID string) ([]models.RecurringDefinition, error)
	ListDefinitions(ctx context.Context, budgetID string, kind *models.OccurrenceKind, page pagination.PageRequest) (*pagination.PageResponse[models.RecurringDefinition], error)
	GetDefinition(ctx context.Context, id string) (*models.RecurringDefinition, error)
	CreateDefinition(ctx context.Context, def *models.RecurringDefinition) error
	UpdateDefinition(ctx context.Context, def *models.RecurringDefinition) error

	GetMonth(ctx context.Context, monthID string) (*models.MonthSummary, error)
	ListMonths(ctx context.Context, budgetID string) ([]models.MonthSummary, error)
	SetActiveMonth(ctx context.Context, budgetID, monthID string) error
	GetMonthOccurrences(ctx context.Context, monthID string) (expenses, incomes []models.Occurrence, err error)

	GetOccurrence(ctx context.Context, id string) (*models.Occurrence, error)
	CreateOccurrence(ctx context.Context, occ *models.Occurrence) error
	UpdateOccurrence(ctx context.Context, occ *models.Occurrence) error
	DeleteOccurrence(ctx context.Context, id string) error

	// RemoveOccurrences hides and hard-deletes a batch of occurrences
	// in one transaction, so a bulk removal is never partially visible.
	RemoveOccurrences(ctx context.Context, hide []models.Occurrence, deleteIDs []string) error

	// PersistMonth applies a month's reconciled occurrence set and its
	// recomputed summary in a single transaction: an idempotent upsert
	// of every occurrence in upserts, removal of deleteIDs, and the
	// summary fields on month.
	PersistMonth(ctx context.Context, month *models.MonthSummary, upserts []models.Occurrence, deleteIDs []string) error

	// DeleteOccurrencesByDefinition removes the definition and every
	// non-overridden occurrence of it dated on or after from, in one
	// transaction. Overridden occurrences are orphaned in place.
	DeleteOccurrencesByDefinition(ctx context.Context, definitionID string, from time.Time) error
}

// Totals are a month's aggregate figures in cents.
type Totals struct {
	TotalExpenses money.Cents `json:"total_expenses_cents"`
	ExpensesPaid  money.Cents `json:"expenses_paid_cents"`
	TotalIncome   money.Cents `json:"total_income_cents"`
	Balance       money.Cents `json:"balance_cents"`
}

// MonthDetails is the month document returned to the display layer.
type MonthDetails struct {
	Month    *models.MonthSummary `json:"month_details"`
	Expenses []models.Occurrence  `json:"expenses"`
	Income   []models.Occurrence  `json:"income"`
}

// BudgetOverview is the budget fetch payload: the month list plus the
// one-shot auto-advance navigation state.
type BudgetOverview struct {
	Budget *models.Budget `json:"budget"`
	// FirstActiveIdx is the index of the month the user should land on.
	FirstActiveIdx int `json:"first_active_idx"`
	// MoveToActiveMonth tells the display layer to auto-advance once;
	// subsequent manual navigation is never overridden.
	MoveToActiveMonth bool `json:"move_to_active_month"`
}

// SubmitInput carries a new income or expense entry from the display layer.
type SubmitInput struct {
	BudgetID    string
	MonthID     string
	Kind        models.OccurrenceKind
	Description string
	Amount      string // decimal string, rounded once at parse
	Date        time.Time
	Frequency   models.FrequencyType
	Unit        models.FrequencyUnit
	IsAutomated bool
	IsPaid      bool
}

// UpdateInput carries an edit to an existing occurrence. Nil fields are
// left unchanged.
type UpdateInput struct {
	Description *string
	Amount      *string
	Date        *time.Time
	IsPaid      *bool
}

// DeleteScope selects how far an occurrence delete reaches.
type DeleteScope string

const (
	// DeleteScopeThis removes only the targeted occurrence.
	DeleteScopeThis DeleteScope = "this"
	// DeleteScopeAll removes the owning definition and cascades to its
	// non-overridden occurrences from the current month forward.
	DeleteScopeAll DeleteScope = "all"
)

// BudgetServicer manages budgets, settings, and month-list navigation state.
type BudgetServicer interface {
	CreateBudget(ctx context.Context, userID, name string, settings models.BudgetSettings) (*models.Budget, error)
	GetOverview(ctx context.Context, userID string) (*BudgetOverview, error)
	UpdateSettings(ctx context.Context, budgetID string, settings models.BudgetSettings) (*models.BudgetSettings, error)
	ActiveMonthIndex(months []models.MonthSummary, today time.Time) int
}

// MonthServicer runs the expand, reconcile, aggregate, persist pipeline.
type MonthServicer interface {
	GetMonthDetails(ctx context.Context, monthID string) (*MonthDetails, error)
	RefreshFrom(ctx context.Context, budgetID string, from time.Time) error
}

// OccurrenceServicer is the write path for individual entries.
type OccurrenceServicer interface {
	Submit(ctx context.Context, input SubmitInput) error
	Update(ctx context.Context, id string, input UpdateInput, propagate bool) error
	Delete(ctx context.Context, id string, scope DeleteScope) error
	DeleteMany(ctx context.Context, ids []string) error
	ListDefinitions(ctx context.Context, budgetID string, kind *models.OccurrenceKind, page pagination.PageRequest) (*pagination.PageResponse[models.RecurringDefinition], error)
}

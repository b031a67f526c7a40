// Package registry implements the engine's durable-store contract on
// top of GORM. All multi-record writes run inside transactions, so a
// cascade is either fully applied or not visible at all.
package registry

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "budgetapp/internal/errors"
	"budgetapp/internal/models"
	"budgetapp/internal/pagination"
	"budgetapp/internal/services"
)

// GormRegistry is the gorm-backed implementation of services.Registry.
type GormRegistry struct {
	db *gorm.DB
}

// New creates a registry over the given database handle.
func New(db *gorm.DB) *GormRegistry {
	return &GormRegistry{db: db}
}

var _ services.Registry = (*GormRegistry)(nil)

// GetBudget returns the user's budget with settings and ordered months.
func (r *GormRegistry) GetBudget(ctx context.Context, userID string) (*models.Budget, error) {
	var budget models.Budget
	err := r.db.WithContext(ctx).
		Preload("Settings").
		Preload("Months", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		Where("user_id = ?", userID).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}
	return &budget, nil
}

// CreateBudget creates the budget, its settings, and the seeded month
// list in one transaction.
func (r *GormRegistry) CreateBudget(ctx context.Context, budget *models.Budget, months []models.MonthSummary) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(budget).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateBudget
			}
			return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
		}
		for i := range months {
			months[i].BudgetID = budget.ID
		}
		if len(months) > 0 {
			if err := tx.Create(&months).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
			}
		}
		return nil
	})
}

// GetSettings returns the budget's settings.
func (r *GormRegistry) GetSettings(ctx context.Context, budgetID string) (*models.BudgetSettings, error) {
	var settings models.BudgetSettings
	err := r.db.WithContext(ctx).Where("budget_id = ?", budgetID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}
	return &settings, nil
}

// UpdateSettings saves the settings record.
func (r *GormRegistry) UpdateSettings(ctx context.Context, settings *models.BudgetSettings) error {
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}
	return nil
}

// GetDefinitions returns every live recurring definition of the budget.
func (r *GormRegistry) GetDefinitions(ctx context.Context, budgetID string) ([]models.RecurringDefinition, error) {
	var defs []models.RecurringDefinition
	err := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("created_at ASC").
		Find(&defs).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}
	return defs, nil
}

// ListDefinitions returns a page of definitions, optionally filtered by kind.
func (r *GormRegistry) ListDefinitions(ctx context.Context, budgetID string, kind *models.OccurrenceKind, page pagination.PageRequest) (*pagination.PageResponse[models.RecurringDefinition], error) {
	page.Defaults()

	base := r.db.WithContext(ctx).Model(&models.RecurringDefinition{}).Where("budget_id = ?", budgetID)
	if kind != nil {
		base = base.Where("kind = ?", *kind)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}

	var defs []models.RecurringDefinition
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at ASC").Find(&defs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}

	result := pagination.NewPageResponse(defs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDefinition returns one definition by id.
func (r *GormRegistry) GetDefinition(ctx context.Context, id string) (*models.RecurringDefinition, error) {
	var def models.RecurringDefinition
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&def).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDefinitionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}
	return &def, nil
}

// CreateDefinition inserts a definition; a duplicate name within the
// budget and kind is a conflict with no partial write.
func (r *GormRegistry) CreateDefinition(ctx context.Context, def *models.RecurringDefinition) error {
	if err := r.db.WithContext(ctx).Create(def).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateDefinition
		}
		return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}
	return nil
}

// UpdateDefinition saves the definition.
func (r *GormRegistry) UpdateDefinition(ctx context.Context, def *models.RecurringDefinition) error {
	err := r.db.WithContext(ctx).Save(def).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateDefinition
		}
		return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}
	return nil
}

// GetMonth returns one month summary by id.
func (r *GormRegistry) GetMonth(ctx context.Context, monthID string) (*models.MonthSummary, error) {
	var month models.MonthSummary
	err := r.db.WithContext(ctx).Where("id = ?", monthID).First(&month).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMonthNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}
	return &month, nil
}

// ListMonths returns the budget's months in sequence order.
func (r *GormRegistry) ListMonths(ctx context.Context, budgetID string) ([]models.MonthSummary, error) {
	var months []models.MonthSummary
	err := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("sequence ASC").
		Find(&months).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}
	return months, nil
}

// SetActiveMonth marks monthID active and clears the flag everywhere
// else in the budget, atomically.
func (r *GormRegistry) SetActiveMonth(ctx context.Context, budgetID, monthID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MonthSummary{}).
			Where("budget_id = ? AND active", budgetID).
			Update("active", false).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
		}
		if err := tx.Model(&models.MonthSummary{}).
			Where("id = ?", monthID).
			Update("active", true).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
		}
		return nil
	})
}

// GetMonthOccurrences returns the month's expense and income sets,
// ordered by due date.
func (r *GormRegistry) GetMonthOccurrences(ctx context.Context, monthID string) ([]models.Occurrence, []models.Occurrence, error) {
	var all []models.Occurrence
	err := r.db.WithContext(ctx).
		Where("month_id = ?", monthID).
		Order("due_date ASC, created_at ASC").
		Find(&all).Error
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}

	var expenses, incomes []models.Occurrence
	for _, occ := range all {
		if occ.Kind == models.KindExpense {
			expenses = append(expenses, occ)
		} else {
			incomes = append(incomes, occ)
		}
	}
	return expenses, incomes, nil
}

// GetOccurrence returns one occurrence by id.
func (r *GormRegistry) GetOccurrence(ctx context.Context, id string) (*models.Occurrence, error) {
	var occ models.Occurrence
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&occ).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOccurrenceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}
	return &occ, nil
}

// CreateOccurrence inserts a single occurrence.
func (r *GormRegistry) CreateOccurrence(ctx context.Context, occ *models.Occurrence) error {
	if err := r.db.WithContext(ctx).Create(occ).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}
	return nil
}

// UpdateOccurrence saves an occurrence.
func (r *GormRegistry) UpdateOccurrence(ctx context.Context, occ *models.Occurrence) error {
	if err := r.db.WithContext(ctx).Save(occ).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}
	return nil
}

// DeleteOccurrence removes an occurrence. Removing a missing record is
// not an error.
func (r *GormRegistry) DeleteOccurrence(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Occurrence{}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
	}
	return nil
}

// RemoveOccurrences hides and hard-deletes a batch of occurrences in
// one transaction, so a bulk removal is never partially visible.
func (r *GormRegistry) RemoveOccurrences(ctx context.Context, hide []models.Occurrence, deleteIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range hide {
			if err := tx.Save(&hide[i]).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
			}
		}
		if len(deleteIDs) > 0 {
			if err := tx.Where("id IN ?", deleteIDs).Delete(&models.Occurrence{}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
			}
		}
		return nil
	})
}

// PersistMonth applies the reconciled occurrence set and the summary in
// a single transaction, upserting by id so repeated runs are idempotent.
func (r *GormRegistry) PersistMonth(ctx context.Context, month *models.MonthSummary, upserts []models.Occurrence, deleteIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range upserts {
			occ := &upserts[i]
			var err error
			if occ.ID == "" {
				err = tx.Create(occ).Error
			} else {
				err = tx.Save(occ).Error
			}
			if err != nil {
				return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
			}
		}
		if len(deleteIDs) > 0 {
			if err := tx.Where("id IN ?", deleteIDs).Delete(&models.Occurrence{}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
			}
		}
		if err := tx.Save(month).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
		}
		return nil
	})
}

// DeleteOccurrencesByDefinition removes the definition and all of its
// non-overridden occurrences dated on or after from. Overridden
// occurrences survive as orphaned one-offs. One transaction: the
// cascade is never partially visible.
func (r *GormRegistry) DeleteOccurrencesByDefinition(ctx context.Context, definitionID string, from time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("definition_id = ? AND due_date >= ? AND NOT manual_override", definitionID, from).
			Delete(&models.Occurrence{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
		}
		// Overridden occurrences in the cascade window survive as
		// orphaned one-offs. Prior months keep their records intact;
		// the definition row is soft-deleted, so history still resolves.
		if err := tx.Model(&models.Occurrence{}).
			Where("definition_id = ? AND due_date >= ? AND manual_override", definitionID, from).
			Update("definition_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
		}
		if err := tx.Where("id = ?", definitionID).Delete(&models.RecurringDefinition{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrRegistryUnavailable, err)
		}
		return nil
	})
}

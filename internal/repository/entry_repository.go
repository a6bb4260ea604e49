package repository

import (
	"errors"
	"time"

	"github.com/officekit/office-planning-api/internal/database"
	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/utils"
	"gorm.io/gorm"
)

// GormEntryRepository is a GORM implementation of EntryRepository
type GormEntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &GormEntryRepository{db: db}
}

// FindByID finds an entry by ID
func (r *GormEntryRepository) FindByID(id uint64) (*models.PlanEntry, error) {
	var entry models.PlanEntry
	if err := r.db.First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByUserAndDate finds the entry for a (user, date) pair
func (r *GormEntryRepository) FindByUserAndDate(userID uint64, date time.Time) (*models.PlanEntry, error) {
	var entry models.PlanEntry
	if err := r.db.Where("user_id = ? AND entry_date = ?", userID, models.DateOnly(date)).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindForUsers batch-loads all entries for a user set within a date range.
// Reports load their whole window through this one query rather than one
// query per user per day.
func (r *GormEntryRepository) FindForUsers(userIDs []uint64, from, to time.Time) ([]models.PlanEntry, error) {
	if len(userIDs) == 0 {
		return []models.PlanEntry{}, nil
	}

	var entries []models.PlanEntry
	if err := r.db.
		Where("user_id IN ?", userIDs).
		Where("entry_date >= ? AND entry_date <= ?", models.DateOnly(from), models.DateOnly(to)).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// List retrieves one user's entries with filtering and pagination
func (r *GormEntryRepository) List(filter EntryFilter) ([]models.PlanEntry, int64, error) {
	query := r.db.Model(&models.PlanEntry{}).Where("user_id = ?", filter.UserID)

	if filter.From != nil {
		query = query.Where("entry_date >= ?", models.DateOnly(*filter.From))
	}
	if filter.To != nil {
		query = query.Where("entry_date <= ?", models.DateOnly(*filter.To))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("entry_date ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Offset: (filter.Page - 1) * filter.PageSize,
			Limit:  filter.PageSize,
		}))
	}

	var entries []models.PlanEntry
	if err := listQuery.Preload("Location").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// Upsert writes an entry, matching any existing row by (user, date). The
// schema carries no unique constraint on the pair; this lookup is what keeps
// the one-entry-per-day invariant.
func (r *GormEntryRepository) Upsert(entry *models.PlanEntry) error {
	entry.EntryDate = models.DateOnly(entry.EntryDate)

	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.PlanEntry
		err := tx.Where("user_id = ? AND entry_date = ?", entry.UserID, entry.EntryDate).
			First(&existing).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(entry).Error
			}
			return err
		}

		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		return tx.Save(entry).Error
	})
}

// Delete hard-deletes an entry; plan entries have no soft-delete
func (r *GormEntryRepository) Delete(id uint64) error {
	return r.db.Unscoped().Delete(&models.PlanEntry{}, id).Error
}

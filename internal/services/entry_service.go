package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEntryNotFound       = errors.New("plan entry not found")
	ErrLocationNotFound    = errors.New("location not found")
	ErrInvalidCategory     = errors.New("unknown entry category")
	ErrWeekendEntry        = errors.New("plan entries cannot be created for weekend dates")
	ErrEntryAccessDenied   = errors.New("only the owner or a managing user can modify this entry")
	ErrEntryDateRequired   = errors.New("entry date is required")
	ErrEntryTargetRequired = errors.New("target user is required")
)

// EntryService handles plan entry writes, including manager-on-behalf edits.
type EntryService struct {
	entryRepo    repository.EntryRepository
	locationRepo repository.LocationRepository
	teamRepo     repository.TeamRepository
}

// NewEntryService creates a new EntryService.
func NewEntryService(
	entryRepo repository.EntryRepository,
	locationRepo repository.LocationRepository,
	teamRepo repository.TeamRepository,
) *EntryService {
	return &EntryService{
		entryRepo:    entryRepo,
		locationRepo: locationRepo,
		teamRepo:     teamRepo,
	}
}

// UpsertEntryInput represents one plan entry write.
type UpsertEntryInput struct {
	UserID             uint64
	Date               time.Time
	LocationID         *uint64
	Note               string
	AvailabilityStatus models.AvailabilityStatus
	IsHoliday          bool
	Category           models.EntryCategory
}

// Upsert writes the entry for (input.UserID, input.Date), creating or
// updating in place. The actor must be the user, an admin, or a manager of a
// team the user belongs to; writes by anyone but the user are flagged as
// manager-created.
func (s *EntryService) Upsert(actor *models.User, input UpsertEntryInput) (*models.PlanEntry, error) {
	if input.UserID == 0 {
		return nil, ErrEntryTargetRequired
	}
	if input.Date.IsZero() {
		return nil, ErrEntryDateRequired
	}
	if isWeekend(input.Date) {
		return nil, ErrWeekendEntry
	}
	if !models.ValidEntryCategory(input.Category) {
		return nil, ErrInvalidCategory
	}

	if err := s.ensureCanEdit(actor, input.UserID); err != nil {
		return nil, err
	}

	if input.LocationID != nil {
		if _, err := s.locationRepo.FindByID(*input.LocationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLocationNotFound
			}
			return nil, fmt.Errorf("failed to verify location: %w", err)
		}
	}

	entry := &models.PlanEntry{
		UserID:             input.UserID,
		EntryDate:          models.DateOnly(input.Date),
		LocationID:         input.LocationID,
		Note:               input.Note,
		AvailabilityStatus: input.AvailabilityStatus,
		IsHoliday:          input.IsHoliday,
		Category:           input.Category,
		CreatedByManager:   actor.ID != input.UserID,
	}

	if err := s.entryRepo.Upsert(entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	return entry, nil
}

// Delete removes an entry. Deletion is immediate and final; there is no
// soft-delete for plan entries.
func (s *EntryService) Delete(actor *models.User, entryID uint64) error {
	entry, err := s.entryRepo.FindByID(entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("failed to find entry: %w", err)
	}

	if err := s.ensureCanEdit(actor, entry.UserID); err != nil {
		return err
	}

	if err := s.entryRepo.Delete(entryID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	return nil
}

// List returns one user's entries, paginated.
func (s *EntryService) List(filter repository.EntryFilter) ([]models.PlanEntry, int64, error) {
	entries, total, err := s.entryRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, total, nil
}

func (s *EntryService) ensureCanEdit(actor *models.User, targetUserID uint64) error {
	if actor.ID == targetUserID || actor.IsAdmin {
		return nil
	}

	manages, err := s.teamRepo.ManagesUser(actor.ID, targetUserID)
	if err != nil {
		return fmt.Errorf("failed to verify management relationship: %w", err)
	}
	if !manages {
		return ErrEntryAccessDenied
	}
	return nil
}

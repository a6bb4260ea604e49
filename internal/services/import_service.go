package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/officekit/office-planning-api/internal/constants"
	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUnknownAvailabilityCode = errors.New("unknown availability code")
	ErrUnknownLocationCode     = errors.New("unknown location code")
	ErrUnknownEmail            = errors.New("no user with that email")
	ErrBadImportDate           = errors.New("date must be in day/month/year format")
	ErrShortImportRow          = errors.New("row must have five columns: email, date, location, note, availability")
)

// ParseAvailabilityCode canonicalizes a spreadsheet availability code to the
// tri-state model. O/R/N is the current encoding; Y/N is the legacy boolean
// one, folded in here so only one representation exists past this boundary.
func ParseAvailabilityCode(code string) (models.AvailabilityStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "O", "Y":
		return models.AvailabilityOnsite, nil
	case "R":
		return models.AvailabilityRemote, nil
	case "N":
		return models.AvailabilityNotAvailable, nil
	}
	return models.AvailabilityNotAvailable, fmt.Errorf("%w: %q", ErrUnknownAvailabilityCode, code)
}

// ImportRowError reports one rejected row: its 1-based position in the
// input, the raw data, and the first validation failure.
type ImportRowError struct {
	Row   int      `json:"row"`
	Data  []string `json:"data"`
	Error string   `json:"error"`
}

// ImportResult is the outcome of a bulk import. Rows succeed or fail
// independently; the call itself always succeeds.
type ImportResult struct {
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors"`
}

// ImportService validates spreadsheet rows and upserts plan entries.
type ImportService struct {
	userRepo     repository.UserRepository
	locationRepo repository.LocationRepository
	entryRepo    repository.EntryRepository
}

// NewImportService creates a new ImportService.
func NewImportService(
	userRepo repository.UserRepository,
	locationRepo repository.LocationRepository,
	entryRepo repository.EntryRepository,
) *ImportService {
	return &ImportService{
		userRepo:     userRepo,
		locationRepo: locationRepo,
		entryRepo:    entryRepo,
	}
}

// Import processes positional rows of
// [email, date, locationCode, note, availabilityCode]. The first row is
// always treated as a header and skipped, even if it would validate. Valid
// rows upsert by (user, date) and are flagged as manager-created; invalid
// rows are collected without aborting the batch.
func (s *ImportService) Import(rows [][]string) (*ImportResult, error) {
	result := &ImportResult{Errors: make([]ImportRowError, 0)}

	locations, err := s.locationRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}
	locationsByCode := indexLocationsByCode(locations)

	for i, row := range rows {
		if i == 0 {
			continue
		}

		rowNumber := i + 1
		if err := s.importRow(row, locationsByCode); err != nil {
			result.Errors = append(result.Errors, ImportRowError{
				Row:   rowNumber,
				Data:  row,
				Error: err.Error(),
			})
			continue
		}

		result.Imported++
	}

	return result, nil
}

func (s *ImportService) importRow(row []string, locationsByCode map[string]models.Location) error {
	if len(row) < constants.ImportRowColumns {
		return ErrShortImportRow
	}

	email := strings.TrimSpace(row[0])
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %q", ErrUnknownEmail, email)
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	date, err := parseImportDate(row[1])
	if err != nil {
		return err
	}

	location, ok := locationsByCode[normalizeCode(row[2])]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLocationCode, row[2])
	}

	status, err := ParseAvailabilityCode(row[4])
	if err != nil {
		return err
	}

	entry := &models.PlanEntry{
		UserID:             user.ID,
		EntryDate:          date,
		LocationID:         &location.ID,
		Note:               strings.TrimSpace(row[3]),
		AvailabilityStatus: status,
		CreatedByManager:   true,
	}

	if err := s.entryRepo.Upsert(entry); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	return nil
}

func parseImportDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range constants.ImportDateFormats {
		if date, err := time.Parse(layout, value); err == nil {
			return models.DateOnly(date), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadImportDate, raw)
}

// indexLocationsByCode maps both the slug and the short label of every
// location, case-insensitively, to the location.
func indexLocationsByCode(locations []models.Location) map[string]models.Location {
	byCode := make(map[string]models.Location, len(locations)*2)
	for _, loc := range locations {
		byCode[normalizeCode(loc.Slug)] = loc
		byCode[normalizeCode(loc.ShortLabel)] = loc
	}
	return byCode
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

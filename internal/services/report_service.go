package services

import (
	"fmt"
	"time"

	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/repository"
)

// DefaultNote is shown for planned cells whose entry carries no note.
const DefaultNote = "No details"

// CellState classifies one team-grid cell.
type CellState string

const (
	CellMissing CellState = "missing"
	CellAway    CellState = "away"
	CellPlanned CellState = "planned"
)

// TeamGridCell is one user/day cell of the team grid.
type TeamGridCell struct {
	Date      string    `json:"date"`
	State     CellState `json:"state"`
	Location  string    `json:"location,omitempty"`
	Note      string    `json:"note,omitempty"`
	IsHoliday bool      `json:"is_holiday,omitempty"`
}

// TeamGridRow is one user's row across the window.
type TeamGridRow struct {
	UserID uint64         `json:"user_id"`
	Name   string         `json:"name"`
	Cells  []TeamGridCell `json:"cells"`
}

// TeamGrid is the person-by-day report.
type TeamGrid struct {
	Days []string      `json:"days"`
	Rows []TeamGridRow `json:"rows"`
}

// LocationMember is one person recorded at a location on a day.
type LocationMember struct {
	UserID uint64 `json:"user_id"`
	Name   string `json:"name"`
	Note   string `json:"note"`
}

// LocationCell lists who is recorded at one location on one day. ShowDanger
// is raised only for physical locations with nobody present.
type LocationCell struct {
	LocationID uint64           `json:"location_id"`
	Slug       string           `json:"slug"`
	Label      string           `json:"label"`
	Members    []LocationMember `json:"members"`
	ShowDanger bool             `json:"show_danger"`
}

// LocationGridDay groups the location cells of one day.
type LocationGridDay struct {
	Date      string         `json:"date"`
	Locations []LocationCell `json:"locations"`
}

// LocationGrid is the day-by-location report.
type LocationGrid struct {
	Days []LocationGridDay `json:"days"`
}

// CoverageRow is one physical location's headcount across the window.
type CoverageRow struct {
	LocationID uint64 `json:"location_id"`
	Slug       string `json:"slug"`
	Label      string `json:"label"`
	Counts     []int  `json:"counts"`
}

// CoverageMatrix reduces the location grid to counts per physical location
// and day.
type CoverageMatrix struct {
	Days []string      `json:"days"`
	Rows []CoverageRow `json:"rows"`
}

// ServiceAvailabilityCell is one service/day cell. ManagerOnly is a weaker
// signal than the member count and never changes it: it is raised when no
// member is available but the service's manager is.
type ServiceAvailabilityCell struct {
	Date           string `json:"date"`
	AvailableCount int    `json:"available_count"`
	ManagerOnly    bool   `json:"manager_only"`
}

// ServiceAvailabilityRow is one service's availability across the window.
type ServiceAvailabilityRow struct {
	ServiceID uint64                    `json:"service_id"`
	Name      string                    `json:"name"`
	Cells     []ServiceAvailabilityCell `json:"cells"`
}

// ServiceAvailabilityMatrix is the service-by-day report. It always covers
// every service, independent of the viewer's team scope.
type ServiceAvailabilityMatrix struct {
	Days     []string                 `json:"days"`
	Services []ServiceAvailabilityRow `json:"services"`
}

// BuildTeamGrid classifies each user/day cell as missing, away or planned.
// Rows follow the given user order; columns follow the given day order.
func BuildTeamGrid(users []models.User, days []time.Time, index EntryIndex, locations []models.Location) TeamGrid {
	labels := locationLabels(locations)

	grid := TeamGrid{
		Days: dateKeys(days),
		Rows: make([]TeamGridRow, 0, len(users)),
	}

	for _, user := range users {
		row := TeamGridRow{
			UserID: user.ID,
			Name:   user.DisplayName(),
			Cells:  make([]TeamGridCell, 0, len(days)),
		}

		for _, day := range days {
			key := DateKey(day)
			cell := TeamGridCell{Date: key, State: CellMissing}

			if entry, ok := index.Lookup(user.ID, key); ok {
				cell.IsHoliday = entry.IsHoliday
				if entry.LocationID == nil {
					cell.State = CellAway
				} else {
					cell.State = CellPlanned
					cell.Location = labels[*entry.LocationID]
					cell.Note = entry.Note
					if cell.Note == "" {
						cell.Note = DefaultNote
					}
				}
			}

			row.Cells = append(row.Cells, cell)
		}

		grid.Rows = append(grid.Rows, row)
	}

	return grid
}

// BuildLocationGrid collects, for every day and every configured location,
// the users whose entry records that location and an available status. An
// unavailable entry never counts as present even when a location is set.
func BuildLocationGrid(users []models.User, days []time.Time, index EntryIndex, locations []models.Location) LocationGrid {
	grid := LocationGrid{Days: make([]LocationGridDay, 0, len(days))}

	for _, day := range days {
		key := DateKey(day)
		gridDay := LocationGridDay{
			Date:      key,
			Locations: make([]LocationCell, 0, len(locations)),
		}

		for _, loc := range locations {
			cell := LocationCell{
				LocationID: loc.ID,
				Slug:       loc.Slug,
				Label:      loc.ShortLabel,
				Members:    make([]LocationMember, 0),
			}

			for _, user := range users {
				entry, ok := index.Lookup(user.ID, key)
				if !ok || !entry.IsAvailable() || !entry.AtLocation(loc.ID) {
					continue
				}
				cell.Members = append(cell.Members, LocationMember{
					UserID: user.ID,
					Name:   user.DisplayName(),
					Note:   entry.Note,
				})
			}

			cell.ShowDanger = len(cell.Members) == 0 && loc.IsPhysical
			gridDay.Locations = append(gridDay.Locations, cell)
		}

		grid.Days = append(grid.Days, gridDay)
	}

	return grid
}

// BuildCoverageMatrix reduces the location grid to a count per physical
// location and day. Zero is a valid count; rendering it blank is the
// presentation layer's business.
func BuildCoverageMatrix(users []models.User, days []time.Time, index EntryIndex, locations []models.Location) CoverageMatrix {
	matrix := CoverageMatrix{
		Days: dateKeys(days),
		Rows: make([]CoverageRow, 0, len(locations)),
	}

	for _, loc := range locations {
		if !loc.IsPhysical {
			continue
		}

		row := CoverageRow{
			LocationID: loc.ID,
			Slug:       loc.Slug,
			Label:      loc.ShortLabel,
			Counts:     make([]int, 0, len(days)),
		}

		for _, day := range days {
			key := DateKey(day)
			count := 0
			for _, user := range users {
				entry, ok := index.Lookup(user.ID, key)
				if ok && entry.IsAvailable() && entry.AtLocation(loc.ID) {
					count++
				}
			}
			row.Counts = append(row.Counts, count)
		}

		matrix.Rows = append(matrix.Rows, row)
	}

	return matrix
}

// BuildServiceAvailability counts, per service and day, the members whose
// entry is available. Location is irrelevant here; this is availability, not
// presence.
func BuildServiceAvailability(serviceList []models.Service, days []time.Time, index EntryIndex) ServiceAvailabilityMatrix {
	matrix := ServiceAvailabilityMatrix{
		Days:     dateKeys(days),
		Services: make([]ServiceAvailabilityRow, 0, len(serviceList)),
	}

	for _, svc := range serviceList {
		row := ServiceAvailabilityRow{
			ServiceID: svc.ID,
			Name:      svc.Name,
			Cells:     make([]ServiceAvailabilityCell, 0, len(days)),
		}

		for _, day := range days {
			key := DateKey(day)
			cell := ServiceAvailabilityCell{Date: key}

			for _, member := range svc.Members {
				if entry, ok := index.Lookup(member.ID, key); ok && entry.IsAvailable() {
					cell.AvailableCount++
				}
			}

			if cell.AvailableCount == 0 {
				if entry, ok := index.Lookup(svc.ManagerID, key); ok && entry.IsAvailable() {
					cell.ManagerOnly = true
				}
			}

			row.Cells = append(row.Cells, cell)
		}

		matrix.Services = append(matrix.Services, row)
	}

	return matrix
}

// ReportService loads report inputs and hands them to the pure builders.
type ReportService struct {
	scope        *ScopeService
	serviceRepo  repository.ServiceRepository
	locationRepo repository.LocationRepository
	entryRepo    repository.EntryRepository
	now          func() time.Time
}

// NewReportService creates a new ReportService.
func NewReportService(
	scope *ScopeService,
	serviceRepo repository.ServiceRepository,
	locationRepo repository.LocationRepository,
	entryRepo repository.EntryRepository,
) *ReportService {
	return &ReportService{
		scope:        scope,
		serviceRepo:  serviceRepo,
		locationRepo: locationRepo,
		entryRepo:    entryRepo,
		now:          time.Now,
	}
}

// TeamGrid builds the person-by-day grid for the viewer's scope.
func (s *ReportService) TeamGrid(viewer *models.User, mode ScopeMode, teamFilter []uint64) (*TeamGrid, error) {
	users, days, index, locations, err := s.loadScopedInputs(viewer, mode, teamFilter)
	if err != nil {
		return nil, err
	}

	grid := BuildTeamGrid(users, days, index, locations)
	return &grid, nil
}

// LocationGrid builds the day-by-location grid for the viewer's scope.
func (s *ReportService) LocationGrid(viewer *models.User, mode ScopeMode, teamFilter []uint64) (*LocationGrid, error) {
	users, days, index, locations, err := s.loadScopedInputs(viewer, mode, teamFilter)
	if err != nil {
		return nil, err
	}

	grid := BuildLocationGrid(users, days, index, locations)
	return &grid, nil
}

// CoverageMatrix builds the physical-location headcount matrix for the
// viewer's scope.
func (s *ReportService) CoverageMatrix(viewer *models.User, mode ScopeMode, teamFilter []uint64) (*CoverageMatrix, error) {
	users, days, index, locations, err := s.loadScopedInputs(viewer, mode, teamFilter)
	if err != nil {
		return nil, err
	}

	matrix := BuildCoverageMatrix(users, days, index, locations)
	return &matrix, nil
}

// ServiceAvailability builds the service-by-day matrix. It always reports
// across all services, whatever the viewer's team scope.
func (s *ReportService) ServiceAvailability() (*ServiceAvailabilityMatrix, error) {
	days, err := ReportingWindow(s.now())
	if err != nil {
		return nil, err
	}

	serviceList, err := s.serviceRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}

	userIDs := serviceUserIDs(serviceList)
	entries, err := s.entryRepo.FindForUsers(userIDs, days[0], days[len(days)-1])
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	index := BuildEntryIndex(entries, userIDs, days[0], days[len(days)-1])
	matrix := BuildServiceAvailability(serviceList, days, index)
	return &matrix, nil
}

// loadScopedInputs resolves the scope and batch-loads everything the pure
// builders need: one entry query for the whole window.
func (s *ReportService) loadScopedInputs(viewer *models.User, mode ScopeMode, teamFilter []uint64) ([]models.User, []time.Time, EntryIndex, []models.Location, error) {
	users, err := s.scope.Resolve(viewer, mode, teamFilter)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	days, err := ReportingWindow(s.now())
	if err != nil {
		return nil, nil, nil, nil, err
	}

	userIDs := make([]uint64, 0, len(users))
	for _, u := range users {
		userIDs = append(userIDs, u.ID)
	}

	entries, err := s.entryRepo.FindForUsers(userIDs, days[0], days[len(days)-1])
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load entries: %w", err)
	}

	locations, err := s.locationRepo.ListAll()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load locations: %w", err)
	}

	index := BuildEntryIndex(entries, userIDs, days[0], days[len(days)-1])
	return users, days, index, locations, nil
}

// serviceUserIDs collects the member and manager IDs of every service,
// deduplicated, so one entry query covers the whole matrix.
func serviceUserIDs(serviceList []models.Service) []uint64 {
	seen := make(map[uint64]struct{})
	ids := make([]uint64, 0)

	for _, svc := range serviceList {
		for _, member := range svc.Members {
			if _, ok := seen[member.ID]; !ok {
				seen[member.ID] = struct{}{}
				ids = append(ids, member.ID)
			}
		}
		if _, ok := seen[svc.ManagerID]; !ok {
			seen[svc.ManagerID] = struct{}{}
			ids = append(ids, svc.ManagerID)
		}
	}

	return ids
}

func locationLabels(locations []models.Location) map[uint64]string {
	labels := make(map[uint64]string, len(locations))
	for _, loc := range locations {
		labels[loc.ID] = loc.ShortLabel
	}
	return labels
}

func dateKeys(days []time.Time) []string {
	keys := make([]string, 0, len(days))
	for _, day := range days {
		keys = append(keys, DateKey(day))
	}
	return keys
}

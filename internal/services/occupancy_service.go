package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/repository"
)

// Occupant is one person counted as present at a location.
type Occupant struct {
	UserID uint64 `json:"user_id"`
	Name   string `json:"name"`
}

// LocationOccupancy is one physical location's occupancy on one date,
// including the home/visitor lists for display.
type LocationOccupancy struct {
	LocationID     uint64     `json:"location_id"`
	Slug           string     `json:"slug"`
	Label          string     `json:"label"`
	Date           string     `json:"date"`
	HomeCount      int        `json:"home_count"`
	VisitorCount   int        `json:"visitor_count"`
	TotalPresent   int        `json:"total_present"`
	BaseCapacity   int        `json:"base_capacity"`
	UtilizationPct float64    `json:"utilization_pct"`
	Home           []Occupant `json:"home"`
	Visitors       []Occupant `json:"visitors"`
}

// OccupancySnapshot is the single-date occupancy view.
type OccupancySnapshot struct {
	Date      string              `json:"date"`
	Locations []LocationOccupancy `json:"locations"`
}

// OccupancyCell is one location/day cell of the period matrix.
type OccupancyCell struct {
	Date           string  `json:"date"`
	HomeCount      int     `json:"home_count"`
	VisitorCount   int     `json:"visitor_count"`
	TotalPresent   int     `json:"total_present"`
	UtilizationPct float64 `json:"utilization_pct"`
}

// LocationOccupancySeries is one physical location's occupancy across the
// window.
type LocationOccupancySeries struct {
	LocationID   uint64          `json:"location_id"`
	Slug         string          `json:"slug"`
	Label        string          `json:"label"`
	BaseCapacity int             `json:"base_capacity"`
	Cells        []OccupancyCell `json:"cells"`
}

// OccupancyMatrix is the location-by-day occupancy view.
type OccupancyMatrix struct {
	Days      []string                  `json:"days"`
	Locations []LocationOccupancySeries `json:"locations"`
}

// LocationOccupancyStats summarizes one location's daily totals over the
// window. PeakDate is the earliest date reaching the peak, or nil when every
// total is zero.
type LocationOccupancyStats struct {
	LocationID uint64  `json:"location_id"`
	Slug       string  `json:"slug"`
	Label      string  `json:"label"`
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	Peak       int     `json:"peak"`
	PeakDate   *string `json:"peak_date"`
}

// OccupancySummary is the statistical occupancy view.
type OccupancySummary struct {
	Days      []string                 `json:"days"`
	Locations []LocationOccupancyStats `json:"locations"`
}

// BaseCapacity counts, per physical location, the users whose default
// location it is. The count is system-wide, never scope-filtered.
func BaseCapacity(users []models.User, locations []models.Location) map[uint64]int {
	physical := make(map[uint64]bool, len(locations))
	for _, loc := range locations {
		physical[loc.ID] = loc.IsPhysical
	}

	capacity := make(map[uint64]int)
	for _, user := range users {
		if user.DefaultLocationID == nil {
			continue
		}
		if physical[*user.DefaultLocationID] {
			capacity[*user.DefaultLocationID]++
		}
	}
	return capacity
}

// BuildOccupancySnapshot computes home/visitor occupancy per physical
// location on a single date. Only onsite entries at a physical location count
// at all; remote and unavailable entries are invisible here even when they
// carry a location.
func BuildOccupancySnapshot(users []models.User, locations []models.Location, date time.Time, index EntryIndex) OccupancySnapshot {
	key := DateKey(models.DateOnly(date))
	capacity := BaseCapacity(users, locations)

	snapshot := OccupancySnapshot{
		Date:      key,
		Locations: make([]LocationOccupancy, 0, len(locations)),
	}

	for _, loc := range locations {
		if !loc.IsPhysical {
			continue
		}

		home, visitors := occupantsAt(users, loc.ID, key, index)
		occ := LocationOccupancy{
			LocationID:     loc.ID,
			Slug:           loc.Slug,
			Label:          loc.ShortLabel,
			Date:           key,
			HomeCount:      len(home),
			VisitorCount:   len(visitors),
			TotalPresent:   len(home) + len(visitors),
			BaseCapacity:   capacity[loc.ID],
			UtilizationPct: utilizationPct(len(home), capacity[loc.ID]),
			Home:           home,
			Visitors:       visitors,
		}

		snapshot.Locations = append(snapshot.Locations, occ)
	}

	return snapshot
}

// BuildOccupancyMatrix repeats the snapshot metrics across every window day.
func BuildOccupancyMatrix(users []models.User, locations []models.Location, days []time.Time, index EntryIndex) OccupancyMatrix {
	capacity := BaseCapacity(users, locations)

	matrix := OccupancyMatrix{
		Days:      dateKeys(days),
		Locations: make([]LocationOccupancySeries, 0, len(locations)),
	}

	for _, loc := range locations {
		if !loc.IsPhysical {
			continue
		}

		series := LocationOccupancySeries{
			LocationID:   loc.ID,
			Slug:         loc.Slug,
			Label:        loc.ShortLabel,
			BaseCapacity: capacity[loc.ID],
			Cells:        make([]OccupancyCell, 0, len(days)),
		}

		for _, day := range days {
			key := DateKey(day)
			home, visitors := occupantsAt(users, loc.ID, key, index)
			series.Cells = append(series.Cells, OccupancyCell{
				Date:           key,
				HomeCount:      len(home),
				VisitorCount:   len(visitors),
				TotalPresent:   len(home) + len(visitors),
				UtilizationPct: utilizationPct(len(home), capacity[loc.ID]),
			})
		}

		matrix.Locations = append(matrix.Locations, series)
	}

	return matrix
}

// BuildOccupancySummary computes mean, median and peak of the daily totals
// per physical location across the window. Ties for the peak resolve to the
// earliest date.
func BuildOccupancySummary(users []models.User, locations []models.Location, days []time.Time, index EntryIndex) OccupancySummary {
	matrix := BuildOccupancyMatrix(users, locations, days, index)

	summary := OccupancySummary{
		Days:      matrix.Days,
		Locations: make([]LocationOccupancyStats, 0, len(matrix.Locations)),
	}

	for _, series := range matrix.Locations {
		totals := make([]int, 0, len(series.Cells))
		for _, cell := range series.Cells {
			totals = append(totals, cell.TotalPresent)
		}

		stats := LocationOccupancyStats{
			LocationID: series.LocationID,
			Slug:       series.Slug,
			Label:      series.Label,
			Mean:       meanOf(totals),
			Median:     MedianOf(totals),
		}

		for i, total := range totals {
			if total > stats.Peak {
				stats.Peak = total
				date := series.Cells[i].Date
				stats.PeakDate = &date
			}
		}

		summary.Locations = append(summary.Locations, stats)
	}

	return summary
}

// MedianOf returns the median of the values, rounded half-up to one decimal.
// An empty list degrades to 0; an even count averages the two middle values.
func MedianOf(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return roundHalfUp1(float64(sorted[mid-1]+sorted[mid]) / 2)
}

func meanOf(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return roundHalfUp1(float64(sum) / float64(len(values)))
}

// utilizationPct is home count over base capacity as a percentage, one
// decimal, half-up. Zero capacity reports 0, never a division error.
func utilizationPct(homeCount, capacity int) float64 {
	if capacity == 0 {
		return 0
	}
	return roundHalfUp1(float64(homeCount) / float64(capacity) * 100)
}

func roundHalfUp1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// occupantsAt splits the users present onsite at a location on a day into
// home occupants (the location is their default) and visitors.
func occupantsAt(users []models.User, locationID uint64, dateKey string, index EntryIndex) (home, visitors []Occupant) {
	home = make([]Occupant, 0)
	visitors = make([]Occupant, 0)

	for _, user := range users {
		entry, ok := index.Lookup(user.ID, dateKey)
		if !ok || entry.AvailabilityStatus != models.AvailabilityOnsite || !entry.AtLocation(locationID) {
			continue
		}

		occupant := Occupant{UserID: user.ID, Name: user.DisplayName()}
		if user.DefaultLocationID != nil && *user.DefaultLocationID == locationID {
			home = append(home, occupant)
		} else {
			visitors = append(visitors, occupant)
		}
	}

	return home, visitors
}

// OccupancyService loads system-wide occupancy inputs and hands them to the
// pure builders.
type OccupancyService struct {
	userRepo     repository.UserRepository
	locationRepo repository.LocationRepository
	entryRepo    repository.EntryRepository
	now          func() time.Time
}

// NewOccupancyService creates a new OccupancyService.
func NewOccupancyService(
	userRepo repository.UserRepository,
	locationRepo repository.LocationRepository,
	entryRepo repository.EntryRepository,
) *OccupancyService {
	return &OccupancyService{
		userRepo:     userRepo,
		locationRepo: locationRepo,
		entryRepo:    entryRepo,
		now:          time.Now,
	}
}

// Snapshot computes the occupancy snapshot for the given date, defaulting to
// the next working day.
func (s *OccupancyService) Snapshot(date *time.Time) (*OccupancySnapshot, error) {
	day := NextWorkingDay(s.now())
	if date != nil {
		day = models.DateOnly(*date)
	}

	users, locations, err := s.loadUniverse()
	if err != nil {
		return nil, err
	}

	userIDs := userIDsOf(users)
	entries, err := s.entryRepo.FindForUsers(userIDs, day, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	index := BuildEntryIndex(entries, userIDs, day, day)
	snapshot := BuildOccupancySnapshot(users, locations, day, index)
	return &snapshot, nil
}

// Matrix computes the occupancy matrix across the reporting window.
func (s *OccupancyService) Matrix() (*OccupancyMatrix, error) {
	users, locations, days, index, err := s.loadWindow()
	if err != nil {
		return nil, err
	}

	matrix := BuildOccupancyMatrix(users, locations, days, index)
	return &matrix, nil
}

// Summary computes the occupancy summary statistics across the reporting
// window.
func (s *OccupancyService) Summary() (*OccupancySummary, error) {
	users, locations, days, index, err := s.loadWindow()
	if err != nil {
		return nil, err
	}

	summary := BuildOccupancySummary(users, locations, days, index)
	return &summary, nil
}

func (s *OccupancyService) loadUniverse() ([]models.User, []models.Location, error) {
	users, err := s.userRepo.ListAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load users: %w", err)
	}

	locations, err := s.locationRepo.ListAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load locations: %w", err)
	}

	return users, locations, nil
}

func (s *OccupancyService) loadWindow() ([]models.User, []models.Location, []time.Time, EntryIndex, error) {
	days, err := ReportingWindow(s.now())
	if err != nil {
		return nil, nil, nil, nil, err
	}

	users, locations, err := s.loadUniverse()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	userIDs := userIDsOf(users)
	entries, err := s.entryRepo.FindForUsers(userIDs, days[0], days[len(days)-1])
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load entries: %w", err)
	}

	index := BuildEntryIndex(entries, userIDs, days[0], days[len(days)-1])
	return users, locations, days, index, nil
}

func userIDsOf(users []models.User) []uint64 {
	ids := make([]uint64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

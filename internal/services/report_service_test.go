package services

import (
	"testing"
	"time"

	"github.com/officekit/office-planning-api/internal/models"
	"github.com/stretchr/testify/require"
)

func locID(id uint64) *uint64 {
	return &id
}

func testLocations() []models.Location {
	return []models.Location{
		{ID: 1, Name: "Headquarters", ShortLabel: "HQ", Slug: "hq", IsPhysical: true},
		{ID: 2, Name: "North Annex", ShortLabel: "Annex", Slug: "annex", IsPhysical: true},
		{ID: 3, Name: "Working From Home", ShortLabel: "WFH", Slug: "wfh", IsPhysical: false},
	}
}

func TestBuildTeamGrid_CellStates(t *testing.T) {
	users := []models.User{
		{ID: 1, Surname: "Archer", Forenames: "Amy"},
	}
	days := []time.Time{
		date(2025, time.June, 9),
		date(2025, time.June, 10),
		date(2025, time.June, 11),
	}
	entries := []models.PlanEntry{
		// June 9: no entry at all
		// June 10: entry with no location
		{UserID: 1, EntryDate: date(2025, time.June, 10), AvailabilityStatus: models.AvailabilityNotAvailable, IsHoliday: true},
		// June 11: entry with a location and a note
		{UserID: 1, EntryDate: date(2025, time.June, 11), LocationID: locID(1), Note: "front desk", AvailabilityStatus: models.AvailabilityOnsite},
	}
	index := BuildEntryIndex(entries, []uint64{1}, days[0], days[len(days)-1])

	grid := BuildTeamGrid(users, days, index, testLocations())

	require.Equal(t, []string{"2025-06-09", "2025-06-10", "2025-06-11"}, grid.Days)
	require.Len(t, grid.Rows, 1)
	require.Equal(t, "Archer, Amy", grid.Rows[0].Name)

	cells := grid.Rows[0].Cells
	require.Len(t, cells, 3)

	require.Equal(t, CellMissing, cells[0].State)
	require.Empty(t, cells[0].Location)

	require.Equal(t, CellAway, cells[1].State)
	require.True(t, cells[1].IsHoliday)

	require.Equal(t, CellPlanned, cells[2].State)
	require.Equal(t, "HQ", cells[2].Location)
	require.Equal(t, "front desk", cells[2].Note)
}

func TestBuildTeamGrid_DefaultNoteForBlankPlannedCell(t *testing.T) {
	users := []models.User{{ID: 1, Surname: "Archer", Forenames: "Amy"}}
	days := []time.Time{date(2025, time.June, 9)}
	entries := []models.PlanEntry{
		{UserID: 1, EntryDate: days[0], LocationID: locID(1), AvailabilityStatus: models.AvailabilityOnsite},
	}
	index := BuildEntryIndex(entries, []uint64{1}, days[0], days[0])

	grid := BuildTeamGrid(users, days, index, testLocations())

	require.Equal(t, DefaultNote, grid.Rows[0].Cells[0].Note)
}

func TestBuildLocationGrid_UnavailableNeverPresent(t *testing.T) {
	users := []models.User{
		{ID: 1, Surname: "Archer", Forenames: "Amy"},
		{ID: 2, Surname: "Boone", Forenames: "Ben"},
	}
	days := []time.Time{date(2025, time.June, 9)}
	entries := []models.PlanEntry{
		{UserID: 1, EntryDate: days[0], LocationID: locID(1), AvailabilityStatus: models.AvailabilityOnsite},
		// Location set but marked unavailable: must not appear anywhere.
		{UserID: 2, EntryDate: days[0], LocationID: locID(1), AvailabilityStatus: models.AvailabilityNotAvailable},
	}
	index := BuildEntryIndex(entries, []uint64{1, 2}, days[0], days[0])

	grid := BuildLocationGrid(users, days, index, testLocations())

	require.Len(t, grid.Days, 1)
	hq := grid.Days[0].Locations[0]
	require.Equal(t, "hq", hq.Slug)
	require.Len(t, hq.Members, 1)
	require.Equal(t, uint64(1), hq.Members[0].UserID)
}

func TestBuildLocationGrid_ShowDangerOnlyForEmptyPhysicalLocations(t *testing.T) {
	users := []models.User{{ID: 1, Surname: "Archer", Forenames: "Amy"}}
	days := []time.Time{date(2025, time.June, 9)}
	entries := []models.PlanEntry{
		{UserID: 1, EntryDate: days[0], LocationID: locID(1), AvailabilityStatus: models.AvailabilityOnsite},
	}
	index := BuildEntryIndex(entries, []uint64{1}, days[0], days[0])

	grid := BuildLocationGrid(users, days, index, testLocations())

	byslug := make(map[string]LocationCell)
	for _, cell := range grid.Days[0].Locations {
		byslug[cell.Slug] = cell
	}

	require.False(t, byslug["hq"].ShowDanger, "occupied physical location")
	require.True(t, byslug["annex"].ShowDanger, "empty physical location")
	require.False(t, byslug["wfh"].ShowDanger, "empty virtual location never warns")
}

func TestBuildCoverageMatrix_PhysicalLocationsOnly(t *testing.T) {
	users := []models.User{
		{ID: 1, Surname: "Archer", Forenames: "Amy"},
		{ID: 2, Surname: "Boone", Forenames: "Ben"},
	}
	days := []time.Time{
		date(2025, time.June, 9),
		date(2025, time.June, 10),
	}
	entries := []models.PlanEntry{
		{UserID: 1, EntryDate: days[0], LocationID: locID(1), AvailabilityStatus: models.AvailabilityOnsite},
		{UserID: 2, EntryDate: days[0], LocationID: locID(1), AvailabilityStatus: models.AvailabilityOnsite},
		{UserID: 1, EntryDate: days[1], LocationID: locID(3), AvailabilityStatus: models.AvailabilityRemote},
	}
	index := BuildEntryIndex(entries, []uint64{1, 2}, days[0], days[1])

	matrix := BuildCoverageMatrix(users, days, index, testLocations())

	require.Len(t, matrix.Rows, 2, "virtual locations have no coverage row")
	require.Equal(t, "hq", matrix.Rows[0].Slug)
	require.Equal(t, []int{2, 0}, matrix.Rows[0].Counts)
	require.Equal(t, "annex", matrix.Rows[1].Slug)
	require.Equal(t, []int{0, 0}, matrix.Rows[1].Counts)
}

func TestBuildServiceAvailability_CountsAndManagerOnly(t *testing.T) {
	days := []time.Time{
		date(2025, time.June, 9),
		date(2025, time.June, 10),
		date(2025, time.June, 11),
	}
	serviceList := []models.Service{
		{
			ID:        1,
			Name:      "Enquiries",
			ManagerID: 9,
			Members: []models.User{
				{ID: 1, Surname: "Archer", Forenames: "Amy"},
				{ID: 2, Surname: "Boone", Forenames: "Ben"},
			},
		},
	}
	entries := []models.PlanEntry{
		// June 9: both members available
		{UserID: 1, EntryDate: days[0], AvailabilityStatus: models.AvailabilityOnsite},
		{UserID: 2, EntryDate: days[0], AvailabilityStatus: models.AvailabilityRemote},
		// June 10: no member available, but the manager is
		{UserID: 1, EntryDate: days[1], AvailabilityStatus: models.AvailabilityNotAvailable},
		{UserID: 9, EntryDate: days[1], AvailabilityStatus: models.AvailabilityOnsite},
		// June 11: nobody at all
	}
	index := BuildEntryIndex(entries, nil, days[0], days[len(days)-1])

	matrix := BuildServiceAvailability(serviceList, days, index)

	require.Len(t, matrix.Services, 1)
	cells := matrix.Services[0].Cells
	require.Len(t, cells, 3)

	require.Equal(t, 2, cells[0].AvailableCount)
	require.False(t, cells[0].ManagerOnly)

	// The manager never raises the count, only the flag.
	require.Equal(t, 0, cells[1].AvailableCount)
	require.True(t, cells[1].ManagerOnly)

	require.Equal(t, 0, cells[2].AvailableCount)
	require.False(t, cells[2].ManagerOnly)
}

package services

import (
	"testing"
	"time"

	"github.com/officekit/office-planning-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestBuildEntryIndex_FiltersUsersAndRange(t *testing.T) {
	from := date(2025, time.June, 9)
	to := date(2025, time.June, 13)

	entries := []models.PlanEntry{
		{UserID: 1, EntryDate: date(2025, time.June, 9), Note: "in range"},
		{UserID: 1, EntryDate: date(2025, time.June, 16), Note: "after range"},
		{UserID: 1, EntryDate: date(2025, time.June, 6), Note: "before range"},
		{UserID: 2, EntryDate: date(2025, time.June, 10), Note: "other user"},
		{UserID: 3, EntryDate: date(2025, time.June, 10), Note: "not in set"},
	}

	index := BuildEntryIndex(entries, []uint64{1, 2}, from, to)

	_, ok := index.Lookup(1, "2025-06-09")
	require.True(t, ok)
	_, ok = index.Lookup(1, "2025-06-16")
	require.False(t, ok)
	_, ok = index.Lookup(1, "2025-06-06")
	require.False(t, ok)
	_, ok = index.Lookup(2, "2025-06-10")
	require.True(t, ok)
	_, ok = index.Lookup(3, "2025-06-10")
	require.False(t, ok)
}

func TestBuildEntryIndex_EmptyUserSetMeansNoRestriction(t *testing.T) {
	entries := []models.PlanEntry{
		{UserID: 7, EntryDate: date(2025, time.June, 10)},
	}

	index := BuildEntryIndex(entries, nil, date(2025, time.June, 9), date(2025, time.June, 13))

	_, ok := index.Lookup(7, "2025-06-10")
	require.True(t, ok)
}

func TestBuildEntryIndex_DuplicateLastWins(t *testing.T) {
	entries := []models.PlanEntry{
		{ID: 1, UserID: 1, EntryDate: date(2025, time.June, 10), Note: "first"},
		{ID: 2, UserID: 1, EntryDate: date(2025, time.June, 10), Note: "second"},
	}

	index := BuildEntryIndex(entries, []uint64{1}, date(2025, time.June, 9), date(2025, time.June, 13))

	entry, ok := index.Lookup(1, "2025-06-10")
	require.True(t, ok)
	require.Equal(t, uint64(2), entry.ID)
	require.Equal(t, "second", entry.Note)
}

func TestBuildEntryIndex_NormalizesEntryTimestamps(t *testing.T) {
	// A row whose entry_date carries a time component still lands on the
	// midnight date key.
	entries := []models.PlanEntry{
		{UserID: 1, EntryDate: time.Date(2025, time.June, 10, 14, 30, 0, 0, time.UTC)},
	}

	index := BuildEntryIndex(entries, []uint64{1}, date(2025, time.June, 9), date(2025, time.June, 13))

	_, ok := index.Lookup(1, "2025-06-10")
	require.True(t, ok)
}

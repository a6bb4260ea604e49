package services

import (
	"log"
	"time"

	"github.com/officekit/office-planning-api/internal/models"
)

// EntryIndex is a two-level lookup of plan entries: user ID, then date key.
type EntryIndex map[uint64]map[string]models.PlanEntry

// BuildEntryIndex builds an EntryIndex from a flat entry list. Entries for
// users outside the restricting set, or dated outside [from, to], are
// dropped. A nil or empty user set means no restriction. Duplicate
// (user, date) rows should not exist; when one appears the last row wins and
// an integrity warning is logged.
func BuildEntryIndex(entries []models.PlanEntry, userIDs []uint64, from, to time.Time) EntryIndex {
	var allowed map[uint64]struct{}
	if len(userIDs) > 0 {
		allowed = make(map[uint64]struct{}, len(userIDs))
		for _, id := range userIDs {
			allowed[id] = struct{}{}
		}
	}

	fromDay := models.DateOnly(from)
	toDay := models.DateOnly(to)

	index := make(EntryIndex)
	for _, entry := range entries {
		if allowed != nil {
			if _, ok := allowed[entry.UserID]; !ok {
				continue
			}
		}

		day := models.DateOnly(entry.EntryDate)
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}

		key := DateKey(day)
		byDate, ok := index[entry.UserID]
		if !ok {
			byDate = make(map[string]models.PlanEntry)
			index[entry.UserID] = byDate
		}

		if _, exists := byDate[key]; exists {
			log.Printf("integrity warning: duplicate plan entry for user %d on %s, keeping the later row", entry.UserID, key)
		}
		byDate[key] = entry
	}

	return index
}

// Lookup returns the entry for a (user, date key) pair.
func (idx EntryIndex) Lookup(userID uint64, dateKey string) (models.PlanEntry, bool) {
	byDate, ok := idx[userID]
	if !ok {
		return models.PlanEntry{}, false
	}
	entry, ok := byDate[dateKey]
	return entry, ok
}

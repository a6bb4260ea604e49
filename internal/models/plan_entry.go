package models

import (
	"time"
)

type AvailabilityStatus int

const (
	AvailabilityNotAvailable AvailabilityStatus = 0
	AvailabilityRemote       AvailabilityStatus = 1
	AvailabilityOnsite       AvailabilityStatus = 2
)

// IsAvailable reports whether the status counts as available at all
// (remote or onsite).
func (s AvailabilityStatus) IsAvailable() bool {
	return s > AvailabilityNotAvailable
}

type EntryCategory string

const (
	CategorySupport EntryCategory = "support"
	CategoryProject EntryCategory = "project"
	CategoryAdmin   EntryCategory = "admin"
	CategoryLeave   EntryCategory = "leave"
)

// ValidEntryCategory reports whether c is one of the known categories.
// The empty category is allowed and means "unset".
func ValidEntryCategory(c EntryCategory) bool {
	switch c {
	case "", CategorySupport, CategoryProject, CategoryAdmin, CategoryLeave:
		return true
	}
	return false
}

// PlanEntry records one user's plan for one calendar date. At most one entry
// exists per (user, date); all write paths upsert by that composite key.
// A nil LocationID means "away" and is distinct from being unavailable.
type PlanEntry struct {
	ID                 uint64             `gorm:"primarykey" json:"id"`
	UserID             uint64             `gorm:"not null;index" json:"user_id"`
	EntryDate          time.Time          `gorm:"type:date;not null;index" json:"entry_date"`
	LocationID         *uint64            `json:"location_id"`
	Note               string             `gorm:"type:text" json:"note"`
	AvailabilityStatus AvailabilityStatus `gorm:"not null;default:0" json:"availability_status"`
	IsHoliday          bool               `gorm:"not null;default:false" json:"is_holiday"`
	Category           EntryCategory      `gorm:"type:varchar(20)" json:"category"`
	CreatedByManager   bool               `gorm:"not null;default:false" json:"created_by_manager"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	// Relations
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

// DateOnly normalizes a timestamp to midnight UTC. Every entry_date written
// or queried goes through this so (user, date) comparisons are exact.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsAvailable reports whether the entry's status counts as available.
func (e PlanEntry) IsAvailable() bool {
	return e.AvailabilityStatus.IsAvailable()
}

// AtLocation reports whether the entry records presence at the given location.
func (e PlanEntry) AtLocation(locationID uint64) bool {
	return e.LocationID != nil && *e.LocationID == locationID
}

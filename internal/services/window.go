package services

import (
	"errors"
	"time"

	"github.com/officekit/office-planning-api/internal/constants"
	"github.com/officekit/office-planning-api/internal/models"
)

// ErrWindowTooShort indicates the scan range produced fewer weekdays than the
// window requires. Under a seven-day week this cannot happen; hitting it is a
// programming error, not a runtime condition.
var ErrWindowTooShort = errors.New("reporting window scan produced fewer weekdays than required")

// ReportingWindow returns the fixed reporting window for the given instant:
// exactly ten weekdays collected by scanning forward from the Monday of the
// current week. The result is always this week's five weekdays followed by
// next week's, even when now falls on a weekend.
func ReportingWindow(now time.Time) ([]time.Time, error) {
	monday := startOfWeek(now)

	days := make([]time.Time, 0, constants.ReportingWindowDays)
	for offset := 0; offset < constants.WindowScanDays; offset++ {
		day := monday.AddDate(0, 0, offset)
		if isWeekend(day) {
			continue
		}
		days = append(days, day)
		if len(days) == constants.ReportingWindowDays {
			break
		}
	}

	if len(days) < constants.ReportingWindowDays {
		return nil, ErrWindowTooShort
	}

	return days, nil
}

// NextWorkingDay returns today, or the following Monday when now falls on a
// weekend. It is the default date for the occupancy snapshot.
func NextWorkingDay(now time.Time) time.Time {
	day := models.DateOnly(now)
	switch day.Weekday() {
	case time.Saturday:
		return day.AddDate(0, 0, 2)
	case time.Sunday:
		return day.AddDate(0, 0, 1)
	default:
		return day
	}
}

// DateKey renders a date in the canonical key format used throughout the
// report payloads.
func DateKey(t time.Time) string {
	return t.Format(constants.DateKeyFormat)
}

// startOfWeek returns the Monday of now's week, normalized to a date.
func startOfWeek(now time.Time) time.Time {
	day := models.DateOnly(now)
	delta := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -delta)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

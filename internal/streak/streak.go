// Package streak computes consecutive-day runs and completion rates over
// tracking records. All functions are pure; callers fetch records from
// storage and pass them in.
package streak

import (
	"time"

	"github.com/julianstephens/habitbot/internal/models"
)

// Current returns the length of the consecutive run of "completed" days
// ending at the given day and walking backward. A missed record, a gap
// with no record, or running out of records terminates the scan. A miss on
// the reference day itself yields 0: there is no partial credit and no
// looking past gaps.
//
// records must be ordered most recent date first, at most one per day,
// which is what storage.Provider.GetTracking returns.
func Current(records []models.TrackingRecord, today time.Time) int {
	streak := 0
	expected := today

	for _, r := range records {
		if r.Date != models.Day(expected) || r.Status != models.StatusCompleted {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}

	return streak
}

// CompletionPercent returns the completed share of all recorded days as a
// percentage. ok is false when there are no records at all; callers report
// "no data" instead of a zero rate.
func CompletionPercent(stats models.HabitStats) (float64, bool) {
	total := stats.Completed + stats.Missed
	if total == 0 {
		return 0, false
	}
	return float64(stats.Completed) / float64(total) * 100, true
}

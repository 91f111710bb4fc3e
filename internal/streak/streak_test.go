package streak

import (
	"testing"
	"time"

	"github.com/julianstephens/habitbot/internal/models"
)

var testToday = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// record builds a tracking record N days before the test reference day.
func record(daysAgo int, status models.TrackStatus) models.TrackingRecord {
	return models.TrackingRecord{
		HabitID: 1,
		Date:    models.Day(testToday.AddDate(0, 0, -daysAgo)),
		Status:  status,
	}
}

func TestCurrent(t *testing.T) {
	t.Run("no records", func(t *testing.T) {
		if got := Current(nil, testToday); got != 0 {
			t.Errorf("Current() = %d, want 0", got)
		}
	})

	t.Run("completed today only", func(t *testing.T) {
		records := []models.TrackingRecord{record(0, models.StatusCompleted)}
		if got := Current(records, testToday); got != 1 {
			t.Errorf("Current() = %d, want 1", got)
		}
	})

	t.Run("unbroken run counts today plus prior days", func(t *testing.T) {
		records := []models.TrackingRecord{
			record(0, models.StatusCompleted),
			record(1, models.StatusCompleted),
			record(2, models.StatusCompleted),
			record(3, models.StatusCompleted),
		}
		if got := Current(records, testToday); got != 4 {
			t.Errorf("Current() = %d, want 4", got)
		}
	})

	t.Run("missed today yields zero even with history", func(t *testing.T) {
		records := []models.TrackingRecord{
			record(0, models.StatusMissed),
			record(1, models.StatusCompleted),
			record(2, models.StatusCompleted),
		}
		if got := Current(records, testToday); got != 0 {
			t.Errorf("Current() = %d, want 0", got)
		}
	})

	t.Run("gap terminates the scan", func(t *testing.T) {
		// Day 2 has no record; days 3-4 must not count.
		records := []models.TrackingRecord{
			record(0, models.StatusCompleted),
			record(1, models.StatusCompleted),
			record(3, models.StatusCompleted),
			record(4, models.StatusCompleted),
		}
		if got := Current(records, testToday); got != 2 {
			t.Errorf("Current() = %d, want 2", got)
		}
	})

	t.Run("miss mid-run caps the streak before it", func(t *testing.T) {
		records := []models.TrackingRecord{
			record(0, models.StatusCompleted),
			record(1, models.StatusCompleted),
			record(2, models.StatusMissed),
			record(3, models.StatusCompleted),
		}
		if got := Current(records, testToday); got != 2 {
			t.Errorf("Current() = %d, want 2", got)
		}
	})

	t.Run("no record today means zero", func(t *testing.T) {
		records := []models.TrackingRecord{
			record(1, models.StatusCompleted),
			record(2, models.StatusCompleted),
		}
		if got := Current(records, testToday); got != 0 {
			t.Errorf("Current() = %d, want 0", got)
		}
	})
}

func TestCompletionPercent(t *testing.T) {
	t.Run("no data", func(t *testing.T) {
		_, ok := CompletionPercent(models.HabitStats{})
		if ok {
			t.Error("CompletionPercent() ok = true, want false for zero counts")
		}
	})

	t.Run("mixed record", func(t *testing.T) {
		got, ok := CompletionPercent(models.HabitStats{Completed: 2, Missed: 1})
		if !ok {
			t.Fatal("CompletionPercent() ok = false, want true")
		}
		if got < 66.6 || got > 66.7 {
			t.Errorf("CompletionPercent() = %.2f, want ~66.67", got)
		}
	})

	t.Run("all completed", func(t *testing.T) {
		got, ok := CompletionPercent(models.HabitStats{Completed: 5})
		if !ok || got != 100 {
			t.Errorf("CompletionPercent() = %.1f, %v; want 100, true", got, ok)
		}
	})
}

package models

import (
	"time"

	"github.com/julianstephens/habitbot/internal/constants"
)

// TrackStatus is the recorded outcome for a habit on a given day.
type TrackStatus string

const (
	StatusCompleted TrackStatus = "completed"
	StatusMissed    TrackStatus = "missed"

	// StatusNone means no record exists for the day in question.
	StatusNone TrackStatus = ""
)

// User is a chat-platform account known to the bot. Created on first
// contact, refreshed on every subsequent one; never deleted.
type User struct {
	ID             int64
	Username       string
	FirstName      string
	LastName       string
	RegisteredDate string // YYYY-MM-DD, set once
	IsAdmin        bool
}

// Habit is a recurring practice owned by a single user. The active flag is
// a soft-delete marker: inactive habits are excluded from listings but keep
// their tracking history.
type Habit struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	CreatedDate string // YYYY-MM-DD
	IsActive    bool
}

// TrackingRecord is one day's outcome for a habit. At most one record
// exists per (habit, day) pair.
type TrackingRecord struct {
	ID      int64
	HabitID int64
	Date    string // YYYY-MM-DD
	Status  TrackStatus
}

// HabitStats are per-habit aggregate counts over all tracking records.
type HabitStats struct {
	Completed int
	Missed    int
	FirstDate string
	LastDate  string
}

// HasData reports whether any tracking record exists for the habit.
func (s HabitStats) HasData() bool {
	return s.Completed > 0 || s.Missed > 0
}

// GlobalStats are bot-wide counts shown on the admin panel.
type GlobalStats struct {
	TotalUsers       int
	ActiveHabits     int
	CompletedToday   int
	ActiveUsersToday int
}

// Day formats a time as a calendar-date key.
func Day(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Today returns the current calendar-date key.
func Today() string {
	return Day(time.Now())
}

package storage

import (
	"errors"
	"net/url"
	"strings"

	"github.com/julianstephens/habitbot/internal/models"
)

// ErrNotFound is returned by point lookups when no row matches. Callers
// surface it as a transient "not found" notice rather than a failure.
var ErrNotFound = errors.New("not found")

// Provider is the persistence contract shared by the SQLite and Postgres
// stores. All writes are atomic per call; a failed write leaves prior state
// unchanged and is reported as an error, never a panic.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Users
	UpsertUser(user models.User) error
	GetUser(id int64) (models.User, error)
	// GetAllUsers returns every known user, most recently registered first.
	GetAllUsers() ([]models.User, error)

	// Habits
	AddHabit(userID int64, name, description string) (int64, error)
	GetHabit(id int64) (models.Habit, error)
	// GetUserHabits returns the user's active habits, most recently
	// created first. Deactivated habits are excluded.
	GetUserHabits(userID int64) ([]models.Habit, error)
	DeactivateHabit(id int64) error

	// Tracking
	// TrackHabit records today's status for a habit. A second mark on the
	// same day overwrites the first; fresh reports whether this call
	// inserted a new record rather than updating an existing one.
	TrackHabit(habitID int64, status models.TrackStatus) (fresh bool, err error)
	// GetTodayStatus returns models.StatusNone when no record exists today.
	GetTodayStatus(habitID int64) (models.TrackStatus, error)
	// GetTracking returns all records for a habit, most recent date first.
	GetTracking(habitID int64) ([]models.TrackingRecord, error)
	GetHabitStats(habitID int64) (models.HabitStats, error)
	GetGlobalStats() (models.GlobalStats, error)

	// Utils
	GetConfigPath() string
}

// HasEmbeddedCredentials reports whether a Postgres connection string
// carries an inline password. Those are rejected at startup; the supported
// paths are environment variables, .pgpass, or the OS keyring.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err == nil && u.User != nil {
		if _, set := u.User.Password(); set {
			return true
		}
	}
	// DSN form: space-separated key=value pairs.
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "password") {
			return true
		}
	}
	return false
}

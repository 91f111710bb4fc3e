package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitbot/internal/models"
)

// TrackHabit records today's status for a habit. The record's date is
// always the current date at write time. Runs in a transaction so the
// exists-check and the write are atomic; fresh reports whether a new row
// was inserted rather than an existing same-day row overwritten.
func (s *Store) TrackHabit(habitID int64, status models.TrackStatus) (bool, error) {
	today := models.Today()

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	var existing string
	err = tx.QueryRow(`
		SELECT status FROM habit_tracking WHERE habit_id = ? AND track_date = ?`,
		habitID, today).Scan(&existing)

	fresh := false
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.Exec(`
			INSERT INTO habit_tracking (habit_id, track_date, status)
			VALUES (?, ?, ?)`, habitID, today, string(status)); err != nil {
			_ = tx.Rollback()
			return false, fmt.Errorf("failed to insert tracking record: %w", err)
		}
		fresh = true
	case err != nil:
		_ = tx.Rollback()
		return false, fmt.Errorf("failed to check tracking record: %w", err)
	default:
		if _, err := tx.Exec(`
			UPDATE habit_tracking SET status = ? WHERE habit_id = ? AND track_date = ?`,
			string(status), habitID, today); err != nil {
			_ = tx.Rollback()
			return false, fmt.Errorf("failed to update tracking record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit tracking record: %w", err)
	}
	return fresh, nil
}

// GetTodayStatus returns models.StatusNone when the habit has no record
// for the current date.
func (s *Store) GetTodayStatus(habitID int64) (models.TrackStatus, error) {
	var status string
	err := s.db.QueryRow(`
		SELECT status FROM habit_tracking WHERE habit_id = ? AND track_date = ?`,
		habitID, models.Today()).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StatusNone, nil
	}
	if err != nil {
		return models.StatusNone, fmt.Errorf("failed to get today's status for habit %d: %w", habitID, err)
	}
	return models.TrackStatus(status), nil
}

func (s *Store) GetTracking(habitID int64) ([]models.TrackingRecord, error) {
	rows, err := s.db.Query(`
		SELECT tracking_id, habit_id, track_date, status
		FROM habit_tracking
		WHERE habit_id = ?
		ORDER BY track_date DESC`, habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracking for habit %d: %w", habitID, err)
	}
	defer rows.Close()

	var records []models.TrackingRecord
	for rows.Next() {
		var r models.TrackingRecord
		var status string
		if err := rows.Scan(&r.ID, &r.HabitID, &r.Date, &status); err != nil {
			return nil, err
		}
		r.Status = models.TrackStatus(status)
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) GetHabitStats(habitID int64) (models.HabitStats, error) {
	row := s.db.QueryRow(`
		SELECT
			COUNT(CASE WHEN status = 'completed' THEN 1 END),
			COUNT(CASE WHEN status = 'missed' THEN 1 END),
			COALESCE(MIN(track_date), ''),
			COALESCE(MAX(track_date), '')
		FROM habit_tracking
		WHERE habit_id = ?`, habitID)

	var st models.HabitStats
	if err := row.Scan(&st.Completed, &st.Missed, &st.FirstDate, &st.LastDate); err != nil {
		return models.HabitStats{}, fmt.Errorf("failed to get stats for habit %d: %w", habitID, err)
	}
	return st, nil
}

func (s *Store) GetGlobalStats() (models.GlobalStats, error) {
	today := models.Today()

	var st models.GlobalStats
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&st.TotalUsers); err != nil {
		return models.GlobalStats{}, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM habits WHERE is_active = 1`).Scan(&st.ActiveHabits); err != nil {
		return models.GlobalStats{}, fmt.Errorf("failed to count habits: %w", err)
	}
	if err := s.db.QueryRow(`
		SELECT COUNT(*) FROM habit_tracking
		WHERE track_date = ? AND status = 'completed'`, today).Scan(&st.CompletedToday); err != nil {
		return models.GlobalStats{}, fmt.Errorf("failed to count today's completions: %w", err)
	}
	if err := s.db.QueryRow(`
		SELECT COUNT(DISTINCT h.user_id)
		FROM habit_tracking t
		JOIN habits h ON t.habit_id = h.habit_id
		WHERE t.track_date = ?`, today).Scan(&st.ActiveUsersToday); err != nil {
		return models.GlobalStats{}, fmt.Errorf("failed to count active users: %w", err)
	}
	return st, nil
}

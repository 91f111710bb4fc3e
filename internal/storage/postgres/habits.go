package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitbot/internal/models"
	"github.com/julianstephens/habitbot/internal/storage"
)

func (s *Store) AddHabit(userID int64, name, description string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
		INSERT INTO habits (user_id, name, description, created_date, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING habit_id`,
		userID, name, description, models.Today()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert habit: %w", err)
	}
	return id, nil
}

func (s *Store) GetHabit(id int64) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT habit_id, user_id, name, description, created_date, is_active
		FROM habits WHERE habit_id = $1`, id)

	var h models.Habit
	err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &h.CreatedDate, &h.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to get habit %d: %w", id, err)
	}
	return h, nil
}

func (s *Store) GetUserHabits(userID int64) ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT habit_id, user_id, name, description, created_date, is_active
		FROM habits
		WHERE user_id = $1 AND is_active
		ORDER BY created_date DESC, habit_id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits for user %d: %w", userID, err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var h models.Habit
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &h.CreatedDate, &h.IsActive); err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) DeactivateHabit(id int64) error {
	result, err := s.db.Exec(`
		UPDATE habits SET is_active = FALSE WHERE habit_id = $1 AND is_active`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate habit %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitbot/internal/models"
	"github.com/julianstephens/habitbot/internal/storage"
)

// UpsertUser inserts the user on first contact and refreshes the mutable
// profile fields on every later one. registered_date is written once and
// never updated; is_admin is recomputed by the caller on each contact.
func (s *Store) UpsertUser(user models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (user_id, username, first_name, last_name, registered_date, is_admin)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			is_admin = excluded.is_admin`,
		user.ID, user.Username, user.FirstName, user.LastName, user.RegisteredDate, boolToInt(user.IsAdmin))
	if err != nil {
		return fmt.Errorf("failed to upsert user %d: %w", user.ID, err)
	}
	return nil
}

func (s *Store) GetUser(id int64) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT user_id, username, first_name, last_name, registered_date, is_admin
		FROM users WHERE user_id = ?`, id)

	var u models.User
	var isAdmin int
	err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.RegisteredDate, &isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, storage.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	u.IsAdmin = isAdmin != 0
	return u, nil
}

func (s *Store) GetAllUsers() ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT user_id, username, first_name, last_name, registered_date, is_admin
		FROM users ORDER BY registered_date DESC, user_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var isAdmin int
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.RegisteredDate, &isAdmin); err != nil {
			return nil, err
		}
		u.IsAdmin = isAdmin != 0
		users = append(users, u)
	}
	return users, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

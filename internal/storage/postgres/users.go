package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitbot/internal/models"
	"github.com/julianstephens/habitbot/internal/storage"
)

func (s *Store) UpsertUser(user models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (user_id, username, first_name, last_name, registered_date, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			is_admin = excluded.is_admin`,
		user.ID, user.Username, user.FirstName, user.LastName, user.RegisteredDate, user.IsAdmin)
	if err != nil {
		return fmt.Errorf("failed to upsert user %d: %w", user.ID, err)
	}
	return nil
}

func (s *Store) GetUser(id int64) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT user_id, username, first_name, last_name, registered_date, is_admin
		FROM users WHERE user_id = $1`, id)

	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.RegisteredDate, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, storage.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get user %d: %w", id, err)
	}
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
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.RegisteredDate, &u.IsAdmin); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

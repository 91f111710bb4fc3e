package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitbot/internal/keyring"
)

// Config is the fully resolved startup configuration. The bot refuses to
// start without a token and an admin ID.
type Config struct {
	// Token authenticates against the chat platform API.
	Token string
	// AdminID is the single administrator's platform user ID.
	AdminID int64
	// Storage is either a SQLite file path or a postgres:// connection string.
	Storage string
	Debug   bool
}

var ErrMissingToken = errors.New("no bot token: pass --bot-token, set BOT_TOKEN, or run 'habitbot token set'")

// Resolve builds the runtime configuration from flag/env inputs, falling
// back to the OS keyring for the token.
func Resolve(token string, adminID int64, storagePath string, debug bool) (Config, error) {
	if token == "" {
		stored, err := keyring.GetBotToken()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) || errors.Is(err, keyring.ErrKeyringUnavailable) {
				return Config{}, ErrMissingToken
			}
			return Config{}, fmt.Errorf("failed to read bot token from keyring: %w", err)
		}
		token = stored
	}

	if adminID == 0 {
		return Config{}, errors.New("no admin ID: pass --admin-id or set ADMIN_ID")
	}

	return Config{
		Token:   token,
		AdminID: adminID,
		Storage: ExpandPath(storagePath),
		Debug:   debug,
	}, nil
}

// IsPostgres reports whether the storage target is a Postgres connection
// string rather than a SQLite file path.
func (c Config) IsPostgres() bool {
	return strings.HasPrefix(c.Storage, "postgres://") || strings.HasPrefix(c.Storage, "postgresql://")
}

// ConfigDir returns the directory holding the SQLite database and logs.
// For Postgres targets it falls back to the user config directory.
func (c Config) ConfigDir() string {
	if c.IsPostgres() {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "."
		}
		return filepath.Join(dir, "habitbot")
	}
	return filepath.Dir(c.Storage)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

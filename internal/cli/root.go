package cli

import (
	"github.com/julianstephens/habitbot/internal/config"
	"github.com/julianstephens/habitbot/internal/storage"
)

// Context carries the shared dependencies into every kong command.
type Context struct {
	Store storage.Provider
	// Storage is the resolved SQLite path or Postgres connection string.
	Storage string
	// BotToken is the flag/env-supplied token; empty means "try the keyring".
	BotToken string
	AdminID  int64
	Debug    bool
}

// ResolveConfig completes the startup configuration, pulling the token
// from the keyring when it was not supplied directly. Missing token or
// admin ID is an error; the bot never starts without them.
func (c *Context) ResolveConfig() (config.Config, error) {
	return config.Resolve(c.BotToken, c.AdminID, c.Storage, c.Debug)
}

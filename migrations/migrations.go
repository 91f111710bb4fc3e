// Package migrations embeds the SQL schema migrations for both supported
// datastores. Files follow the NNN_name.sql convention consumed by
// internal/migration.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// Package migrations embeds the audit schema migration files into the
// binary, so NetBridge needs no SQL files on the filesystem at runtime.
// Migrations are forward-only *.up.sql files.
package migrations

import (
	"embed"

	"netbridge/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	// Register embedded migrations with the database package.
	// The embed directive above captures all .sql files in this directory.
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "." // Files are at root of embedded FS
}

package creatorwire

import (
	"embed"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// MigrationsFS returns the embedded schema migration files.
func MigrationsFS() embed.FS {
	return migrationsFS
}

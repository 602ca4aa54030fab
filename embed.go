package liftsql

import "embed"

// Migrations holds the PostgreSQL schema migrations applied by storage.RunMigrations.
//
//go:embed migrations/postgres/*.sql
var Migrations embed.FS

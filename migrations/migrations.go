// Package migrations embeds the SQL schema migrations for both services.
package migrations

import "embed"

// Set names a directory of migrations tracked in its own version table.
type Set string

const (
	Documents Set = "documents"
	Catalog   Set = "catalog"
)

// Table is the golang-migrate version table for the set.
func (s Set) Table() string {
	return "schema_migrations_" + string(s)
}

//go:embed documents/*.sql catalog/*.sql
var FS embed.FS

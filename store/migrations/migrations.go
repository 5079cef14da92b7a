// Package migrations embeds the SQL schema shared by the SQLite and
// PostgreSQL stores.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

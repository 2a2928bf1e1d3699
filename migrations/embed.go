// Package migrations embeds the SQL migration files applied by goose at
// server start and in database-backed tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

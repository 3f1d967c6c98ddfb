// Package migrations embeds the SQL migrations applied by goose at startup.
// Migrations are create-if-absent only; rerunning them never destroys data.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

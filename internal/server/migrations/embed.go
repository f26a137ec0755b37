// Package migrations embeds the SQL schema migrations executed by goose at
// server startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

// Package migrations embeds the session database schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

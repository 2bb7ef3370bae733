// Package migrations embeds the SQL schema files applied by pg.Migrate at
// service startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Package migrations holds the schema and stored procedures the
// repositories call, as NNN_name.up.sql / NNN_name.down.sql pairs.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

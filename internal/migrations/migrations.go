// Package migrations holds the embedded SQL schema migrations applied with
// goose before any maintenance task runs.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

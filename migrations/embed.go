// Package migrations embeds the goose SQL migrations so they ship inside
// the server binary.
package migrations

import "embed"

// FS holds the embedded migration files.
//
//go:embed *.sql
var FS embed.FS

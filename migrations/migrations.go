// Package migrations embeds the versioned SQL schema so the server and the
// migrate tool ship with the same migrations.
package migrations

import "embed"

// FS holds every *.up.sql and *.down.sql file in this directory.
//
//go:embed *.sql
var FS embed.FS

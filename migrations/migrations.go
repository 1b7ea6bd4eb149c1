// Package migrations embeds the SQL schema so the SQL stores can set
// themselves up without a migrations directory on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Package migrations embeds the SQL migration files so binaries can apply
// them without a deployed migrations directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

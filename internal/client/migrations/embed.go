// Package migrations embeds the goose migrations for the local client
// database (keystore and feed cache tables).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

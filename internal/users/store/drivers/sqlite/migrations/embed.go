// Package migrations embeds the sqlite schema migration files so they can
// be applied from the binary via golang-migrate's iofs source.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

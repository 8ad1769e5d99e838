// Package pgmigrations embeds the PostgreSQL schema migrations.
package pgmigrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

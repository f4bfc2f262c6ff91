// Package schemas provides embedded SQL schema files, one directory per dialect.
package schemas

import "embed"

// Migrations contains the CREATE TABLE statements for every supported dialect,
// laid out as migrations/<dialect>/<nnn>_<name>.sql.
//
//go:embed migrations/*/*.sql
var Migrations embed.FS

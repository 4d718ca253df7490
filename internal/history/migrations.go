package history

import (
	"embed"
)

// Migrations содержит SQL миграции схемы истории запусков
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir каталог миграций внутри embed.FS
const MigrationsDir = "migrations"

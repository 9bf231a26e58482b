// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/danielhkuo/enquete/models"
)

// Open connects to the configured database. Deployments run postgres;
// sqlite exists for local development and tests.
func Open(databaseType, databaseURL string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch databaseType {
	case "postgres":
		dial = postgres.Open(databaseURL)
	case "sqlite":
		dial = sqlite.Open(sqliteDSN(databaseURL))
	default:
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}

	gdb, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return gdb, nil
}

// sqliteDSN enables foreign key enforcement, which sqlite leaves off per
// connection. Without it the schema's ON DELETE CASCADE rules never fire.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// Migrate creates or updates all tables. Safe to call multiple times.
func Migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.UserType{},
		&models.User{},
		&models.Poll{},
		&models.Option{},
		&models.Vote{},
		&models.Comment{},
		&models.Report{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return SeedUserTypes(gdb)
}

// SeedUserTypes inserts the CLIENT and ADMIN rows if missing. Registration
// resolves roles against these rows, so they must exist before the server
// accepts requests.
func SeedUserTypes(gdb *gorm.DB) error {
	for _, nome := range []string{models.RoleClient, models.RoleAdmin} {
		var ut models.UserType
		err := gdb.Where(models.UserType{Nome: nome}).FirstOrCreate(&ut).Error
		if err != nil {
			return fmt.Errorf("failed to seed user type %s: %w", nome, err)
		}
	}
	return nil
}

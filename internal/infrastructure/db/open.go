// Package db opens the gorm connection used for the import run log.
package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/db/models"
)

const sqlitePrefix = "sqlite://"

// Open connects to dsn. A "sqlite://<path>" dsn selects a local SQLite file;
// anything else is handed to the postgres driver.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	var (
		gdb *gorm.DB
		err error
	)
	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		gdb, err = gorm.Open(sqlite.Open(path), cfg)
	} else {
		gdb, err = gorm.Open(postgres.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&models.ImportRun{}); err != nil {
		return fmt.Errorf("migrate run log: %w", err)
	}
	return nil
}

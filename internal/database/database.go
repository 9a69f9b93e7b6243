// Package database opens the gorm connection used by every command.
package database

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/axellelanca/catalog/internal/config"
	"github.com/axellelanca/catalog/internal/models"
)

// Open connects to the configured database. SQLite connections always run with
// foreign keys enabled so that cascades and RESTRICT rules are enforced.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	switch cfg.Database.Driver {
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, nil
	case "sqlite", "":
		db, err := gorm.Open(sqlite.Open(SQLiteDSN(cfg.Database.Name)), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite database %s: %w", cfg.Database.Name, err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// SQLiteDSN appends the foreign_keys pragma to a SQLite file name or DSN.
func SQLiteDSN(name string) string {
	const pragma = "_pragma=foreign_keys(1)"
	if strings.Contains(name, pragma) {
		return name
	}
	if strings.Contains(name, "?") {
		return name + "&" + pragma
	}
	return name + "?" + pragma
}

// Migrate creates or updates the tables of every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

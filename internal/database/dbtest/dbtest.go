// Package dbtest provides an isolated, migrated in-memory database for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/axellelanca/catalog/internal/database"
)

// New returns a fresh in-memory SQLite database with all tables migrated.
// The database is closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := database.SQLiteDSN("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("dbtest: open: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("dbtest: underlying db: %v", err)
	}
	// a single connection keeps the shared in-memory database alive and
	// serializes writes coming from worker goroutines
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("dbtest: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

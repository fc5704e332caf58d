// Package testdb opens throwaway SQLite databases with the bot schema for tests.
package testdb

import (
	"path/filepath"
	"testing"

	"eviden-bot/internal/model"
	"eviden-bot/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func New(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "eviden.db")
	// One connection: transactions and plain queries must not fight over the file lock.
	db, err := database.Open(sqlite.Open(path), database.Options{
		LogLevel:     logger.Silent,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

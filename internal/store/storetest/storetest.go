// Package storetest opens migrated in-memory databases for tests.
package storetest

import (
	"testing" // Test cleanup

	"vet_clinic/internal/db" // Schema and gorm config

	"github.com/glebarez/sqlite" // Pure-Go SQLite driver
	"gorm.io/gorm"               // GORM ORM library
)

// Open returns a migrated SQLite database that lives as long as the test.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), db.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every :memory: connection is its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

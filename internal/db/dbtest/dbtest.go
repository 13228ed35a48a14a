// Package dbtest opens throwaway migrated SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/askbox/askbox/internal/db"
)

// goose keeps its dialect and filesystem in package globals.
var migrateMu sync.Mutex

// New returns a migrated database backed by a file in t.TempDir. A file is
// used instead of :memory: so every pooled connection sees the same data.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Init("sqlite", path)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	migrateMu.Lock()
	defer migrateMu.Unlock()

	err = db.RunMigrations(context.Background(), database.DB, "sqlite")
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return database
}

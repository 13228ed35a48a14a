package db

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// sqliteParams are appended to SQLite connection strings that do not set them.
// Foreign keys drive the user delete cascade, and immediate transactions make
// concurrent answer binding wait on busy_timeout instead of failing.
var sqliteParams = []struct{ key, value string }{
	{"_pragma", "foreign_keys(1)"},
	{"_pragma", "busy_timeout(5000)"},
	{"_txlock", "immediate"},
}

func Init(driver, connection string) (*sqlx.DB, error) {
	if driver == "sqlite" {
		dir := filepath.Dir(strings.SplitN(connection, "?", 2)[0])
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		connection = SQLiteDSN(connection)
	}

	db, err := sqlx.Connect(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	slog.Info("database connected", "driver", driver)

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// SQLiteDSN adds the connection parameters the schema relies on to a SQLite
// path or DSN, leaving explicitly configured ones alone.
func SQLiteDSN(connection string) string {
	for _, p := range sqliteParams {
		set := p.key + "="
		if p.key == "_pragma" {
			set += strings.SplitN(p.value, "(", 2)[0]
		}
		if strings.Contains(connection, set) {
			continue
		}

		sep := "?"
		if strings.Contains(connection, "?") {
			sep = "&"
		}
		connection += sep + p.key + "=" + p.value
	}
	return connection
}

func Close(db *sqlx.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"bare path",
			"./data/askbox.db",
			"./data/askbox.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate",
		},
		{
			"keeps existing params",
			"./data/askbox.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)",
			"./data/askbox.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate",
		},
		{
			"explicit txlock wins",
			"file.db?_txlock=exclusive&_pragma=busy_timeout(100)",
			"file.db?_txlock=exclusive&_pragma=busy_timeout(100)&_pragma=foreign_keys(1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SQLiteDSN(tt.in))
		})
	}
}

func TestDialect(t *testing.T) {
	assert.Equal(t, "sqlite3", getDialect("sqlite"))
	assert.Equal(t, "postgres", getDialect("pgx"))
	assert.Equal(t, "clickhouse", getDialect("clickhouse"))
}

package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMigrate(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	var out bytes.Buffer

	cmd := MigrateCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--driver", "sqlite", "--db", dbPath))

	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func TestMigrateCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "askbox.db")

	assert.Equal(t, "schema version 0\n", runMigrate(t, dbPath, "status"))

	runMigrate(t, dbPath, "up")
	assert.Equal(t, "schema version 1\n", runMigrate(t, dbPath, "status"))

	runMigrate(t, dbPath, "down")
	assert.Equal(t, "schema version 0\n", runMigrate(t, dbPath, "status"))
}

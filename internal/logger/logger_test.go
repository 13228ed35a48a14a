package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLevels(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	Init(true, "", "development")
	require.NotNil(t, Log)
	assert.Same(t, Log, slog.Default())
	assert.True(t, Log.Enabled(context.Background(), slog.LevelDebug))

	Init(false, "", "production")
	assert.False(t, Log.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, Log.Enabled(context.Background(), slog.LevelInfo))
}

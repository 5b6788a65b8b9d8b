package testutils

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestSlogHandler(t *testing.T) {
	t.Parallel()

	h := NewTestSlogHandler(slog.LevelInfo)
	logger := slog.New(h).With("component", "test")

	logger.Debug("hidden")
	logger.Info("visible", "count", 2)
	slog.New(h).Warn("plain")

	entries := h.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, LogEntry{"level": "INFO", "message": "visible", "component": "test", "count": int64(2)}, entries[0])
	assert.Len(t, h.Find("plain"), 1)
	assert.Empty(t, h.Find("hidden"))

	h.Clear()
	assert.Empty(t, h.Entries())
}

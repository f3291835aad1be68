package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraylogHandler_UDP(t *testing.T) {
	// UDP dialing needs no listener
	h, closer, err := NewGraylogHandler("127.0.0.1:12201", "info")
	require.NoError(t, err)
	require.NotNil(t, h)
	t.Cleanup(func() { closer.Close() })

	assert.True(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.False(t, h.Enabled(t.Context(), slog.LevelDebug))
}

func TestNewGraylogHandler_BadAddress(t *testing.T) {
	_, _, err := NewGraylogHandler("not an address", "info")
	assert.Error(t, err)
}

func TestNewGELFHandler_OneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewGELFHandler(&buf, "debug"))
	logger.Debug("throw simulated", "entered", true)

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
	assert.Contains(t, buf.String(), "entered=true")
}

package log

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for text, want := range map[string]LogLevel{
		"debug":   Debug,
		"INFO":    Info,
		"warning": Warn,
		" error ": Error,
		"Fatal":   Fatal,
	} {
		got, err := Parse(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
	}

	_, err := Parse("verbose")
	assert.Error(t, err)
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("argtree", Info, &buf)

	logger.Debug("hidden %d", 1)
	logger.Info("shown %d", 2)
	logger.Named("tree").Warn("nested")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "INFO  [argtree] shown 2")
	assert.Contains(t, lines[1], "WARN  [argtree/tree] nested")
	assert.NotContains(t, buf.String(), "\033[")
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("dispatch", Debug, &buf)
	logger.JSON = true

	logger.Error("failed: %s", "boom")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "dispatch", entry.Component)
	assert.Equal(t, "failed: boom", entry.Message)
}

func TestLogger_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "argtree.log")
	logger := NewLogger("argtree", Debug, file, true)

	logger.Info("to file")
	assert.FileExists(t, file)
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("dropped")
	logger.Named("x").Warn("dropped")
}

func TestPaint(t *testing.T) {
	painted := Paint(Error, "failed")
	assert.True(t, strings.HasPrefix(painted, "\x1b[31mfailed"), painted)
	assert.Equal(t, "plain", Paint(LogLevel(42), "plain"))
}

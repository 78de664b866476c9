package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", "console")
	require.Error(t, err)
}

func TestNewBuildsLogger(t *testing.T) {
	l, err := New("debug", "json")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzle.log")
	l, err := New("info", "json", path)
	require.NoError(t, err)
	l.Info("door opened", zap.String("door", "Door"))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"door opened"`)
	assert.Contains(t, string(data), `"door":"Door"`)
}

func TestReplaceAndRestore(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := Replace(zap.New(core))

	L().Named("laser").Info("receiver solved", zap.Int("hits", 2))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "laser", entry.LoggerName)
	assert.Equal(t, int64(2), entry.ContextMap()["hits"])

	restore()
	L().Info("dropped")
	assert.Equal(t, 1, logs.Len())
}

func TestReplaceNilInstallsNop(t *testing.T) {
	restore := Replace(nil)
	defer restore()
	assert.NotNil(t, L())
}

package logger

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedLoggersAreCached(t *testing.T) {
	require.NoError(t, Init(DefaultConfig()))
	assert.Same(t, App(), Get("app"))
	assert.NotSame(t, App(), Audit())
}

func TestFileOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Output = "file"
	cfg.Format = "json"
	cfg.Level = "debug"
	cfg.Path = filepath.Join(dir, "logs")
	require.NoError(t, Init(cfg))

	l := Audit()
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	l.WithField("entity_id", "r1").Info("wastage logged")

	raw, err := os.ReadFile(filepath.Join(cfg.Path, "audit.log"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"entity_id":"r1"`)
	assert.Contains(t, string(raw), `"message":"wastage logged"`)
}

func TestDiscard(t *testing.T) {
	require.NoError(t, Init(DefaultConfig()))
	Discard()
	assert.Equal(t, io.Discard, Error().Out)
}

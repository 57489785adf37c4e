package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "board.md", cfg.Board)
	assert.Equal(t, 30, cfg.Watch.MaxPassesPerMinute)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	content := `
board: /tmp/work.md
journal: /tmp/kb.db
watch:
  debounce: 2s
  max_passes_per_minute: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/work.md", cfg.Board)
	assert.Equal(t, "/tmp/kb.db", cfg.Journal)
	assert.Equal(t, 5, cfg.Watch.MaxPassesPerMinute)

	d, err := cfg.DebounceDuration()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, d)
}

func TestLoadRejectsBadDebounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("watch:\n  debounce: soon\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board: [unclosed\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDebounceDefaultWhenUnset(t *testing.T) {
	d, err := (&Config{}).DebounceDuration()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, d)
}

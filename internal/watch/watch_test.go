package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdkanban/kb/internal/extract"
	"github.com/mdkanban/kb/internal/gather"
)

func fixedEngine() *gather.Engine {
	return gather.New(extract.FixedClock{Date: time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)})
}

func TestProcessGathersAndRewrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.md")
	input := "## Inbox\n\n- [ ] Buy milk @2025-01-15\n\n## Today #gather_day=0\n"
	require.NoError(t, os.WriteFile(path, []byte(input), 0644))

	w := New(path, fixedEngine(), Options{})
	var moved int
	w.OnPass = func(r *gather.PassResult) { moved = len(r.Moves) }

	require.NoError(t, w.process(context.Background()))
	assert.Equal(t, 1, moved)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Today #gather_day=0\n\n- [ ] Buy milk @2025-01-15\n")

	// Saving flags an own-write so the resulting event is swallowed.
	assert.True(t, w.consumeOwnWrite())
	assert.False(t, w.consumeOwnWrite())
}

func TestProcessLeavesSettledBoardAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.md")
	input := "## Today #gather_day=0\n\n- [ ] Buy milk @2025-01-15\n"
	require.NoError(t, os.WriteFile(path, []byte(input), 0644))

	w := New(path, fixedEngine(), Options{})
	require.NoError(t, w.process(context.Background()))

	// Nothing moved and the file was already normalized: no own-write.
	assert.False(t, w.consumeOwnWrite())
}

func TestProcessLeavesNonBoardFileUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.md")
	require.NoError(t, os.WriteFile(path, []byte("just prose, no headings\n"), 0644))

	w := New(path, fixedEngine(), Options{})
	require.NoError(t, w.process(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "just prose, no headings\n", string(data))
}

func TestOptionsDefaults(t *testing.T) {
	w := New("x.md", fixedEngine(), Options{})
	assert.Equal(t, 500*time.Millisecond, w.debounce)

	w = New("x.md", fixedEngine(), Options{Debounce: 2 * time.Second, MaxPassesPerMinute: 6})
	assert.Equal(t, 2*time.Second, w.debounce)
	// 6 passes per minute is one token every 10 seconds.
	assert.InDelta(t, 0.1, float64(w.limiter.Limit()), 0.001)
}

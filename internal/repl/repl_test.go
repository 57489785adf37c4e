package repl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdkanban/kb/internal/extract"
	"github.com/mdkanban/kb/internal/gather"
	"github.com/mdkanban/kb/internal/markdown"
)

func testREPL(t *testing.T) *REPL {
	t.Helper()
	doc, err := markdown.Parse([]byte("## Inbox\n\n- [ ] Buy milk @2025-01-15\n\n## Today #gather_day=0\n"))
	require.NoError(t, err)

	engine := gather.New(extract.FixedClock{Date: time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)})
	r, err := New(&Config{Doc: doc, Path: "board.md", Engine: engine})
	require.NoError(t, err)
	return r
}

func TestNewRequiresDocument(t *testing.T) {
	_, err := New(&Config{})
	assert.Error(t, err)
}

func TestCmdGatherMovesAndMarksDirty(t *testing.T) {
	r := testREPL(t)
	require.NoError(t, r.cmdGather(nil))
	assert.True(t, r.dirty)
	assert.Len(t, r.doc.Board.Columns[1].Tasks, 1)
}

func TestCmdAddColumnAndTask(t *testing.T) {
	r := testREPL(t)
	require.NoError(t, r.cmdAdd([]string{"column", "Done", "#sort-bydate"}))
	require.Len(t, r.doc.Board.Columns, 3)
	assert.Equal(t, "Done #sort-bydate", r.doc.Board.Columns[2].Title)

	require.NoError(t, r.cmdAdd([]string{"2", "Ship", "release"}))
	require.Len(t, r.doc.Board.Columns[2].Tasks, 1)
	assert.Equal(t, "Ship release", r.doc.Board.Columns[2].Tasks[0].Title)
}

func TestCmdMoveAndRemove(t *testing.T) {
	r := testREPL(t)
	require.NoError(t, r.cmdMove([]string{"0.0", "1"}))
	assert.Empty(t, r.doc.Board.Columns[0].Tasks)
	require.Len(t, r.doc.Board.Columns[1].Tasks, 1)

	require.NoError(t, r.cmdRemove([]string{"1.0"}))
	assert.Empty(t, r.doc.Board.Columns[1].Tasks)
}

func TestBadReferencesRejected(t *testing.T) {
	r := testREPL(t)
	assert.Error(t, r.cmdMove([]string{"9.0", "1"}))
	assert.Error(t, r.cmdMove([]string{"zero", "1"}))
	assert.Error(t, r.cmdRemove([]string{"0"}))
	assert.Error(t, r.cmdAdd([]string{"column"}))
}

package markdown

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBoard = `---
title: Sprint 12
settings:
  owner: alice
---

## Todo #gather_day=0 ?@alice

- [ ] Buy milk @2025-01-15
  Oat milk preferred.
  Two cartons.
- [x] Book flights

## Done #sort-bydate
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleBoard))
	require.NoError(t, err)

	assert.Equal(t, "Sprint 12", doc.Meta.Title)
	assert.Equal(t, "alice", doc.Meta.Settings["owner"])
	assert.Equal(t, "Sprint 12", doc.Board.Title)

	require.Len(t, doc.Board.Columns, 2)
	todo := doc.Board.Columns[0]
	assert.Equal(t, "Todo #gather_day=0 ?@alice", todo.Title)
	require.Len(t, todo.Tasks, 2)

	milk := todo.Tasks[0]
	assert.Equal(t, "Buy milk @2025-01-15", milk.Title)
	assert.Equal(t, "Oat milk preferred.\nTwo cartons.", milk.Description)
	assert.False(t, milk.Done)
	assert.NotEmpty(t, milk.ID)

	assert.True(t, todo.Tasks[1].Done)
	assert.Empty(t, doc.Board.Columns[1].Tasks)
}

func TestParseWithoutFrontMatter(t *testing.T) {
	doc, err := Parse([]byte("## Inbox\n\n- [ ] One thing\n"))
	require.NoError(t, err)
	assert.Empty(t, doc.Meta.Title)
	require.Len(t, doc.Board.Columns, 1)
	require.Len(t, doc.Board.Columns[0].Tasks, 1)
}

func TestParseUnterminatedFrontMatter(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: broken\n"))
	assert.Error(t, err)
}

func TestParseIgnoresProse(t *testing.T) {
	input := "Some intro prose.\n\n## Inbox\n\nA stray paragraph.\n\n- [ ] Task\n"
	doc, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, doc.Board.Columns, 1)
	require.Len(t, doc.Board.Columns[0].Tasks, 1)
	assert.Equal(t, "Task", doc.Board.Columns[0].Tasks[0].Title)
}

func TestParseEmptyDocument(t *testing.T) {
	doc, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Board.Columns)
	assert.NotNil(t, doc.Board.Columns)
}

// TestRoundTrip marshals a parsed document and parses it again; column and
// task content must survive (ids are regenerated, so only content is
// compared).
func TestRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleBoard))
	require.NoError(t, err)

	out, err := doc.Marshal()
	require.NoError(t, err)

	again, err := Parse(out)
	require.NoError(t, err)

	assert.Equal(t, doc.Meta, again.Meta)
	require.Len(t, again.Board.Columns, len(doc.Board.Columns))
	for i, col := range doc.Board.Columns {
		got := again.Board.Columns[i]
		assert.Equal(t, col.Title, got.Title)
		require.Len(t, got.Tasks, len(col.Tasks))
		for j, task := range col.Tasks {
			assert.Equal(t, task.Title, got.Tasks[j].Title)
			assert.Equal(t, task.Description, got.Tasks[j].Description)
			assert.Equal(t, task.Done, got.Tasks[j].Done)
		}
	}
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.md")
	require.NoError(t, os.WriteFile(path, []byte(sampleBoard), 0644))

	doc, err := Load(path)
	require.NoError(t, err)

	out := filepath.Join(dir, "out.md")
	require.NoError(t, doc.Save(out))

	again, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, doc.Meta.Title, again.Meta.Title)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.md"))
	assert.Error(t, err)
}

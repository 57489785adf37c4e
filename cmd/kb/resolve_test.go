package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdkanban/kb/internal/board"
)

func testBoard() *board.Board {
	b := &board.Board{}
	inbox := b.AddColumn("Inbox")
	b.AddColumn("In Progress")
	b.AddColumn("Done #sort-bydate")
	b.AddTask(inbox.ID, "Buy milk @2025-01-15", "")
	b.AddTask(inbox.ID, "Buy stamps", "")
	b.AddTask(inbox.ID, "Call landlord", "")
	return b
}

func TestFindColumn(t *testing.T) {
	b := testBoard()

	col, err := findColumn(b, "0")
	require.NoError(t, err)
	assert.Equal(t, "Inbox", col.Title)

	col, err = findColumn(b, "Done #sort-bydate")
	require.NoError(t, err)
	assert.Equal(t, "Done #sort-bydate", col.Title)

	col, err = findColumn(b, "done")
	require.NoError(t, err)
	assert.Equal(t, "Done #sort-bydate", col.Title)

	_, err = findColumn(b, "in")
	assert.Error(t, err, "prefix matching both Inbox and In Progress")

	_, err = findColumn(b, "7")
	assert.Error(t, err)

	_, err = findColumn(b, "nonesuch")
	assert.Error(t, err)
}

func TestFindTask(t *testing.T) {
	b := testBoard()

	task, err := findTask(b, "Call landlord")
	require.NoError(t, err)
	assert.Equal(t, "Call landlord", task.Title)

	task, err = findTask(b, "milk")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk @2025-01-15", task.Title)

	_, err = findTask(b, "buy")
	assert.Error(t, err, "substring matching two tasks")

	_, err = findTask(b, "nonesuch")
	assert.Error(t, err)
}

func TestTaskIcon(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "○", taskIcon(&board.Task{Title: "No date"}, now))
	assert.Equal(t, "○", taskIcon(&board.Task{Title: "Due later @2025-02-01"}, now))
	assert.NotEqual(t, "○", taskIcon(&board.Task{Title: "Overdue @2025-01-01"}, now))
	assert.NotEqual(t, "○", taskIcon(&board.Task{Title: "Done", Done: true}, now))
}

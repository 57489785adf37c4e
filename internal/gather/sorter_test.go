package gather

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mdkanban/kb/internal/board"
)

func columnWithTasks(title string, taskTitles ...string) (*board.Board, *board.Column) {
	b := &board.Board{}
	col := b.AddColumn(title)
	for _, t := range taskTitles {
		b.AddTask(col.ID, t, "")
	}
	return b, col
}

func TestSortByDate(t *testing.T) {
	b, col := columnWithTasks("Done #sort-bydate",
		"Later @2025-03-01",
		"Sooner @2025-01-10",
		"No date",
	)

	SortColumns(b)
	assert.Equal(t, []string{"Sooner @2025-01-10", "Later @2025-03-01", "No date"}, taskTitles(col))
}

func TestSortByDateUndatedKeepRelativeOrder(t *testing.T) {
	b, col := columnWithTasks("Done #sort-bydate",
		"Undated one",
		"Dated @2025-02-01",
		"Undated two",
	)

	SortColumns(b)
	assert.Equal(t, []string{"Dated @2025-02-01", "Undated one", "Undated two"}, taskTitles(col))
}

func TestSortByDateReadsDescription(t *testing.T) {
	b := &board.Board{}
	col := b.AddColumn("Done #sort-bydate")
	b.AddTask(col.ID, "Second", "deadline @2025-05-01")
	b.AddTask(col.ID, "First", "deadline @2025-04-01")

	SortColumns(b)
	assert.Equal(t, []string{"First", "Second"}, taskTitles(col))
}

func TestSortByName(t *testing.T) {
	b, col := columnWithTasks("Done #sort-byname",
		"charlie work",
		"alpha work",
		"bravo work",
	)

	SortColumns(b)
	assert.Equal(t, []string{"alpha work", "bravo work", "charlie work"}, taskTitles(col))
}

// TestSortByNameIsStable duplicates a title; stable sorting must keep the
// duplicates in their original relative order. The ids disambiguate.
func TestSortByNameIsStable(t *testing.T) {
	b := &board.Board{}
	col := b.AddColumn("Done #sort-byname")
	first, _ := b.AddTask(col.ID, "same title", "a")
	second, _ := b.AddTask(col.ID, "same title", "b")

	SortColumns(b)
	assert.Equal(t, []string{first.ID, second.ID}, []string{col.Tasks[0].ID, col.Tasks[1].ID})
}

func TestSortUntaggedColumnUntouched(t *testing.T) {
	b, col := columnWithTasks("Done",
		"charlie",
		"alpha",
	)

	SortColumns(b)
	assert.Equal(t, []string{"charlie", "alpha"}, taskTitles(col))
}

// TestSortBothDirectivesApplyInTitleOrder runs bydate then byname when the
// title carries both in that order; the name sort decides the final order.
func TestSortBothDirectivesApplyInTitleOrder(t *testing.T) {
	b, col := columnWithTasks("Done #sort-bydate #sort-byname",
		"b task @2025-01-01",
		"a task @2025-06-01",
	)

	SortColumns(b)
	assert.Equal(t, []string{"a task @2025-06-01", "b task @2025-01-01"}, taskTitles(col))
}

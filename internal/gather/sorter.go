package gather

import (
	"regexp"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mdkanban/kb/internal/board"
	"github.com/mdkanban/kb/internal/extract"
)

var sortTagRe = regexp.MustCompile(`#sort-by(date|name)\b`)

// SortColumns applies `#sort-bydate` and `#sort-byname` directives to
// every column carrying them. Both may apply to one column; they run in
// tag-appearance order within the title. All sorts are stable: tasks that
// compare equal keep their relative order.
func SortColumns(b *board.Board) {
	for _, col := range b.Columns {
		for _, m := range sortTagRe.FindAllStringSubmatch(col.Title, -1) {
			switch m[1] {
			case "date":
				sortByDate(col)
			case "name":
				sortByName(col)
			}
		}
	}
}

// sortByDate orders tasks ascending by their extracted due date. Tasks
// without a date sort after all dated tasks, keeping their relative order.
func sortByDate(col *board.Column) {
	sort.SliceStable(col.Tasks, func(i, j int) bool {
		di := extract.Date(col.Tasks[i].Text(), extract.DateTypeDue)
		dj := extract.Date(col.Tasks[j].Text(), extract.DateTypeDue)
		if di == "" {
			return false
		}
		if dj == "" {
			return true
		}
		return di < dj
	})
}

// sortByName orders tasks by title under locale-aware collation, so
// accented titles sort the way a user expects rather than by byte value.
// The collator is per-call on purpose: collate.Collator mutates internal
// iterator state on Compare, and sorts may run from concurrent passes.
func sortByName(col *board.Column) {
	c := collate.New(language.Und)
	sort.SliceStable(col.Tasks, func(i, j int) bool {
		return c.CompareString(col.Tasks[i].Title, col.Tasks[j].Title) < 0
	})
}

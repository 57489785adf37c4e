package gather

import (
	"github.com/mdkanban/kb/internal/board"
	"github.com/mdkanban/kb/internal/extract"
	"github.com/mdkanban/kb/internal/query"
)

// Engine runs gather passes. It holds no state besides the injected clock,
// so a single Engine can serve any number of sequential passes.
type Engine struct {
	clock extract.Clock
}

// New returns an Engine using the given clock, or the system clock when
// nil.
func New(clock extract.Clock) *Engine {
	if clock == nil {
		clock = extract.SystemClock{}
	}
	return &Engine{clock: clock}
}

// Move records one task relocation performed by a pass.
type Move struct {
	TaskID    string
	TaskTitle string
	FromID    string
	FromTitle string
	ToID      string
	ToTitle   string
	// Reason is "rule:<expr>" for a gather rule match or "ungathered"
	// for the fallback.
	Reason string
}

// PassResult reports what a pass did, in apply order.
type PassResult struct {
	Moves []Move
}

// Gather runs one full pass over the board: collect rules, route tasks,
// apply the ungathered fallback, then run sort directives. It mutates the
// board in place. It reports false, without touching anything, only when
// the board shape is unusable. A pass that moves nothing still returns
// true.
func (e *Engine) Gather(b *board.Board) bool {
	_, ok := e.Pass(b)
	return ok
}

// Pass is Gather plus a report of the moves performed.
func (e *Engine) Pass(b *board.Board) (*PassResult, bool) {
	if b == nil || b.Columns == nil {
		return nil, false
	}

	sticky := stickyTaskIDs(b)
	rules, fallbacks := CollectRules(b)

	type assignment struct {
		task   *board.Task
		dest   *board.Column
		reason string
	}
	var assignments []assignment
	matched := make(map[string]bool)

	// Evaluators are compiled lazily, at most once per rule per pass.
	// Caching across passes would leak stale board state; caching within
	// one is invisible.
	evaluators := make([]query.Evaluator, len(rules))
	evaluatorFor := func(i int) query.Evaluator {
		if evaluators[i] == nil {
			evaluators[i] = query.Compile(rules[i].Expr, e.clock)
		}
		return evaluators[i]
	}

	// Match pass: first matching rule wins, in collection order.
	for _, col := range b.Columns {
		for _, task := range col.Tasks {
			if sticky[task.ID] {
				continue
			}
			text := task.Text()
			date := extract.Date(text, extract.DateTypeDue)
			persons := extract.PersonNames(text)
			for i, rule := range rules {
				if evaluatorFor(i)(text, date, persons) {
					assignments = append(assignments, assignment{
						task:   task,
						dest:   rule.Column,
						reason: "rule:" + rule.Expr,
					})
					matched[task.ID] = true
					break
				}
			}
		}
	}

	// Ungathered fallback: unmatched tasks that carry any date or person
	// annotation go to the first fallback column. Additional fallback
	// columns are collected but never used.
	if len(fallbacks) > 0 {
		dest := fallbacks[0].Column
		for _, col := range b.Columns {
			for _, task := range col.Tasks {
				if sticky[task.ID] || matched[task.ID] {
					continue
				}
				text := task.Text()
				if extract.Date(text, extract.DateTypeDue) != "" || len(extract.PersonNames(text)) > 0 {
					assignments = append(assignments, assignment{
						task:   task,
						dest:   dest,
						reason: "ungathered",
					})
				}
			}
		}
	}

	// Apply moves in assignment order; tasks landing in the same column
	// keep that relative order. The source is wherever the task's id is
	// found at application time, which matters if ids are duplicated.
	result := &PassResult{}
	for _, a := range assignments {
		src := b.ColumnOf(a.task.ID)
		if src == nil || src == a.dest {
			continue
		}
		src.RemoveTask(a.task.ID)
		a.dest.Tasks = append(a.dest.Tasks, a.task)
		result.Moves = append(result.Moves, Move{
			TaskID:    a.task.ID,
			TaskTitle: a.task.Title,
			FromID:    src.ID,
			FromTitle: src.Title,
			ToID:      a.dest.ID,
			ToTitle:   a.dest.Title,
			Reason:    a.reason,
		})
	}

	SortColumns(b)
	return result, true
}

// stickyTaskIDs returns the ids of tasks pinned in place with #sticky.
func stickyTaskIDs(b *board.Board) map[string]bool {
	sticky := make(map[string]bool)
	for _, col := range b.Columns {
		for _, task := range col.Tasks {
			if extract.HasSticky(task.Text()) {
				sticky[task.ID] = true
			}
		}
	}
	return sticky
}

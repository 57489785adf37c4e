// Package repl implements the interactive board shell.
package repl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/mdkanban/kb/internal/board"
	"github.com/mdkanban/kb/internal/gather"
	"github.com/mdkanban/kb/internal/markdown"
)

// REPL represents the interactive shell over one board file.
type REPL struct {
	doc      *markdown.Document
	path     string
	engine   *gather.Engine
	rl       *readline.Instance
	dirty    bool
	commands map[string]CommandHandler
}

// CommandHandler handles a specific command
type CommandHandler func(args []string) error

// Config holds REPL configuration
type Config struct {
	Doc    *markdown.Document
	Path   string
	Engine *gather.Engine
}

// New creates a new REPL instance
func New(cfg *Config) (*REPL, error) {
	if cfg.Doc == nil {
		return nil, fmt.Errorf("board document is required")
	}
	engine := cfg.Engine
	if engine == nil {
		engine = gather.New(nil)
	}

	r := &REPL{
		doc:    cfg.Doc,
		path:   cfg.Path,
		engine: engine,
	}
	r.registerCommands()
	return r, nil
}

func (r *REPL) registerCommands() {
	r.commands = map[string]CommandHandler{
		"help":   r.cmdHelp,
		"show":   r.cmdShow,
		"gather": r.cmdGather,
		"add":    r.cmdAdd,
		"move":   r.cmdMove,
		"rm":     r.cmdRemove,
		"save":   r.cmdSave,
	}
}

// Run starts the REPL loop and returns when the user exits.
func (r *REPL) Run() error {
	cyan := color.New(color.FgCyan).SprintFunc()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("kb> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	fmt.Printf("Board: %s (%d columns). Type 'help' for commands.\n",
		r.path, len(r.doc.Board.Columns))

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			} else if err == io.EOF {
				r.warnUnsaved()
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		if cmd == "quit" || cmd == "exit" {
			r.warnUnsaved()
			return nil
		}

		handler, ok := r.commands[cmd]
		if !ok {
			fmt.Printf("Unknown command: %s (try 'help')\n", cmd)
			continue
		}
		if err := handler(args); err != nil {
			color.Red("Error: %v", err)
		}
	}
}

func (r *REPL) warnUnsaved() {
	if r.dirty {
		color.Yellow("Unsaved changes discarded (use 'save' next time).")
	}
}

func (r *REPL) cmdHelp([]string) error {
	fmt.Println(`Commands:
  show                     display the board
  gather                   run a gather pass
  add column <title>       append a column
  add <col#> <title>       append a task to column <col#>
  move <col#>.<task#> <col#>  move a task
  rm <col#>.<task#>        delete a task
  save                     write the board back to disk
  quit                     exit`)
	return nil
}

func (r *REPL) cmdShow([]string) error {
	bold := color.New(color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	for ci, col := range r.doc.Board.Columns {
		fmt.Printf("%s %s\n", gray(fmt.Sprintf("[%d]", ci)), bold(col.Title))
		for ti, task := range col.Tasks {
			fmt.Printf("  %s %s\n", gray(fmt.Sprintf("[%d.%d]", ci, ti)), task.Title)
		}
	}
	return nil
}

func (r *REPL) cmdGather([]string) error {
	result, ok := r.engine.Pass(r.doc.Board)
	if !ok {
		return fmt.Errorf("board has no columns to gather into")
	}
	if len(result.Moves) == 0 {
		fmt.Println("Nothing to move.")
		return nil
	}
	for _, m := range result.Moves {
		fmt.Printf("%s: %s → %s (%s)\n", m.TaskTitle, m.FromTitle, m.ToTitle, m.Reason)
	}
	r.dirty = true
	return nil
}

func (r *REPL) cmdAdd(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: add column <title> | add <col#> <title>")
	}
	if args[0] == "column" {
		r.doc.Board.AddColumn(strings.Join(args[1:], " "))
		r.dirty = true
		return nil
	}

	col, err := r.columnAt(args[0])
	if err != nil {
		return err
	}
	if _, err := r.doc.Board.AddTask(col.ID, strings.Join(args[1:], " "), ""); err != nil {
		return err
	}
	r.dirty = true
	return nil
}

func (r *REPL) cmdMove(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: move <col#>.<task#> <col#>")
	}
	task, err := r.taskAt(args[0])
	if err != nil {
		return err
	}
	dest, err := r.columnAt(args[1])
	if err != nil {
		return err
	}
	if err := r.doc.Board.MoveTask(task.ID, dest.ID); err != nil {
		return err
	}
	r.dirty = true
	return nil
}

func (r *REPL) cmdRemove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rm <col#>.<task#>")
	}
	task, err := r.taskAt(args[0])
	if err != nil {
		return err
	}
	if err := r.doc.Board.DeleteTask(task.ID); err != nil {
		return err
	}
	r.dirty = true
	return nil
}

func (r *REPL) cmdSave([]string) error {
	if r.path == "" {
		return fmt.Errorf("no file path associated with this board")
	}
	if err := r.doc.Save(r.path); err != nil {
		return err
	}
	r.dirty = false
	color.Green("Saved %s", r.path)
	return nil
}

func (r *REPL) columnAt(ref string) (*board.Column, error) {
	idx, err := strconv.Atoi(ref)
	if err != nil || idx < 0 || idx >= len(r.doc.Board.Columns) {
		return nil, fmt.Errorf("no such column: %s", ref)
	}
	return r.doc.Board.Columns[idx], nil
}

func (r *REPL) taskAt(ref string) (*board.Task, error) {
	ci, ti, ok := strings.Cut(ref, ".")
	if !ok {
		return nil, fmt.Errorf("task reference must look like <col#>.<task#>")
	}
	col, err := r.columnAt(ci)
	if err != nil {
		return nil, err
	}
	idx, err := strconv.Atoi(ti)
	if err != nil || idx < 0 || idx >= len(col.Tasks) {
		return nil, fmt.Errorf("no such task: %s", ref)
	}
	return col.Tasks[idx], nil
}

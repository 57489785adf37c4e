package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mdkanban/kb/internal/board"
	"github.com/mdkanban/kb/internal/markdown"
)

var addDescription string

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a column or task to the board",
}

var addColumnCmd = &cobra.Command{
	Use:   "column <title>",
	Short: "Append a new column",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveBoard(nil)
		doc, err := markdown.Load(path)
		if err != nil {
			return err
		}
		col := doc.Board.AddColumn(strings.Join(args, " "))
		if err := doc.Save(path); err != nil {
			return err
		}
		color.Green("Added column %q to %s", col.Title, path)
		return nil
	},
}

var addTaskCmd = &cobra.Command{
	Use:   "task <column> <title>",
	Short: "Append a task to a column (by index or title prefix)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveBoard(nil)
		doc, err := markdown.Load(path)
		if err != nil {
			return err
		}
		col, err := findColumn(doc.Board, args[0])
		if err != nil {
			return err
		}
		task, err := doc.Board.AddTask(col.ID, strings.Join(args[1:], " "), addDescription)
		if err != nil {
			return err
		}
		if err := doc.Save(path); err != nil {
			return err
		}
		color.Green("Added %q to %q", task.Title, col.Title)
		return nil
	},
}

// findColumn resolves a user-supplied column reference: a zero-based
// index, an exact title, or a unique case-insensitive title prefix.
func findColumn(b *board.Board, ref string) (*board.Column, error) {
	if idx, err := strconv.Atoi(ref); err == nil {
		if idx < 0 || idx >= len(b.Columns) {
			return nil, fmt.Errorf("column index out of range: %d", idx)
		}
		return b.Columns[idx], nil
	}

	var matches []*board.Column
	for _, col := range b.Columns {
		if col.Title == ref {
			return col, nil
		}
		if strings.HasPrefix(strings.ToLower(col.Title), strings.ToLower(ref)) {
			matches = append(matches, col)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no column matches %q", ref)
	default:
		return nil, fmt.Errorf("column reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func init() {
	addTaskCmd.Flags().StringVarP(&addDescription, "desc", "d", "", "task description")
	addCmd.AddCommand(addColumnCmd)
	addCmd.AddCommand(addTaskCmd)
	rootCmd.AddCommand(addCmd)
}

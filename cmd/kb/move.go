package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mdkanban/kb/internal/board"
	"github.com/mdkanban/kb/internal/markdown"
)

var moveCmd = &cobra.Command{
	Use:   "move <task> <column>",
	Short: "Move a task to another column",
	Long: `Move the task whose title matches <task> (exactly, or as a unique
case-insensitive substring) to <column> (index, exact title, or unique
title prefix).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveBoard(nil)
		doc, err := markdown.Load(path)
		if err != nil {
			return err
		}

		task, err := findTask(doc.Board, args[0])
		if err != nil {
			return err
		}
		dest, err := findColumn(doc.Board, args[1])
		if err != nil {
			return err
		}

		if err := doc.Board.MoveTask(task.ID, dest.ID); err != nil {
			return err
		}
		if err := doc.Save(path); err != nil {
			return err
		}
		color.Green("Moved %q to %q", task.Title, dest.Title)
		return nil
	},
}

// findTask resolves a task by exact title, falling back to a unique
// case-insensitive substring match.
func findTask(b *board.Board, ref string) (*board.Task, error) {
	var matches []*board.Task
	for _, col := range b.Columns {
		for _, task := range col.Tasks {
			if task.Title == ref {
				return task, nil
			}
			if strings.Contains(strings.ToLower(task.Title), strings.ToLower(ref)) {
				matches = append(matches, task)
			}
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no task matches %q", ref)
	default:
		return nil, fmt.Errorf("task reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

var rmCmd = &cobra.Command{
	Use:   "rm <task>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveBoard(nil)
		doc, err := markdown.Load(path)
		if err != nil {
			return err
		}
		task, err := findTask(doc.Board, args[0])
		if err != nil {
			return err
		}
		if err := doc.Board.DeleteTask(task.ID); err != nil {
			return err
		}
		if err := doc.Save(path); err != nil {
			return err
		}
		color.Yellow("Deleted %q", task.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(rmCmd)
}

package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mdkanban/kb/internal/board"
	"github.com/mdkanban/kb/internal/extract"
	"github.com/mdkanban/kb/internal/markdown"
)

var showCmd = &cobra.Command{
	Use:   "show [board file]",
	Short: "Display the board",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := markdown.Load(resolveBoard(args))
		if err != nil {
			return err
		}
		renderBoard(doc, time.Now())
		return nil
	},
}

func renderBoard(doc *markdown.Document, now time.Time) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	if doc.Meta.Title != "" {
		fmt.Printf("%s\n\n", cyan("=== "+doc.Meta.Title+" ==="))
	}
	for _, col := range doc.Board.Columns {
		fmt.Printf("%s %s\n", yellow(col.Title), gray(fmt.Sprintf("(%d)", len(col.Tasks))))
		for _, task := range col.Tasks {
			fmt.Printf("  %s %s\n", taskIcon(task, now), task.Title)
		}
		fmt.Println()
	}
}

// taskIcon picks a status marker: done, overdue, or pending.
func taskIcon(task *board.Task, now time.Time) string {
	if task.Done {
		return color.GreenString("✓")
	}
	due := extract.Date(task.Text(), extract.DateTypeDue)
	if due != "" {
		if offset, ok := extract.DateProperty("day", due, now); ok && offset.(int) < 0 {
			return color.RedString("!")
		}
	}
	return "○"
}

func init() {
	rootCmd.AddCommand(showCmd)
}

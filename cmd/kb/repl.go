package main

import (
	"github.com/spf13/cobra"

	"github.com/mdkanban/kb/internal/markdown"
	"github.com/mdkanban/kb/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl [board file]",
	Short: "Interactive shell over a board",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveBoard(args)
		doc, err := markdown.Load(path)
		if err != nil {
			return err
		}

		r, err := repl.New(&repl.Config{Doc: doc, Path: path})
		if err != nil {
			return err
		}
		return r.Run()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mdkanban/kb/internal/journal"
)

var (
	historyLimit int
	historyAll   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [board file]",
	Short: "Show recent gather moves from the journal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Journal == "" {
			return fmt.Errorf("no journal configured (set 'journal' in the config file)")
		}

		jnl, err := journal.Open(cfg.Journal)
		if err != nil {
			return err
		}
		defer jnl.Close()

		boardPath := resolveBoard(args)
		if historyAll {
			boardPath = ""
		}

		entries, err := jnl.Recent(cmd.Context(), boardPath, historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No recorded moves.")
			return nil
		}

		gray := color.New(color.FgHiBlack).SprintFunc()
		for _, e := range entries {
			fmt.Printf("%s %s: %s → %s %s\n",
				gray(e.MovedAt.Local().Format("2006-01-02 15:04")),
				e.TaskTitle, e.From, e.To, gray("("+e.Reason+")"))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to show")
	historyCmd.Flags().BoolVar(&historyAll, "all", false, "show moves across all boards")
	rootCmd.AddCommand(historyCmd)
}

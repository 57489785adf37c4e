package main

import (
	"fmt"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mdkanban/kb/internal/gather"
	"github.com/mdkanban/kb/internal/journal"
	"github.com/mdkanban/kb/internal/markdown"
)

var gatherDryRun bool

var gatherCmd = &cobra.Command{
	Use:   "gather [board files...]",
	Short: "Run one gather pass over each board file",
	Long: `Collect gather rules from column titles, route every non-sticky task to
the first matching rule's column, apply the ungathered fallback, run sort
directives, and write the board back. Multiple board files are processed
concurrently.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			paths = []string{resolveBoard(nil)}
		}

		var jnl *journal.Journal
		if cfg.Journal != "" && !gatherDryRun {
			var err error
			jnl, err = journal.Open(cfg.Journal)
			if err != nil {
				return err
			}
			defer jnl.Close()
		}

		engine := gather.New(nil)
		var mu sync.Mutex

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(4)
		for _, path := range paths {
			g.Go(func() error {
				doc, err := markdown.Load(path)
				if err != nil {
					return err
				}
				result, ok := engine.Pass(doc.Board)
				if !ok {
					return fmt.Errorf("%s: not a usable board", path)
				}
				if !gatherDryRun {
					if err := doc.Save(path); err != nil {
						return err
					}
				}

				mu.Lock()
				defer mu.Unlock()
				printMoves(path, result, len(paths) > 1)
				if jnl != nil {
					if err := jnl.Record(ctx, path, result.Moves); err != nil {
						return err
					}
				}
				return nil
			})
		}
		return g.Wait()
	},
}

func printMoves(path string, result *gather.PassResult, showPath bool) {
	gray := color.New(color.FgHiBlack).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	prefix := ""
	if showPath {
		prefix = path + ": "
	}
	if len(result.Moves) == 0 {
		fmt.Printf("%s%s\n", prefix, gray("nothing to move"))
		return
	}
	for _, m := range result.Moves {
		fmt.Printf("%s%s %s %s → %s %s\n",
			prefix, green("moved"), m.TaskTitle, m.FromTitle, m.ToTitle,
			gray("("+m.Reason+")"))
	}
}

func init() {
	gatherCmd.Flags().BoolVar(&gatherDryRun, "dry-run", false, "report moves without writing the board back")
	rootCmd.AddCommand(gatherCmd)
}

// kb is a markdown-driven Kanban CLI. Boards live in plain markdown files;
// column titles carry gather rules (`#gather_day=0`, `?@alice`, `?#urgent`)
// and sort directives, and `kb gather` re-files tasks accordingly.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdkanban/kb/internal/config"
)

var (
	cfg       *config.Config
	cfgPath   string
	boardFlag string
)

var rootCmd = &cobra.Command{
	Use:   "kb",
	Short: "Markdown Kanban board with rule-driven task gathering",
	Long: `kb keeps a Kanban board in a plain markdown file and automatically
re-files tasks into columns based on rules written inline in column titles.

Rule syntax (in column titles):
  #gather_<expr>   route tasks matching <expr> here (e.g. #gather_day=0)
  ?.<shorthand>    temporal shorthand (?.today, ?.w07, ?.monday, ?.day<3)
  ?@<name>         route tasks mentioning @<name> here
  ?#<tag>          route tasks tagged #<tag> here
  #ungathered      fallback for unmatched tasks with any annotation
  #sort-bydate     keep this column sorted by due date
  #sort-byname     keep this column sorted by title

Task annotations (in task text): @2025-01-15 or @due:2025-01-15 for due
dates, @name for people, #sticky to pin a task in place.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		return err
	},
}

// resolveBoard picks the board file: explicit argument, then --board flag,
// then the configured default.
func resolveBoard(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if boardFlag != "" {
		return boardFlag
	}
	return cfg.Board
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.kb.yaml)")
	rootCmd.PersistentFlags().StringVarP(&boardFlag, "board", "b", "", "board file (default from config)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mdkanban/kb/internal/gather"
	"github.com/mdkanban/kb/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [board file]",
	Short: "Re-gather automatically whenever the board file changes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveBoard(args)

		debounce, err := cfg.DebounceDuration()
		if err != nil {
			return err
		}

		w := watch.New(path, gather.New(nil), watch.Options{
			Debounce:           debounce,
			MaxPassesPerMinute: cfg.Watch.MaxPassesPerMinute,
		})
		w.OnPass = func(result *gather.PassResult) {
			printMoves(path, result, false)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching %s %s\n", path, color.HiBlackString("(Ctrl+C to stop)"))
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

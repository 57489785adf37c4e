package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const starterBoard = `---
title: My Board
---

## Inbox #ungathered

- [ ] Try kb: run 'kb gather' and watch this task stay put

## Today ?.today

## This Week ?.day<7

## Done #sort-bydate
`

var initCmd = &cobra.Command{
	Use:   "init [board file]",
	Short: "Create a starter board file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveBoard(args)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.WriteFile(path, []byte(starterBoard), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		color.Green("Created %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

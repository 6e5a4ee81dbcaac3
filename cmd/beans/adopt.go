package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAdoptCmd() *cobra.Command {
	var parent string
	cmd := &cobra.Command{
		Use:   "adopt <id> [id...]",
		Short: "move one or more beans under a new parent, renumbering and rewriting references",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := app.engine.Adopt(app.ctx, args, parent); err != nil {
				return err
			}
			if !flags.quiet {
				fmt.Printf("adopted %d bean(s) under %s\n", len(args), parent)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "new parent bean ID")
	_ = cmd.MarkFlagRequired("parent")
	return cmd
}

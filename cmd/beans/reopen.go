package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReopenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <id|selector>",
		Short: "reopen a closed bean",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			id, err := resolveOne(app, args[0])
			if err != nil {
				return err
			}
			b, err := app.engine.Reopen(app.ctx, id)
			if err != nil {
				return err
			}
			if !flags.quiet {
				fmt.Println("reopened", b.ID)
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|selector>",
		Short: "remove a bean and strip it from every other bean's dependencies",
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
			if err := app.engine.Delete(app.ctx, id); err != nil {
				return err
			}
			if !flags.quiet {
				fmt.Println("deleted", id)
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCloseCmd() *cobra.Command {
	var reason string
	var force bool
	cmd := &cobra.Command{
		Use:   "close <id|selector>",
		Short: "close a bean, running its verify command unless --force",
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
			b, err := app.engine.Close(app.ctx, id, reason, force)
			if err != nil {
				return err
			}
			if !flags.quiet {
				fmt.Println("closed", b.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "close reason recorded on the bean")
	cmd.Flags().BoolVar(&force, "force", false, "close without running verify")
	return cmd
}

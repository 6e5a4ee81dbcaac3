package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "manage explicit dependency edges between beans",
	}
	cmd.AddCommand(newDepAddCmd(), newDepRemoveCmd())
	return cmd
}

func newDepAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <id|selector> <on-id|selector>",
		Short: "add an explicit dependency, rejecting anything that would create a cycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			from, err := resolveOne(app, args[0])
			if err != nil {
				return err
			}
			on, err := resolveOne(app, args[1])
			if err != nil {
				return err
			}
			if err := app.engine.DepAdd(app.ctx, from, on); err != nil {
				return err
			}
			if !flags.quiet {
				fmt.Printf("%s now depends on %s\n", from, on)
			}
			return nil
		},
	}
}

func newDepRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id|selector> <on-id|selector>",
		Aliases: []string{"remove"},
		Short:   "remove an explicit dependency",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			from, err := resolveOne(app, args[0])
			if err != nil {
				return err
			}
			on, err := resolveOne(app, args[1])
			if err != nil {
				return err
			}
			if err := app.engine.DepRemove(app.ctx, from, on); err != nil {
				return err
			}
			if !flags.quiet {
				fmt.Printf("%s no longer depends on %s\n", from, on)
			}
			return nil
		},
	}
}

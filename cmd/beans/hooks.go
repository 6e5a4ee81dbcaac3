package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beansdev/beans/internal/hooks"
)

func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "manage the store's hook trust marker",
	}
	cmd.AddCommand(newHooksTrustCmd())
	return cmd
}

func newHooksTrustCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trust",
		Short: "mark this store's hooks directory as trusted, enabling hook dispatch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := hooks.Trust(app.store.TrustMarkerPath()); err != nil {
				return err
			}
			if !flags.quiet {
				fmt.Println("hooks trusted")
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUnarchiveCmd() *cobra.Command {
	return &cobra.Command{
		// Archived beans never appear in the active index a selector
		// expands against, so unarchive takes a literal ID, not @-selectors.
		Use:   "unarchive <id>",
		Short: "move an archived bean back into the active tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			id := args[0]
			path, archived, err := app.store.Resolve(id)
			if err != nil {
				return err
			}
			if !archived {
				return fmt.Errorf("bean %s is not archived", id)
			}
			if _, err := app.store.Unarchive(path); err != nil {
				return err
			}
			if !flags.quiet {
				fmt.Println("unarchived", id)
			}
			return nil
		},
	}
}

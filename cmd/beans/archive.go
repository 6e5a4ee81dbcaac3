package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/beansdev/beans/internal/types"
)

func newArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id|selector>",
		Short: "move a closed bean into the dated archive tree",
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
			b, _, err := app.store.Load(id)
			if err != nil {
				return err
			}
			if b.IsArchived {
				return fmt.Errorf("bean %s is already archived", id)
			}
			if b.Status != types.StatusClosed {
				return fmt.Errorf("bean %s is not closed", id)
			}
			closedAt := time.Now()
			if b.ClosedAt != nil {
				closedAt = *b.ClosedAt
			}
			path, _, err := app.store.Resolve(id)
			if err != nil {
				return err
			}
			if _, err := app.store.Archive(path, closedAt); err != nil {
				return err
			}
			if !flags.quiet {
				fmt.Println("archived", id)
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beansdev/beans/internal/beanerr"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id|selector>",
		Short: "run a bean's verify command without mutating it",
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
			res, err := app.engine.Verify(app.ctx, id)
			if err != nil {
				return err
			}
			if !flags.quiet {
				fmt.Println(res.Output)
			}
			if !res.Passed {
				return &beanerr.VerifyFailedError{ID: id, ExitCode: res.ExitCode}
			}
			fmt.Printf("%s passed in %s\n", id, res.Elapsed)
			return nil
		},
	}
}

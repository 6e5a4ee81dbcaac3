package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beansdev/beans/internal/selector"
	"github.com/beansdev/beans/internal/types"
)

func newClaimCmd() *cobra.Command {
	var release, retry bool
	cmd := &cobra.Command{
		Use:   "claim <id|selector>",
		Short: "acquire or release exclusive ownership of a bean",
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

			run := func() (*types.Bean, error) { return app.engine.Claim(app.ctx, id, app.actor, release) }
			b, err := maybeRetry(retry, run)
			if err != nil {
				return err
			}

			return printJSONOrLine(app,
				func() (string, error) { d, err := json.Marshal(b); return string(d), err },
				func() string {
					if release {
						return fmt.Sprintf("released %s", b.ID)
					}
					return fmt.Sprintf("claimed %s for %s", b.ID, b.ClaimedBy)
				},
			)
		},
	}
	cmd.Flags().BoolVar(&release, "release", false, "release an existing claim instead of acquiring one")
	cmd.Flags().BoolVar(&retry, "retry", false, "retry with exponential backoff on claim-conflict")
	return cmd
}

// resolveOne expands ref against a fresh index snapshot and requires
// exactly one result.
func resolveOne(app *appContext, ref string) (string, error) {
	idx, _, err := freshIndex(app)
	if err != nil {
		return "", err
	}
	return selector.ExpandOne(idx, selector.Context{Actor: app.actor}, ref)
}

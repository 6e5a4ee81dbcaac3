package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/beansdev/beans/internal/graph"
)

func newReadyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "list beans that are open, have a verify command, and have every dependency closed",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			idx, _, err := freshIndex(app)
			if err != nil {
				return err
			}
			ids := graph.New(idx).Ready()
			return printJSONOrLine(app,
				func() (string, error) { d, err := json.Marshal(ids); return string(d), err },
				func() string { return renderIDList(app, idx, ids, false) },
			)
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beansdev/beans/internal/graph"
)

func newShowCmd() *cobra.Command {
	var render bool
	cmd := &cobra.Command{
		Use:   "show <id|selector>",
		Short: "print one bean's full document",
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

			idx, _, err := freshIndex(app)
			if err != nil {
				return err
			}
			g := graph.New(idx)

			return printJSONOrLine(app,
				func() (string, error) { d, err := json.Marshal(b); return string(d), err },
				func() string {
					badge := app.renderer.StatusBadge(b.Status, b.IsGoal(), g.IsBlocked(b.ID))
					out := fmt.Sprintf("%s  %s  %s\n\n", badge, b.ID, b.Title)
					body := string(b.Description)
					if render {
						body = app.renderer.RenderBody(body)
					}
					out += body
					return out
				},
			)
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, "lightly style headings and code fences in the description")
	return cmd
}

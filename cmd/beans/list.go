package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/beansdev/beans/internal/graph"
	"github.com/beansdev/beans/internal/index"
	"github.com/beansdev/beans/internal/types"
)

func newListCmd() *cobra.Command {
	var status, label, assignee string
	var includeArchived bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list beans, optionally filtered by status, label, or assignee",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			idx, _, err := index.EnsureFresh(app.ctx, app.store, includeArchived)
			if err != nil {
				return err
			}
			g := graph.New(idx)

			var ids []string
			for _, e := range idx.Entries {
				if status != "" && string(e.Status) != status {
					continue
				}
				if label != "" && !hasLabel(e.Labels, label) {
					continue
				}
				if assignee != "" && e.Assignee != assignee {
					continue
				}
				ids = append(ids, e.ID)
			}

			return printJSONOrLine(app,
				func() (string, error) { d, err := json.Marshal(ids); return string(d), err },
				func() string { return renderFiltered(app, idx, g, ids) },
			)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by status (open, in_progress, closed)")
	cmd.Flags().StringVar(&label, "label", "", "filter to beans carrying this label")
	cmd.Flags().StringVar(&assignee, "assignee", "", "filter to beans assigned to this actor")
	cmd.Flags().BoolVar(&includeArchived, "archived", false, "include archived beans")
	return cmd
}

func hasLabel(labels []string, want string) bool {
	for _, l := range labels {
		if l == want {
			return true
		}
	}
	return false
}

func renderFiltered(app *appContext, idx *types.Index, g *graph.Graph, ids []string) string {
	byID := make(map[string]bool, len(ids))
	for _, id := range ids {
		byID[id] = true
	}
	var kept []string
	for _, e := range idx.Entries {
		if byID[e.ID] {
			kept = append(kept, e.ID)
		}
	}
	return renderIDListGraph(app, idx, g, kept)
}

package main

import (
	"strings"

	"github.com/beansdev/beans/internal/graph"
	"github.com/beansdev/beans/internal/types"
)

// renderIDList renders ids as one ui.Renderer.Summary line each, looking
// each one up in idx for title/status. forceBlocked marks every entry as
// blocked (used by `beans blocked`, since a goal can be blocked too but
// graph.Blocked already filtered to exactly that set).
func renderIDList(app *appContext, idx *types.Index, ids []string, forceBlocked bool) string {
	byID := make(map[string]*types.IndexEntry, len(idx.Entries))
	for i := range idx.Entries {
		byID[idx.Entries[i].ID] = &idx.Entries[i]
	}

	var lines []string
	for _, id := range ids {
		e, ok := byID[id]
		if !ok {
			continue
		}
		lines = append(lines, app.renderer.Summary(e.ID, e.Title, e.Status, e.IsGoal, forceBlocked))
	}
	if len(lines) == 0 {
		return "(none)"
	}
	return strings.Join(lines, "\n")
}

// renderIDListGraph is like renderIDList but classifies blocked status
// per-entry from g instead of forcing one value for the whole list.
func renderIDListGraph(app *appContext, idx *types.Index, g *graph.Graph, ids []string) string {
	byID := make(map[string]*types.IndexEntry, len(idx.Entries))
	for i := range idx.Entries {
		byID[idx.Entries[i].ID] = &idx.Entries[i]
	}

	var lines []string
	for _, id := range ids {
		e, ok := byID[id]
		if !ok {
			continue
		}
		lines = append(lines, app.renderer.Summary(e.ID, e.Title, e.Status, e.IsGoal, g.IsBlocked(e.ID)))
	}
	if len(lines) == 0 {
		return "(none)"
	}
	return strings.Join(lines, "\n")
}

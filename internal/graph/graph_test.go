package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beansdev/beans/internal/types"
)

func entry(id string, status types.Status, deps []string, requires, produces []string, goal bool) types.IndexEntry {
	return types.IndexEntry{
		ID:       id,
		Status:   status,
		Deps:     deps,
		Requires: requires,
		Produces: produces,
		IsGoal:   goal,
	}
}

func TestReadyRequiresClosedDeps(t *testing.T) {
	idx := &types.Index{Entries: []types.IndexEntry{
		entry("bd-1", types.StatusOpen, []string{"bd-2"}, nil, nil, false),
		entry("bd-2", types.StatusClosed, nil, nil, nil, false),
	}}
	g := New(idx)
	assert.True(t, g.IsReady("bd-1"))
	assert.False(t, g.IsBlocked("bd-1"))
}

func TestBlockedWhenDepOpen(t *testing.T) {
	idx := &types.Index{Entries: []types.IndexEntry{
		entry("bd-1", types.StatusOpen, []string{"bd-2"}, nil, nil, false),
		entry("bd-2", types.StatusOpen, nil, nil, nil, false),
	}}
	g := New(idx)
	assert.False(t, g.IsReady("bd-1"))
	assert.True(t, g.IsBlocked("bd-1"))
}

func TestGoalNeverReady(t *testing.T) {
	idx := &types.Index{Entries: []types.IndexEntry{
		entry("bd-1", types.StatusOpen, nil, nil, nil, true),
	}}
	g := New(idx)
	assert.False(t, g.IsReady("bd-1"))
}

func TestInferredEdgeFromRequiresProduces(t *testing.T) {
	idx := &types.Index{Entries: []types.IndexEntry{
		entry("bd-1", types.StatusOpen, nil, []string{"token-a"}, nil, false),
		entry("bd-2", types.StatusOpen, nil, nil, []string{"token-a"}, false),
	}}
	g := New(idx)
	assert.False(t, g.IsReady("bd-1"), "bd-1 requires token-a, produced by still-open bd-2")
	assert.Contains(t, g.Edges("bd-1"), "bd-2")

	// Once the producer closes, the inferred edge disappears.
	idx2 := &types.Index{Entries: []types.IndexEntry{
		entry("bd-1", types.StatusOpen, nil, []string{"token-a"}, nil, false),
		entry("bd-2", types.StatusClosed, nil, nil, []string{"token-a"}, false),
	}}
	g2 := New(idx2)
	assert.True(t, g2.IsReady("bd-1"))
}

func TestDetectCycle(t *testing.T) {
	idx := &types.Index{Entries: []types.IndexEntry{
		entry("bd-1", types.StatusOpen, []string{"bd-2"}, nil, nil, false),
		entry("bd-2", types.StatusOpen, []string{"bd-3"}, nil, nil, false),
		entry("bd-3", types.StatusOpen, []string{"bd-1"}, nil, nil, false),
	}}
	g := New(idx)
	cyc := g.DetectCycle()
	require.NotNil(t, cyc)
	assert.GreaterOrEqual(t, len(cyc.Path), 3)
}

func TestDetectCycleNoneOnDAG(t *testing.T) {
	idx := &types.Index{Entries: []types.IndexEntry{
		entry("bd-1", types.StatusOpen, []string{"bd-2"}, nil, nil, false),
		entry("bd-2", types.StatusOpen, nil, nil, nil, false),
	}}
	g := New(idx)
	assert.Nil(t, g.DetectCycle())
}

func TestDependents(t *testing.T) {
	idx := &types.Index{Entries: []types.IndexEntry{
		entry("bd-1", types.StatusOpen, []string{"bd-3"}, nil, nil, false),
		entry("bd-2", types.StatusOpen, []string{"bd-3"}, nil, nil, false),
		entry("bd-3", types.StatusOpen, nil, nil, nil, false),
	}}
	g := New(idx)
	deps := g.Dependents("bd-3")
	assert.ElementsMatch(t, []string{"bd-1", "bd-2"}, deps)
}

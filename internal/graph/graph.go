// Package graph computes dependency edges, detects cycles, and classifies
// beans as ready/blocked/goal against a single index snapshot.
package graph

import (
	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/types"
)

// color for tri-colour DFS cycle detection.
type color int

const (
	white color = iota
	gray
	black
)

// Graph is the union of explicit dependency edges and inferred
// requires/produces edges over one Index snapshot.
type Graph struct {
	idx     *types.Index
	byID    map[string]*types.IndexEntry
	edges   map[string][]string // explicit + inferred, X -> Y means X depends on Y
	reverse map[string][]string // Y -> [X, ...] dependents, built lazily
}

// New builds a Graph from an index snapshot.
func New(idx *types.Index) *Graph {
	g := &Graph{
		idx:   idx,
		byID:  make(map[string]*types.IndexEntry, len(idx.Entries)),
		edges: make(map[string][]string, len(idx.Entries)),
	}
	for i := range idx.Entries {
		e := &idx.Entries[i]
		g.byID[e.ID] = e
	}

	// producers: capability token -> IDs of beans not yet closed that
	// produce it. Closing a producer removes its inferred edges, which
	// is how requiring beans become ready.
	producers := make(map[string][]string)
	for i := range idx.Entries {
		e := &idx.Entries[i]
		if e.Status == types.StatusClosed {
			continue
		}
		for _, tok := range e.Produces {
			producers[tok] = append(producers[tok], e.ID)
		}
	}

	for i := range idx.Entries {
		e := &idx.Entries[i]
		deps := append([]string(nil), e.Deps...)
		for _, tok := range e.Requires {
			for _, producerID := range producers[tok] {
				if producerID == e.ID {
					continue
				}
				deps = append(deps, producerID)
			}
		}
		g.edges[e.ID] = dedupe(deps)
	}
	return g
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Edges returns the dependency targets of id (explicit union inferred).
func (g *Graph) Edges(id string) []string {
	return g.edges[id]
}

// DetectCycle runs a tri-colour DFS over the full edge set and returns
// the first witnessed cycle as an ordered path, or nil if acyclic.
func (g *Graph) DetectCycle() *beanerr.CycleError {
	colors := make(map[string]color, len(g.idx.Entries))
	var path []string

	var visit func(id string) *beanerr.CycleError
	visit = func(id string) *beanerr.CycleError {
		colors[id] = gray
		path = append(path, id)
		for _, dep := range g.edges[id] {
			switch colors[dep] {
			case white:
				if cyc := visit(dep); cyc != nil {
					return cyc
				}
			case gray:
				cycleStart := indexOf(path, dep)
				return &beanerr.CycleError{Path: append(append([]string(nil), path[cycleStart:]...), dep)}
			case black:
				// already fully explored, no cycle through here
			}
		}
		path = path[:len(path)-1]
		colors[id] = black
		return nil
	}

	for i := range g.idx.Entries {
		id := g.idx.Entries[i].ID
		if colors[id] == white {
			if cyc := visit(id); cyc != nil {
				return cyc
			}
		}
	}
	return nil
}

func indexOf(path []string, id string) int {
	for i, p := range path {
		if p == id {
			return i
		}
	}
	return 0
}

// IsReady reports whether id is ready: open, has a verify command (not a
// goal), and every edge target is closed.
func (g *Graph) IsReady(id string) bool {
	e, ok := g.byID[id]
	if !ok || e.Status != types.StatusOpen || e.IsGoal {
		return false
	}
	for _, dep := range g.edges[id] {
		if depE, ok := g.byID[dep]; ok && depE.Status != types.StatusClosed {
			return false
		}
	}
	return true
}

// IsBlocked reports whether id is open with at least one unclosed edge
// target. Goals can be blocked too (they're just never schedulable).
func (g *Graph) IsBlocked(id string) bool {
	e, ok := g.byID[id]
	if !ok || e.Status != types.StatusOpen {
		return false
	}
	for _, dep := range g.edges[id] {
		if depE, ok := g.byID[dep]; ok && depE.Status != types.StatusClosed {
			return true
		}
	}
	return false
}

// Ready returns every ready bean's ID, in index order.
func (g *Graph) Ready() []string {
	var out []string
	for i := range g.idx.Entries {
		id := g.idx.Entries[i].ID
		if g.IsReady(id) {
			out = append(out, id)
		}
	}
	return out
}

// Blocked returns every blocked bean's ID, in index order.
func (g *Graph) Blocked() []string {
	var out []string
	for i := range g.idx.Entries {
		id := g.idx.Entries[i].ID
		if g.IsBlocked(id) {
			out = append(out, id)
		}
	}
	return out
}

// Dependents computes reverse adjacency for id on demand: every bean
// whose edge set includes id.
func (g *Graph) Dependents(id string) []string {
	if g.reverse == nil {
		g.reverse = make(map[string][]string, len(g.edges))
		for src, targets := range g.edges {
			for _, tgt := range targets {
				g.reverse[tgt] = append(g.reverse[tgt], src)
			}
		}
	}
	return g.reverse[id]
}

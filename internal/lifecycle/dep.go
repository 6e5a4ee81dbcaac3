package lifecycle

import (
	"context"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/graph"
	"github.com/beansdev/beans/internal/index"
)

// DepAdd adds an explicit dependency edge from -> on, rejecting it with
// CycleDetected (and leaving the store unchanged) if it would close a
// cycle.
func (e *Engine) DepAdd(ctx context.Context, from, on string) error {
	if from == on {
		return beanerr.Wrapf(beanerr.ErrCycle, "bean %s cannot depend on itself", from)
	}
	b, form, err := e.Store.Load(from)
	if err != nil {
		return err
	}
	if contains(b.Dependencies, on) {
		return nil
	}
	if _, err := e.Store.Resolve(on); err != nil {
		return err
	}

	idx, _, err := index.Build(ctx, e.Store, false)
	if err != nil {
		return err
	}
	g := graph.New(idx)
	if wouldCycle(g, from, on) {
		return beanerr.Wrapf(beanerr.ErrCycle, "adding dependency %s -> %s would create a cycle", from, on)
	}

	b.Dependencies = append(b.Dependencies, on)
	b.UpdatedAt = e.now()
	_, err = e.Store.Save(b, form)
	return err
}

// wouldCycle reports whether adding edge from->on would create a cycle,
// by checking whether on can already reach from.
func wouldCycle(g *graph.Graph, from, on string) bool {
	visited := map[string]bool{}
	var reaches func(id string) bool
	reaches = func(id string) bool {
		if id == from {
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		for _, dep := range g.Edges(id) {
			if reaches(dep) {
				return true
			}
		}
		return false
	}
	return reaches(on)
}

// DepRemove removes an explicit dependency edge.
func (e *Engine) DepRemove(ctx context.Context, from, on string) error {
	b, form, err := e.Store.Load(from)
	if err != nil {
		return err
	}
	b.Dependencies = remove(b.Dependencies, on)
	b.UpdatedAt = e.now()
	_, err = e.Store.Save(b, form)
	return err
}

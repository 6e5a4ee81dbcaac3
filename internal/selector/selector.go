// Package selector expands symbolic references (@latest, @ready, @blocked,
// @me, @parent) against a single index snapshot. A literal ID is passed
// through unchanged. Expansion never re-reads disk: it's a pure function
// of the snapshot it's given, so a single command sees one consistent
// world even if other processes are mutating the store concurrently.
package selector

import (
	"strings"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/graph"
	"github.com/beansdev/beans/internal/types"
)

// Context carries the ambient state a selector may need beyond the index
// itself: the acting actor (for @me) and the current bean (for @parent).
type Context struct {
	Actor       string
	CurrentBean string // ID of the bean the command is scoped to, if any
}

// Expand resolves ref (a literal ID or an @-prefixed symbol) to a set of
// IDs against idx. Results are always returned in index (natural) order.
func Expand(idx *types.Index, ctx Context, ref string) ([]string, error) {
	if !strings.HasPrefix(ref, "@") {
		if _, ok := idx.ByID(ref); !ok {
			return nil, beanerr.Wrapf(beanerr.ErrNotFound, "bean %s", ref)
		}
		return []string{ref}, nil
	}

	switch ref {
	case "@latest":
		return expandLatest(idx)
	case "@ready":
		return graph.New(idx).Ready(), nil
	case "@blocked":
		return graph.New(idx).Blocked(), nil
	case "@me":
		return expandMe(idx, ctx)
	case "@parent":
		return expandParent(idx, ctx)
	default:
		return nil, beanerr.Wrapf(beanerr.ErrValidation, "unknown selector %s", ref)
	}
}

// ExpandOne is Expand for call sites that require exactly one result:
// it fails if the expansion yields zero or more than one ID.
func ExpandOne(idx *types.Index, ctx Context, ref string) (string, error) {
	ids, err := Expand(idx, ctx, ref)
	if err != nil {
		return "", err
	}
	if len(ids) != 1 {
		return "", beanerr.Wrapf(beanerr.ErrValidation, "selector %s expanded to %d beans, want exactly 1", ref, len(ids))
	}
	return ids[0], nil
}

func expandLatest(idx *types.Index) ([]string, error) {
	var best *types.IndexEntry
	for i := range idx.Entries {
		e := &idx.Entries[i]
		if e.Archived {
			continue
		}
		if best == nil || e.UpdatedAt.After(best.UpdatedAt) {
			best = e
		}
	}
	if best == nil {
		return nil, beanerr.Wrapf(beanerr.ErrNotFound, "@latest: store has no active beans")
	}
	return []string{best.ID}, nil
}

func expandMe(idx *types.Index, ctx Context) ([]string, error) {
	if ctx.Actor == "" {
		return nil, beanerr.Wrapf(beanerr.ErrValidation, "@me: no actor configured")
	}
	var out []string
	for i := range idx.Entries {
		e := &idx.Entries[i]
		if e.Status == types.StatusClosed {
			continue
		}
		if e.Assignee == ctx.Actor || e.ClaimedBy == ctx.Actor {
			out = append(out, e.ID)
		}
	}
	return out, nil
}

func expandParent(idx *types.Index, ctx Context) ([]string, error) {
	if ctx.CurrentBean == "" {
		return nil, beanerr.Wrapf(beanerr.ErrValidation, "@parent: no current bean in context")
	}
	e, ok := idx.ByID(ctx.CurrentBean)
	if !ok {
		return nil, beanerr.Wrapf(beanerr.ErrNotFound, "bean %s", ctx.CurrentBean)
	}
	if e.Parent == "" {
		return nil, beanerr.Wrapf(beanerr.ErrNotFound, "bean %s has no parent", ctx.CurrentBean)
	}
	if _, ok := idx.ByID(e.Parent); !ok {
		return nil, beanerr.Wrapf(beanerr.ErrNotFound, "parent %s", e.Parent)
	}
	return []string{e.Parent}, nil
}

package lifecycle

import (
	"context"
	"strconv"
	"strings"

	"github.com/beansdev/beans/internal/beanid"
	"github.com/beansdev/beans/internal/index"
)

// rename tracks one bean's move through the stage-then-commit sequence,
// so a mid-batch failure can unwind what's already been staged by
// restoring from the staging names.
type rename struct {
	oldID, newID string
	oldPath      string
	stagedPath   string
}

// Adopt moves each bean in ids under newParent, renumbering them to the
// next available child slots in allocation order, then rewrites every
// other bean's dependencies that referenced an old ID to the
// corresponding new one. Every descendant of an adopted bean moves with
// it: its ID prefix is rewritten to match the new ancestor ID and its
// Parent field is updated to match, so the P.N identifier/parent-link
// agreement invariant holds for the whole subtree, not just its root.
// The move is all-or-nothing: every source file is first staged aside;
// only once every stage succeeds does the batch commit new filenames,
// and any staging failure restores the files already staged.
func (e *Engine) Adopt(ctx context.Context, ids []string, newParent string) error {
	if err := e.ensureParentExists(newParent); err != nil {
		return err
	}

	idx, _, err := index.Build(ctx, e.Store, true)
	if err != nil {
		return err
	}
	nextSlot := 0
	for i := range idx.Entries {
		id := idx.Entries[i].ID
		if beanid.Parent(id) != newParent {
			continue
		}
		if n, err := strconv.Atoi(id[strings.LastIndex(id, ".")+1:]); err == nil && n > nextSlot {
			nextSlot = n
		}
	}

	// idMap carries every old ID that moves — the adopted beans themselves
	// plus every descendant found in the index — to its new ID. A
	// descendant keeps its own trailing segment; only the ancestor prefix
	// that changed is substituted, so "a.1.2" adopted under "p" (with "a"
	// becoming "p.3") becomes "p.3.2".
	idMap := make(map[string]string, len(ids))
	for _, id := range ids {
		nextSlot++
		idMap[id] = beanid.ChildSlot(newParent, nextSlot)
	}
	for i := range idx.Entries {
		id := idx.Entries[i].ID
		if _, ok := idMap[id]; ok {
			continue
		}
		for _, root := range ids {
			if strings.HasPrefix(id, root+".") {
				idMap[id] = idMap[root] + strings.TrimPrefix(id, root)
				break
			}
		}
	}

	renames := make([]*rename, 0, len(idMap))
	for oldID, newID := range idMap {
		path, _, err := e.Store.Resolve(oldID)
		if err != nil {
			return err
		}
		renames = append(renames, &rename{oldID: oldID, newID: newID, oldPath: path})
	}

	staged := make([]*rename, 0, len(renames))
	rollback := func() {
		for _, r := range staged {
			_ = e.Store.RestoreStaged(r.stagedPath, r.oldPath)
		}
	}

	for _, r := range renames {
		stagedPath, err := e.Store.StageRename(r.oldPath)
		if err != nil {
			rollback()
			return err
		}
		r.stagedPath = stagedPath
		staged = append(staged, r)
	}

	for _, r := range renames {
		b, form, err := e.Store.LoadPath(r.stagedPath, false)
		if err != nil {
			rollback()
			return err
		}
		b.ID = r.newID
		b.Parent = beanid.Parent(r.newID)
		b.UpdatedAt = e.now()
		if _, err := e.Store.Save(b, form); err != nil {
			rollback()
			return err
		}
		if err := e.Store.Delete(r.stagedPath); err != nil {
			return err
		}
	}

	return e.rewriteAllReferences(ctx, idMap)
}

// rewriteAllReferences replaces every occurrence of a renamed ID in any
// bean's dependencies with its new ID, in one pass over the index.
func (e *Engine) rewriteAllReferences(ctx context.Context, idMap map[string]string) error {
	idx, _, err := index.Build(ctx, e.Store, true)
	if err != nil {
		return err
	}
	for i := range idx.Entries {
		entry := &idx.Entries[i]
		touched := false
		for _, dep := range entry.Deps {
			if _, ok := idMap[dep]; ok {
				touched = true
				break
			}
		}
		if !touched {
			continue
		}
		b, form, err := e.Store.Load(entry.ID)
		if err != nil {
			return err
		}
		for i, dep := range b.Dependencies {
			if newID, ok := idMap[dep]; ok {
				b.Dependencies[i] = newID
			}
		}
		b.UpdatedAt = e.now()
		if _, err := e.Store.Save(b, form); err != nil {
			return err
		}
	}
	return nil
}

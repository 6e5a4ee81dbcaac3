package lifecycle

import (
	"context"
	"sort"

	"github.com/beansdev/beans/internal/index"
)

// Delete removes id's file (active or archived) and strips it from every
// other bean's dependencies set.
func (e *Engine) Delete(ctx context.Context, id string) error {
	path, _, err := e.Store.Resolve(id)
	if err != nil {
		return err
	}

	if err := e.stripDependencyReferences(ctx, id); err != nil {
		return err
	}

	return e.Store.Delete(path)
}

// stripDependencyReferences rewrites every bean (active and archived)
// whose dependencies set mentions old, removing it.
func (e *Engine) stripDependencyReferences(ctx context.Context, old string) error {
	idx, _, err := index.Build(ctx, e.Store, true)
	if err != nil {
		return err
	}
	for i := range idx.Entries {
		entry := &idx.Entries[i]
		if !contains(entry.Deps, old) {
			continue
		}
		b, form, err := e.Store.Load(entry.ID)
		if err != nil {
			return err
		}
		b.Dependencies = remove(b.Dependencies, old)
		b.UpdatedAt = e.now()
		if _, err := e.Store.Save(b, form); err != nil {
			return err
		}
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	sort.Strings(out)
	return out
}

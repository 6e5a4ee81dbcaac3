package lifecycle

import (
	"context"
	"strconv"
	"strings"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/beanid"
	"github.com/beansdev/beans/internal/config"
	"github.com/beansdev/beans/internal/index"
)

// nextChildSlot scans active and archived beans for the highest existing
// child index under parent and returns the next unused slot parent.N.
func (e *Engine) nextChildSlot(ctx context.Context, parent string) (string, error) {
	idx, _, err := index.Build(ctx, e.Store, true)
	if err != nil {
		return "", err
	}
	max := 0
	for i := range idx.Entries {
		id := idx.Entries[i].ID
		if beanid.Parent(id) != parent {
			continue
		}
		last := id[strings.LastIndex(id, ".")+1:]
		n, err := strconv.Atoi(last)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return beanid.ChildSlot(parent, max+1), nil
}

// nextTopLevelID consumes the config allocator: read next_id, increment,
// persist.
func (e *Engine) nextTopLevelID() (string, error) {
	n, err := config.AllocateNextID(e.Store.ConfigPath())
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n, 10), nil
}

// ensureParentExists validates that parent resolves to an existing bean,
// active or archived.
func (e *Engine) ensureParentExists(parent string) error {
	if parent == "" {
		return nil
	}
	if err := beanid.Validate(parent); err != nil {
		return err
	}
	if _, _, err := e.Store.Resolve(parent); err != nil {
		return beanerr.Wrapf(beanerr.ErrValidation, "parent %s: %v", parent, err)
	}
	return nil
}

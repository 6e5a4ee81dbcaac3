package lifecycle

import (
	"context"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/types"
)

// Reopen transitions a closed bean back to open, clearing closed_at and
// moving it back to the active tree if it was archived. attempts is left
// unchanged.
func (e *Engine) Reopen(ctx context.Context, id string) (*types.Bean, error) {
	path, archived, err := e.Store.Resolve(id)
	if err != nil {
		return nil, err
	}
	if archived {
		newPath, err := e.Store.Unarchive(path)
		if err != nil {
			return nil, err
		}
		path = newPath
	}

	b, form, err := e.Store.LoadPath(path, false)
	if err != nil {
		return nil, err
	}
	if b.Status != types.StatusClosed {
		return nil, beanerr.Wrapf(beanerr.ErrStatusConflict, "bean %s is not closed", id)
	}

	b.Status = types.StatusOpen
	b.ClosedAt = nil
	b.UpdatedAt = e.now()

	if _, err := e.Store.Save(b, form); err != nil {
		return nil, err
	}
	return b, nil
}

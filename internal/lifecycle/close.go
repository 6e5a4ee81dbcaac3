package lifecycle

import (
	"context"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/document"
	"github.com/beansdev/beans/internal/hooks"
	"github.com/beansdev/beans/internal/index"
	"github.com/beansdev/beans/internal/types"
	"github.com/beansdev/beans/internal/verify"
)

// Close attempts to close id, running its verify command first if one is
// set. On verify failure it records the attempt in notes and returns
// VerifyFailedError, leaving the bean open/in_progress. On success it
// archives the bean and, if closing it completes all of its parent's
// children, recursively auto-closes the parent.
func (e *Engine) Close(ctx context.Context, id, reason string, force bool) (*types.Bean, error) {
	return e.closeOne(ctx, id, reason, force, map[string]bool{})
}

func (e *Engine) closeOne(ctx context.Context, id, reason string, force bool, visiting map[string]bool) (*types.Bean, error) {
	if visiting[id] {
		// Guards against recursing into an already-closed/visited parent.
		return nil, beanerr.Wrapf(beanerr.ErrStatusConflict, "bean %s already being closed in this cascade", id)
	}
	visiting[id] = true

	b, form, err := e.Store.Load(id)
	if err != nil {
		return nil, err
	}
	if b.Status == types.StatusClosed {
		return nil, beanerr.Wrapf(beanerr.ErrStatusConflict, "bean %s is already closed", id)
	}

	if err := e.Hooks.Run(ctx, hooks.PreClose, hooks.Context{Phase: hooks.PreClose, Bean: b}); err != nil {
		return nil, err
	}

	if !force && !b.IsGoal() {
		res, err := verify.Run(ctx, e.Store.ProjectRoot(), b.Verify)
		if err != nil {
			return nil, err
		}
		if !res.Passed {
			b.Attempts++
			b.Notes = types.LongText(appendNote(string(b.Notes), failureNote(b.Attempts, e.now(), res.ExitCode, res.Output)))
			b.UpdatedAt = e.now()
			if _, err := e.Store.Save(b, form); err != nil {
				return nil, err
			}
			return nil, &beanerr.VerifyFailedError{ID: id, ExitCode: res.ExitCode}
		}
	}

	now := e.now()
	b.Status = types.StatusClosed
	b.ClosedAt = &now
	b.UpdatedAt = now
	if reason != "" {
		b.CloseReason = reason
	}
	b.ClaimedBy = ""
	b.ClaimedAt = nil

	path, err := e.Store.Save(b, form)
	if err != nil {
		return nil, err
	}
	if _, err := e.Store.Archive(path, now); err != nil {
		return nil, err
	}

	if err := e.Hooks.Run(ctx, hooks.PostClose, hooks.Context{Phase: hooks.PostClose, Bean: b}); err != nil {
		e.Log.Warn("post-close hook failed", "id", b.ID, "err", err)
	}

	if b.Parent != "" {
		if err := e.maybeAutoCloseParent(ctx, b.Parent, visiting); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// maybeAutoCloseParent closes parent if every one of its children is now
// closed. A parent without a verify command (a
// goal) closes without running verify, reason "all children completed".
func (e *Engine) maybeAutoCloseParent(ctx context.Context, parent string, visiting map[string]bool) error {
	parentBean, _, err := e.Store.Load(parent)
	if err != nil {
		return err
	}
	if parentBean.Status == types.StatusClosed {
		return nil
	}

	idx, _, err := index.Build(ctx, e.Store, true)
	if err != nil {
		return err
	}
	for i := range idx.Entries {
		c := &idx.Entries[i]
		if c.Parent != parent {
			continue
		}
		if c.Status != types.StatusClosed {
			return nil
		}
	}

	if parentBean.IsGoal() {
		_, err := e.closeOne(ctx, parent, "all children completed", true, visiting)
		return err
	}
	_, err = e.closeOne(ctx, parent, "", false, visiting)
	if beanerr.Is(err, beanerr.ErrVerifyFailed) {
		// Parent has its own verify command that isn't passing yet; it
		// simply stays open. Not a failure of the child's close.
		return nil
	}
	return err
}

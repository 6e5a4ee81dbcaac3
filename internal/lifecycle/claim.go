package lifecycle

import (
	"context"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/document"
	"github.com/beansdev/beans/internal/types"
)

// Claim acquires or releases a claim on id. Acquire requires the bean be
// open; release requires it be in_progress. The loser of a simultaneous
// acquire fails with ClaimConflict.
func (e *Engine) Claim(ctx context.Context, id, actor string, release bool) (*types.Bean, error) {
	b, form, err := e.Store.Load(id)
	if err != nil {
		return nil, err
	}
	if b.IsArchived {
		return nil, beanerr.Wrapf(beanerr.ErrStatusConflict, "bean %s is archived", id)
	}

	if release {
		if b.Status != types.StatusInProgress {
			return nil, beanerr.Wrapf(beanerr.ErrStatusConflict, "bean %s is not claimed", id)
		}
		observedStatus := b.Status
		b.Status = types.StatusOpen
		b.ClaimedBy = ""
		b.ClaimedAt = nil
		b.UpdatedAt = e.now()
		return e.commitClaim(id, b, form, observedStatus)
	}

	if b.Status != types.StatusOpen {
		return nil, beanerr.Wrapf(beanerr.ErrStatusConflict, "bean %s is not open", id)
	}
	observedStatus := b.Status
	now := e.now()
	b.Status = types.StatusInProgress
	b.ClaimedBy = actor
	b.ClaimedAt = &now
	b.UpdatedAt = now
	return e.commitClaim(id, b, form, observedStatus)
}

// commitClaim re-reads the bean immediately before the final rename and
// fails with ClaimConflict if its status has moved since the original
// read — the optimistic-concurrency check that keeps two concurrent
// claimants from both winning a race on the same bean.
func (e *Engine) commitClaim(id string, mutated *types.Bean, form document.Form, observedStatus types.Status) (*types.Bean, error) {
	fresh, _, err := e.Store.Load(id)
	if err != nil {
		return nil, err
	}
	if fresh.Status != observedStatus {
		return nil, beanerr.Wrapf(beanerr.ErrClaimConflict, "bean %s: status changed to %s before claim committed", id, fresh.Status)
	}
	if _, err := e.Store.Save(mutated, form); err != nil {
		return nil, err
	}
	return mutated, nil
}

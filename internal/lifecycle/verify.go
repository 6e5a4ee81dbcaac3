package lifecycle

import (
	"context"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/verify"
)

// Verify runs id's verify command without mutating the bean. A goal
// bean (no verify command) cannot be verified.
func (e *Engine) Verify(ctx context.Context, id string) (verify.Result, error) {
	b, _, err := e.Store.Load(id)
	if err != nil {
		return verify.Result{}, err
	}
	if b.IsGoal() {
		return verify.Result{}, beanerr.Wrapf(beanerr.ErrValidation, "bean %s has no verify command", id)
	}
	return verify.Run(ctx, e.Store.ProjectRoot(), b.Verify)
}

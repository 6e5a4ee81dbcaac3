package main

import (
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/beansdev/beans/internal/beanerr"
)

// maybeRetry is the opt-in --retry convenience: the core performs no
// retries itself, but `claim` and `create` may ask the command layer to
// retry a ClaimConflict (or an allocator race surfaced as Duplicate)
// with bounded exponential backoff.
func maybeRetry[T any](retry bool, fn func() (T, error)) (T, error) {
	if !retry {
		return fn()
	}

	var result T
	operation := func() error {
		var err error
		result, err = fn()
		if err != nil && (beanerr.Is(err, beanerr.ErrClaimConflict) || beanerr.Is(err, beanerr.ErrDuplicate)) {
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 5 * time.Second
	err := backoff.Retry(operation, bo)
	return result, err
}

package main

import (
	"errors"

	"github.com/beansdev/beans/internal/beanerr"
)

// Exit codes.
const (
	exitSuccess     = 0
	exitUserError   = 1
	exitArgumentErr = 2
	exitInterrupt   = 130
)

func exitCodeFor(err error) int {
	if err == nil {
		return exitSuccess
	}
	var usageErr cobraUsageError
	if errors.As(err, &usageErr) {
		return exitArgumentErr
	}
	if beanerr.Kind(err) != "" {
		return exitUserError
	}
	return exitUserError
}

// cobraUsageError lets us distinguish cobra's own flag/arg parsing
// errors (exit 2) from lifecycle errors (exit 1) without cobra exposing
// a typed error for it directly.
type cobraUsageError struct{ err error }

func (e cobraUsageError) Error() string { return e.err.Error() }
func (e cobraUsageError) Unwrap() error { return e.err }

// wrapUsageError marks err as an argument-parse error for exitCodeFor.
func wrapUsageError(err error) error {
	if err == nil {
		return nil
	}
	return cobraUsageError{err}
}

// Package beanerr defines the error kinds the lifecycle engine can raise
// and the wrap/sentinel idiom used to carry operation context through them.
package beanerr

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per kind. Command-layer code maps these to exit
// codes via errors.Is; nothing in the core ever retries on them (retries
// are a caller's decision).
var (
	ErrValidation        = errors.New("validation")
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("duplicate id")
	ErrStatusConflict    = errors.New("status conflict")
	ErrClaimConflict     = errors.New("claim conflict")
	ErrCycle             = errors.New("cycle detected")
	ErrVerifyFailed      = errors.New("verify failed")
	ErrFailFirstRejected = errors.New("fail-first rejected")
	ErrHookRejected      = errors.New("hook rejected")
	ErrIO                = errors.New("io error")
)

// Wrap attaches operation context to a sentinel error, e.g.
// Wrap("claim bd-1", ErrClaimConflict).
func Wrap(op string, sentinel error) error {
	return fmt.Errorf("%s: %w", op, sentinel)
}

// Wrapf is Wrap with a formatted operation description.
func Wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}

// WrapIO wraps an arbitrary filesystem error with path context, tagging it
// as ErrIO so the command layer maps it to exit code 1 uniformly.
func WrapIO(path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", path, ErrIO, err)
}

// Is reports whether err is (or wraps) the given sentinel.
func Is(err, sentinel error) bool {
	return errors.Is(err, sentinel)
}

// Kind returns a short machine-readable name for err's sentinel, used by
// --json error output. Returns "" if err doesn't match a known kind.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrStatusConflict):
		return "status_conflict"
	case errors.Is(err, ErrClaimConflict):
		return "claim_conflict"
	case errors.Is(err, ErrCycle):
		return "cycle_detected"
	case errors.Is(err, ErrVerifyFailed):
		return "verify_failed"
	case errors.Is(err, ErrFailFirstRejected):
		return "fail_first_rejected"
	case errors.Is(err, ErrHookRejected):
		return "hook_rejected"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return ""
	}
}

// CycleError carries the witnessed cycle path for ErrCycle.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %v", ErrCycle.Error(), e.Path)
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// VerifyFailedError carries the exit code for ErrVerifyFailed.
type VerifyFailedError struct {
	ID       string
	ExitCode int
}

func (e *VerifyFailedError) Error() string {
	return fmt.Sprintf("%s: verify for %s exited %d", ErrVerifyFailed.Error(), e.ID, e.ExitCode)
}

func (e *VerifyFailedError) Unwrap() error { return ErrVerifyFailed }

// HookRejectedError carries the failing hook's stderr.
type HookRejectedError struct {
	Phase  string
	Stderr string
}

func (e *HookRejectedError) Error() string {
	return fmt.Sprintf("%s: hook %s: %s", ErrHookRejected.Error(), e.Phase, e.Stderr)
}

func (e *HookRejectedError) Unwrap() error { return ErrHookRejected }

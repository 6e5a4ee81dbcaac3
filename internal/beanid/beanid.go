// Package beanid implements the dotted-hierarchy identifier grammar,
// natural-order comparison, and slug derivation. It has no dependency on
// the store or document packages: validation is the first step of every
// command that accepts an ID literal, and must not require touching disk.
package beanid

import (
	"fmt"
	"strings"

	"github.com/beansdev/beans/internal/beanerr"
)

// validSegment is a hand-rolled character-class check rather than regexp:
// the grammar is simple enough that a loop is both faster and clearer.
func validSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}

// Validate checks id against the identifier grammar: a non-empty sequence
// of dot-separated segments, each matching [A-Za-z0-9_-]+, no empty
// segments, no leading/trailing dot. This is deliberately a strict subset
// of filename-safe characters — no path separator, no traversal sequence
// can ever pass.
func Validate(id string) error {
	if id == "" {
		return beanerr.Wrap("validate id", beanerr.ErrValidation)
	}
	if strings.HasPrefix(id, ".") || strings.HasSuffix(id, ".") {
		return beanerr.Wrapf(beanerr.ErrValidation, "id %q has leading or trailing dot", id)
	}
	for _, seg := range strings.Split(id, ".") {
		if !validSegment(seg) {
			return beanerr.Wrapf(beanerr.ErrValidation, "id %q has invalid segment %q", id, seg)
		}
	}
	return nil
}

// Parent returns the identifier's parent under the dotted-hierarchy
// convention ("a.b.c" -> "a.b"), or "" if id has no parent segment.
func Parent(id string) string {
	i := strings.LastIndex(id, ".")
	if i < 0 {
		return ""
	}
	return id[:i]
}

// ChildSlot returns the Nth child slot name for a parent ID ("p", 3) -> "p.3".
func ChildSlot(parent string, n int) string {
	return fmt.Sprintf("%s.%d", parent, n)
}

// Package lifecycle implements bean state transitions: create, claim,
// verify, close, reopen, delete, adopt, and tidy. It is the only package
// that combines store, graph, hooks, and verify into the actual
// transition semantics; cmd/beans is a thin shell over it.
package lifecycle

import (
	"log/slog"
	"time"

	"github.com/beansdev/beans/internal/hooks"
	"github.com/beansdev/beans/internal/store"
)

// Engine bundles everything a lifecycle transition needs.
type Engine struct {
	Store *store.Store
	Hooks *hooks.Dispatcher
	Log   *slog.Logger

	// Now is overridable for deterministic tests; defaults to time.Now.
	Now func() time.Time
}

// New builds an Engine for s, wiring a hook dispatcher rooted at the
// store's hooks directory and trust marker.
func New(s *store.Store, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		Store: s,
		Hooks: hooks.New(s.HooksDir(), s.TrustMarkerPath(), log),
		Log:   log,
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().UTC()
}

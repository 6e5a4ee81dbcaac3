// Package hooks dispatches pre-/post- lifecycle hook scripts, gated by a
// trust marker: a JSON snapshot on stdin, stdout and stderr captured
// separately (stderr is what a rejection surfaces), and a process-group
// kill on timeout.
package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/types"
)

// Phase identifies one of the six hook points: pre-/post- x create/update/close.
type Phase string

const (
	PreCreate  Phase = "pre-create"
	PostCreate Phase = "post-create"
	PreUpdate  Phase = "pre-update"
	PostUpdate Phase = "post-update"
	PreClose   Phase = "pre-close"
	PostClose  Phase = "post-close"
)

// Dispatcher fires hook scripts for a store, honoring the trust gate.
type Dispatcher struct {
	HooksDir        string
	TrustMarkerPath string
	Log             *slog.Logger
	Timeout         time.Duration // 0 means no timeout
}

// New builds a Dispatcher. A nil logger falls back to slog.Default().
func New(hooksDir, trustMarkerPath string, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{HooksDir: hooksDir, TrustMarkerPath: trustMarkerPath, Log: log}
}

// Context is the JSON payload written to a hook's stdin: the bean
// snapshot before the transition and the proposed change.
type Context struct {
	// RunID correlates a single dispatch's pre-/post- pair across a
	// hook's own logs; it is not persisted anywhere by beans itself.
	RunID  string      `json:"run_id"`
	Phase  Phase       `json:"phase"`
	Bean   *types.Bean `json:"bean"`
	Change any         `json:"change,omitempty"`
}

func (d *Dispatcher) trusted() bool {
	_, err := os.Stat(d.TrustMarkerPath)
	return err == nil
}

// Trust establishes the trust marker.
func Trust(trustMarkerPath string) error {
	f, err := os.OpenFile(trustMarkerPath, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return beanerr.WrapIO(trustMarkerPath, err)
	}
	return f.Close()
}

// Run dispatches the hook for phase, if one exists and the store is
// trusted. A missing hook executable is a silent no-op. Absent trust,
// dispatch logs a one-line notice and is a no-op (never an error). A
// non-zero exit from a pre-* hook returns a HookRejectedError carrying
// its stderr; post-* hooks never block the transition that already
// committed, so their failures are only logged.
func (d *Dispatcher) Run(ctx context.Context, phase Phase, hctx Context) error {
	path := filepath.Join(d.HooksDir, string(phase))
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if !d.trusted() {
		d.Log.Info("hooks not trusted, skipping", "phase", phase)
		return nil
	}

	if hctx.RunID == "" {
		hctx.RunID = uuid.NewString()
	}
	payload, err := json.Marshal(hctx)
	if err != nil {
		return beanerr.Wrapf(beanerr.ErrIO, "marshal hook context: %v", err)
	}

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path, hctx.Bean.ID, string(phase))
	cmd.Stdin = bytes.NewReader(payload)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() != nil && cmd.Process != nil {
		// Timed out: kill the whole process group, not just the direct
		// child, in case the hook spawned its own subprocesses.
		_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	if runErr == nil {
		return nil
	}

	var exitErr *exec.ExitError
	isExit := errors.As(runErr, &exitErr)
	if !isExit {
		return beanerr.Wrapf(beanerr.ErrIO, "hook %s: %v", phase, runErr)
	}

	if phase == PreCreate || phase == PreUpdate || phase == PreClose {
		return &beanerr.HookRejectedError{Phase: string(phase), Stderr: stderr.String()}
	}
	d.Log.Warn("post-hook failed, transition already committed", "phase", phase, "stderr", stderr.String())
	return nil
}

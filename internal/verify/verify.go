// Package verify spawns a bean's verify command and captures its result.
// It is the only package that shells out on behalf of a bean's own
// command text (internal/hooks shells out too, but for hook scripts).
package verify

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// OutputCap bounds captured combined stdout/stderr to a generous cap so a
// runaway verify command can't exhaust memory.
const OutputCap = 1 << 20 // 1 MiB

var tracer = otel.Tracer("github.com/beansdev/beans/internal/verify")

// Result is the outcome of running a verify command.
type Result struct {
	ExitCode int
	Output   string // combined stdout+stderr, middle-truncated to OutputCap
	Elapsed  time.Duration
	Passed   bool
}

// Run executes command as a shell script fragment — not auto-escaped, it
// is run verbatim as the caller authored it — in dir (the project root,
// one level above the store root). The invocation is wrapped in an
// OpenTelemetry span so BEANS_OTEL_STDOUT=1 can surface verify timing
// without changing verify's exit-code semantics.
func Run(ctx context.Context, dir, command string) (Result, error) {
	ctx, span := tracer.Start(ctx, "bean.verify")
	defer span.End()

	start := time.Now()
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir

	capped := &cappedWriter{limit: OutputCap}
	cmd.Stdout = capped
	cmd.Stderr = capped

	runErr := cmd.Run()
	elapsed := time.Since(start)

	exitCode := 0
	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			// Failed to even start (e.g. shell missing): report as a
			// generic non-zero failure rather than propagating a Go error,
			// since the lifecycle layer only distinguishes pass/fail.
			exitCode = 1
		}
	}

	span.SetAttributes(
		attribute.Int("bean.verify.exit_code", exitCode),
		attribute.Int64("bean.verify.elapsed_ms", elapsed.Milliseconds()),
	)
	if exitCode != 0 {
		span.SetStatus(codes.Error, "verify failed")
	}

	return Result{
		ExitCode: exitCode,
		Output:   capped.String(),
		Elapsed:  elapsed,
		Passed:   exitCode == 0,
	}, nil
}

// cappedWriter accumulates up to `limit` bytes, then starts dropping the
// middle: it keeps the first half and the last half of limit, discarding
// whatever arrives in between, without ever buffering unbounded output.
type cappedWriter struct {
	limit int
	head  bytes.Buffer
	tail  bytes.Buffer
	total int
}

func (w *cappedWriter) Write(p []byte) (int, error) {
	n := len(p)
	w.total += n
	half := w.limit / 2
	if w.head.Len() < half {
		room := half - w.head.Len()
		if room > len(p) {
			room = len(p)
		}
		w.head.Write(p[:room])
		p = p[room:]
	}
	if len(p) > 0 {
		w.tail.Write(p)
		if w.tail.Len() > half {
			excess := w.tail.Len() - half
			w.tail.Next(excess)
		}
	}
	return n, nil
}

func (w *cappedWriter) String() string {
	if w.total <= w.limit {
		return w.head.String() + w.tail.String()
	}
	return w.head.String() + "\n... output truncated ...\n" + w.tail.String()
}

package hooks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/types"
)

func writeHook(t *testing.T, dir, name, script string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
}

func TestRunSkippedWhenUntrusted(t *testing.T) {
	dir := t.TempDir()
	writeHook(t, dir, "pre-close", "#!/bin/sh\nexit 1\n")
	d := New(dir, filepath.Join(dir, ".hooks-trusted"), nil)

	err := d.Run(context.Background(), PreClose, Context{Bean: &types.Bean{ID: "bd-1"}})
	assert.NoError(t, err, "untrusted store must never block a transition")
}

func TestRunSkippedWhenHookMissing(t *testing.T) {
	dir := t.TempDir()
	trustPath := filepath.Join(dir, ".hooks-trusted")
	require.NoError(t, Trust(trustPath))
	d := New(dir, trustPath, nil)

	err := d.Run(context.Background(), PreClose, Context{Bean: &types.Bean{ID: "bd-1"}})
	assert.NoError(t, err)
}

func TestPreHookRejectionAbortsTransition(t *testing.T) {
	dir := t.TempDir()
	trustPath := filepath.Join(dir, ".hooks-trusted")
	require.NoError(t, Trust(trustPath))
	writeHook(t, dir, "pre-close", "#!/bin/sh\necho 'nope' >&2\nexit 3\n")
	d := New(dir, trustPath, nil)

	err := d.Run(context.Background(), PreClose, Context{Bean: &types.Bean{ID: "bd-1"}})
	require.Error(t, err)
	assert.True(t, beanerr.Is(err, beanerr.ErrHookRejected))
	assert.Contains(t, err.Error(), "nope")
}

func TestPostHookFailureDoesNotError(t *testing.T) {
	dir := t.TempDir()
	trustPath := filepath.Join(dir, ".hooks-trusted")
	require.NoError(t, Trust(trustPath))
	writeHook(t, dir, "post-close", "#!/bin/sh\nexit 1\n")
	d := New(dir, trustPath, nil)

	err := d.Run(context.Background(), PostClose, Context{Bean: &types.Bean{ID: "bd-1"}})
	assert.NoError(t, err)
}

func TestPreHookSuccessPassesStdinContext(t *testing.T) {
	dir := t.TempDir()
	trustPath := filepath.Join(dir, ".hooks-trusted")
	require.NoError(t, Trust(trustPath))
	// Fail unless stdin contains the bean ID, proving the JSON context arrived.
	writeHook(t, dir, "pre-create", "#!/bin/sh\ngrep -q bd-42 || exit 1\n")
	d := New(dir, trustPath, nil)

	err := d.Run(context.Background(), PreCreate, Context{Bean: &types.Bean{ID: "bd-42"}})
	assert.NoError(t, err)
}

func TestRunPassesPositionalArgs(t *testing.T) {
	dir := t.TempDir()
	trustPath := filepath.Join(dir, ".hooks-trusted")
	require.NoError(t, Trust(trustPath))
	// Fail unless argv is exactly <bean-id> <phase>.
	writeHook(t, dir, "pre-close", "#!/bin/sh\n[ \"$1\" = bd-7 ] && [ \"$2\" = pre-close ] || exit 1\n")
	d := New(dir, trustPath, nil)

	err := d.Run(context.Background(), PreClose, Context{Bean: &types.Bean{ID: "bd-7"}})
	assert.NoError(t, err)
}

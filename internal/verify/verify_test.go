package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSuccess(t *testing.T) {
	res, err := Run(context.Background(), t.TempDir(), "echo hello; exit 0")
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Output, "hello")
}

func TestRunFailure(t *testing.T) {
	res, err := Run(context.Background(), t.TempDir(), "echo boom; exit 7")
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, 7, res.ExitCode)
}

func TestRunWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	res, err := Run(context.Background(), dir, "pwd")
	require.NoError(t, err)
	assert.Contains(t, res.Output, dir)
}

func TestCappedWriterTruncatesMiddle(t *testing.T) {
	w := &cappedWriter{limit: 20}
	_, _ = w.Write([]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	out := w.String()
	assert.Contains(t, out, "truncated")
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beansdev/beans/internal/types"
)

func TestSaveAndLoadLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := types.DefaultConfig("demo")
	require.NoError(t, Save(path, cfg))

	got, err := LoadLocal(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", got.Project)
	assert.Equal(t, int64(1), got.NextID)
}

func TestAllocateNextIDIncrements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(path, types.DefaultConfig("demo")))

	first, err := AllocateNextID(path)
	require.NoError(t, err)
	second, err := AllocateNextID(path)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}

func TestLoadLocalMissing(t *testing.T) {
	_, err := LoadLocal(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

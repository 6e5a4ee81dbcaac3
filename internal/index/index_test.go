package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beansdev/beans/internal/document"
	"github.com/beansdev/beans/internal/store"
	"github.com/beansdev/beans/internal/types"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := store.Init(dir, "test-project")
	require.NoError(t, err)
	return s
}

func writeBean(t *testing.T, s *store.Store, id, title string, status types.Status) *types.Bean {
	t.Helper()
	b := &types.Bean{
		ID:        id,
		Title:     title,
		Status:    status,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
		Verify:    "true",
	}
	_, err := s.Save(b, document.Frontmatter)
	require.NoError(t, err)
	return b
}

func TestBuildSortsByNaturalOrder(t *testing.T) {
	s := newTestStore(t)
	writeBean(t, s, "bd-10", "ten", types.StatusOpen)
	writeBean(t, s, "bd-2", "two", types.StatusOpen)
	writeBean(t, s, "bd-1", "one", types.StatusOpen)

	idx, warnings, err := Build(context.Background(), s, false)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, idx.Entries, 3)
	assert.Equal(t, []string{"bd-1", "bd-2", "bd-10"}, []string{idx.Entries[0].ID, idx.Entries[1].ID, idx.Entries[2].ID})
}

func TestBuildDetectsDuplicateID(t *testing.T) {
	s := newTestStore(t)
	writeBean(t, s, "bd-1", "one", types.StatusOpen)
	// Force a duplicate by writing a second file for the same ID directly.
	dup := filepath.Join(s.Root, "bd-1-other.md")
	data, err := document.Emit(&types.Bean{ID: "bd-1", Title: "dup"}, document.Frontmatter)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dup, data, 0o644))

	_, _, err = Build(context.Background(), s, false)
	assert.Error(t, err)
}

func TestEnsureFreshRebuildsWhenStale(t *testing.T) {
	s := newTestStore(t)
	writeBean(t, s, "bd-1", "one", types.StatusOpen)

	idx, _, err := EnsureFresh(context.Background(), s, false)
	require.NoError(t, err)
	require.Len(t, idx.Entries, 1)

	stale, err := Stale(s, s.IndexPath(), false)
	require.NoError(t, err)
	assert.False(t, stale)

	time.Sleep(10 * time.Millisecond)
	writeBean(t, s, "bd-2", "two", types.StatusOpen)

	stale, err = Stale(s, s.IndexPath(), false)
	require.NoError(t, err)
	assert.True(t, stale)

	idx2, _, err := EnsureFresh(context.Background(), s, false)
	require.NoError(t, err)
	assert.Len(t, idx2.Entries, 2)
}

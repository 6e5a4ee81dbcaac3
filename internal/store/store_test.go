package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beansdev/beans/internal/document"
	"github.com/beansdev/beans/internal/types"
)

func TestInitAndDiscover(t *testing.T) {
	dir := t.TempDir()
	s, err := Init(dir, "demo")
	require.NoError(t, err)
	assert.Equal(t, dir, s.Root)

	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	found, err := Discover(sub)
	require.NoError(t, err)
	assert.Equal(t, dir, found.Root)
}

func TestDiscoverNotFound(t *testing.T) {
	_, err := Discover(t.TempDir())
	assert.Error(t, err)
}

func TestSaveAndResolveAndLoad(t *testing.T) {
	s, err := Init(t.TempDir(), "demo")
	require.NoError(t, err)

	b := &types.Bean{ID: "1", Title: "fix it", Slug: "fix-it", Status: types.StatusOpen}
	_, err = s.Save(b, document.Frontmatter)
	require.NoError(t, err)

	path, archived, err := s.Resolve("1")
	require.NoError(t, err)
	assert.False(t, archived)
	assert.Equal(t, "1-fix-it.md", filepath.Base(path))

	got, form, err := s.Load("1")
	require.NoError(t, err)
	assert.Equal(t, document.Frontmatter, form)
	assert.Equal(t, "fix it", got.Title)
}

func TestResolveNotFound(t *testing.T) {
	s, err := Init(t.TempDir(), "demo")
	require.NoError(t, err)
	_, _, err = s.Resolve("404")
	assert.Error(t, err)
}

func TestSaveRemovesStaleSiblingOnSlugChange(t *testing.T) {
	s, err := Init(t.TempDir(), "demo")
	require.NoError(t, err)

	b := &types.Bean{ID: "1", Title: "old title", Slug: "old-title", Status: types.StatusOpen}
	_, err = s.Save(b, document.Frontmatter)
	require.NoError(t, err)

	b.Slug = "new-title"
	_, err = s.Save(b, document.Frontmatter)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(s.Root, "1-*.md"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.Equal(t, "1-new-title.md", filepath.Base(matches[0]))
}

func TestArchiveAndUnarchive(t *testing.T) {
	s, err := Init(t.TempDir(), "demo")
	require.NoError(t, err)
	b := &types.Bean{ID: "1", Title: "t", Slug: "t", Status: types.StatusClosed}
	path, err := s.Save(b, document.Frontmatter)
	require.NoError(t, err)

	closedAt := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	archivedPath, err := s.Archive(path, closedAt)
	require.NoError(t, err)
	assert.Contains(t, archivedPath, filepath.Join("archive", "2026", "03"))

	_, archived, err := s.Resolve("1")
	require.NoError(t, err)
	assert.True(t, archived)

	restoredPath, err := s.Unarchive(archivedPath)
	require.NoError(t, err)
	_, archived, err = s.Resolve("1")
	require.NoError(t, err)
	assert.False(t, archived)
	assert.Equal(t, s.Root, filepath.Dir(restoredPath))
}

func TestDuplicateIDDetection(t *testing.T) {
	s, err := Init(t.TempDir(), "demo")
	require.NoError(t, err)
	_, err = s.Save(&types.Bean{ID: "1", Title: "a", Slug: "a"}, document.Frontmatter)
	require.NoError(t, err)

	data, err := document.Emit(&types.Bean{ID: "1", Title: "b", Slug: "b"}, document.Frontmatter)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.Root, "1-b.md"), data, 0o644))

	_, _, err = s.Resolve("1")
	assert.Error(t, err)
}

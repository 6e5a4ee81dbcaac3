// Package index builds and persists a flattened, read-only projection of
// a store. The cache is never authoritative: it may be deleted and
// rebuilt, and staleness is always checked against bean-file modification
// times before a caller trusts it.
package index

import (
	"context"
	"os"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/beanid"
	"github.com/beansdev/beans/internal/store"
	"github.com/beansdev/beans/internal/types"
)

// Warning is a non-fatal fault surfaced during a build, such as a bean
// file mixing document forms within the same tree.
type Warning struct {
	Message string
}

// Build walks the active tree and, if includeArchive is true, the archive
// tree, producing a sorted Index. The two directory listings are
// independent and I/O-bound, so they're taken concurrently via errgroup;
// each listed file is then parsed in full (body included), one after
// another.
func Build(ctx context.Context, s *store.Store, includeArchive bool) (*types.Index, []Warning, error) {
	var activePaths, archivePaths []string

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		paths, err := s.WalkActive()
		if err != nil {
			return err
		}
		activePaths = paths
		return nil
	})
	if includeArchive {
		g.Go(func() error {
			paths, err := s.WalkArchive()
			if err != nil {
				return err
			}
			archivePaths = paths
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	seen := make(map[string]string) // id -> first path seen
	var entries []types.IndexEntry
	var warnings []Warning
	legacySeen, canonicalSeen := false, false

	load := func(path string, archived bool) error {
		b, _, err := s.LoadPath(path, archived)
		if err != nil {
			return err
		}
		if err := beanid.Validate(b.ID); err != nil {
			return beanerr.Wrapf(beanerr.ErrValidation, "bean file %s: %v", path, err)
		}
		if prior, dup := seen[b.ID]; dup {
			return beanerr.Wrapf(beanerr.ErrDuplicate, "duplicate id %s: %s and %s", b.ID, prior, path)
		}
		seen[b.ID] = path
		entries = append(entries, types.FromBean(b))
		return nil
	}

	for _, p := range activePaths {
		if err := load(p, false); err != nil {
			return nil, nil, err
		}
		markExt(p, &legacySeen, &canonicalSeen)
	}
	for _, p := range archivePaths {
		if err := load(p, true); err != nil {
			return nil, nil, err
		}
		markExt(p, &legacySeen, &canonicalSeen)
	}

	if legacySeen && canonicalSeen {
		warnings = append(warnings, Warning{Message: "store contains both canonical (.md) and legacy (.yml) bean files"})
	}

	sort.Slice(entries, func(i, j int) bool {
		return beanid.Less(entries[i].ID, entries[j].ID)
	})

	return &types.Index{Entries: entries, BuiltAt: time.Now().UTC()}, warnings, nil
}

func markExt(path string, legacySeen, canonicalSeen *bool) {
	switch {
	case hasSuffix(path, "."+store.LegacyExt):
		*legacySeen = true
	case hasSuffix(path, "."+store.CanonicalExt):
		*canonicalSeen = true
	}
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

// Load reads the persisted cache at path, or returns ErrNotFound if it
// does not exist yet.
func Load(path string) (*types.Index, error) {
	var idx types.Index
	if _, err := toml.DecodeFile(path, &idx); err != nil {
		if os.IsNotExist(err) {
			return nil, beanerr.Wrapf(beanerr.ErrNotFound, "index at %s", path)
		}
		return nil, beanerr.Wrapf(beanerr.ErrIO, "decode index at %s: %v", path, err)
	}
	return &idx, nil
}

// Save persists idx atomically, mirroring the store's temp-then-rename
// discipline.
func Save(path string, idx *types.Index) error {
	tmp, err := os.CreateTemp(dirOf(path), ".beans-index-tmp-*")
	if err != nil {
		return beanerr.WrapIO(path, err)
	}
	tmpName := tmp.Name()
	enc := toml.NewEncoder(tmp)
	encErr := enc.Encode(idx)
	closeErr := tmp.Close()
	if encErr != nil {
		os.Remove(tmpName)
		return beanerr.WrapIO(path, encErr)
	}
	if closeErr != nil {
		os.Remove(tmpName)
		return beanerr.WrapIO(path, closeErr)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return beanerr.WrapIO(path, err)
	}
	return nil
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}

// Stale reports whether the cache at cachePath needs rebuilding: true if
// it's missing, or if any active bean file has a newer modification time
// than the cache itself. Archived files are excluded from the comparison
// unless includeArchive is set, since most commands never touch archived
// data.
func Stale(s *store.Store, cachePath string, includeArchive bool) (bool, error) {
	cacheInfo, err := os.Stat(cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, beanerr.WrapIO(cachePath, err)
	}

	paths, err := s.WalkActive()
	if err != nil {
		return false, err
	}
	if includeArchive {
		archived, err := s.WalkArchive()
		if err != nil {
			return false, err
		}
		paths = append(paths, archived...)
	}

	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return false, beanerr.WrapIO(p, err)
		}
		if fi.ModTime().After(cacheInfo.ModTime()) {
			return true, nil
		}
	}
	return false, nil
}

// EnsureFresh loads the cache if fresh, otherwise rebuilds and persists it.
func EnsureFresh(ctx context.Context, s *store.Store, includeArchive bool) (*types.Index, []Warning, error) {
	cachePath := s.IndexPath()
	stale, err := Stale(s, cachePath, includeArchive)
	if err != nil {
		return nil, nil, err
	}
	if !stale {
		idx, err := Load(cachePath)
		if err == nil {
			return idx, nil, nil
		}
		if !beanerr.Is(err, beanerr.ErrNotFound) {
			return nil, nil, err
		}
	}
	idx, warnings, err := Build(ctx, s, includeArchive)
	if err != nil {
		return nil, nil, err
	}
	if err := Save(cachePath, idx); err != nil {
		return nil, nil, err
	}
	return idx, warnings, nil
}

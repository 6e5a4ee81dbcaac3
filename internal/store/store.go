// Package store resolves bean identifiers to files, loads and saves bean
// documents atomically, and moves beans between the active tree and the
// dated archive tree. It is the only package that touches bean files
// directly; everything above it (index, graph, lifecycle) goes through
// here. Every write is a temp-file-then-rename so readers never observe
// a partial file.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/beanid"
	"github.com/beansdev/beans/internal/config"
	"github.com/beansdev/beans/internal/document"
	"github.com/beansdev/beans/internal/types"
)

const (
	// MarkerDir is the directory Discover walks ancestors looking for.
	MarkerDir = ".beans"

	CanonicalExt = "md"
	LegacyExt    = "yml"
	StructExt    = "toml"

	HooksDirName    = "hooks"
	TrustMarkerName = ".hooks-trusted"
	ArchiveDirName  = "archive"
	ConfigFileName  = "config." + StructExt
	IndexFileName   = "index." + StructExt
)

// Store is a handle on one beans store rooted at Root (the directory
// containing config.toml, index.toml, and bean files — i.e. the
// directory that held the .beans marker, not the marker itself).
type Store struct {
	Root string
}

// Discover walks from start up through parent directories looking for a
// ".beans" marker directory, returning a Store rooted at the directory
// that contains it.
func Discover(start string) (*Store, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, beanerr.WrapIO(start, err)
	}
	for {
		marker := filepath.Join(dir, MarkerDir)
		if fi, err := os.Stat(marker); err == nil && fi.IsDir() {
			return &Store{Root: dir}, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, beanerr.Wrapf(beanerr.ErrNotFound, "no %s store found above %s", MarkerDir, start)
		}
		dir = parent
	}
}

// Init creates a new store rooted at dir: the marker directory, an empty
// hooks directory, and a default config.toml.
func Init(dir, project string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, MarkerDir), 0o755); err != nil {
		return nil, beanerr.WrapIO(dir, err)
	}
	if err := os.MkdirAll(filepath.Join(dir, HooksDirName), 0o755); err != nil {
		return nil, beanerr.WrapIO(dir, err)
	}
	s := &Store{Root: dir}
	if _, err := os.Stat(s.ConfigPath()); os.IsNotExist(err) {
		if err := config.Save(s.ConfigPath(), types.DefaultConfig(project)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ProjectRoot is the directory verify commands run in: one level above
// the store root.
func (s *Store) ProjectRoot() string {
	return filepath.Dir(s.Root)
}

func (s *Store) ArchiveRoot() string {
	return filepath.Join(s.Root, ArchiveDirName)
}

func (s *Store) ConfigPath() string {
	return filepath.Join(s.Root, ConfigFileName)
}

func (s *Store) IndexPath() string {
	return filepath.Join(s.Root, IndexFileName)
}

func (s *Store) HooksDir() string {
	return filepath.Join(s.Root, HooksDirName)
}

func (s *Store) TrustMarkerPath() string {
	return filepath.Join(s.Root, TrustMarkerName)
}

// Resolve finds the single file backing id, searching the active tree
// first (canonical then legacy extension) and falling back to the
// archive tree. Zero matches is ErrNotFound; more than one is
// ErrDuplicate, naming every matching path.
func (s *Store) Resolve(id string) (path string, archived bool, err error) {
	active, err := globID(s.Root, id)
	if err != nil {
		return "", false, err
	}
	if len(active) == 1 {
		return active[0], false, nil
	}
	if len(active) > 1 {
		return "", false, duplicateErr(id, active)
	}

	archive, err := globArchive(s.ArchiveRoot(), id)
	if err != nil {
		return "", false, err
	}
	if len(archive) == 1 {
		return archive[0], true, nil
	}
	if len(archive) > 1 {
		return "", false, duplicateErr(id, archive)
	}
	return "", false, beanerr.Wrapf(beanerr.ErrNotFound, "bean %s", id)
}

func duplicateErr(id string, paths []string) error {
	return beanerr.Wrapf(beanerr.ErrDuplicate, "bean %s resolves to multiple files: %s", id, strings.Join(paths, ", "))
}

func globID(dir, id string) ([]string, error) {
	var matches []string
	for _, ext := range []string{CanonicalExt, LegacyExt} {
		pattern := filepath.Join(dir, fmt.Sprintf("%s-*.%s", id, ext))
		m, err := filepath.Glob(pattern)
		if err != nil {
			return nil, beanerr.WrapIO(pattern, err)
		}
		matches = append(matches, m...)
		// Legacy form may also be written without a slug suffix.
		bare := filepath.Join(dir, fmt.Sprintf("%s.%s", id, ext))
		if fi, err := os.Stat(bare); err == nil && !fi.IsDir() {
			matches = append(matches, bare)
		}
	}
	return dedupe(matches), nil
}

func globArchive(archiveRoot, id string) ([]string, error) {
	var matches []string
	yearDirs, err := os.ReadDir(archiveRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, beanerr.WrapIO(archiveRoot, err)
	}
	for _, yd := range yearDirs {
		if !yd.IsDir() {
			continue
		}
		monthDirs, err := os.ReadDir(filepath.Join(archiveRoot, yd.Name()))
		if err != nil {
			return nil, beanerr.WrapIO(archiveRoot, err)
		}
		for _, md := range monthDirs {
			if !md.IsDir() {
				continue
			}
			dir := filepath.Join(archiveRoot, yd.Name(), md.Name())
			m, err := globID(dir, id)
			if err != nil {
				return nil, err
			}
			matches = append(matches, m...)
		}
	}
	return dedupe(matches), nil
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// Load resolves id and parses its document, returning the bean with Path
// and IsArchived populated.
func (s *Store) Load(id string) (*types.Bean, document.Form, error) {
	path, archived, err := s.Resolve(id)
	if err != nil {
		return nil, 0, err
	}
	return s.LoadPath(path, archived)
}

// LoadPath parses the document at an already-resolved path.
func (s *Store) LoadPath(path string, archived bool) (*types.Bean, document.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, beanerr.WrapIO(path, err)
	}
	b, form, err := document.Parse(data)
	if err != nil {
		return nil, form, fmt.Errorf("%s: %w", path, err)
	}
	rel, err := filepath.Rel(s.Root, path)
	if err != nil {
		rel = path
	}
	b.Path = rel
	b.IsArchived = archived
	return b, form, nil
}

// FilenameFor returns the canonical active-tree filename for a bean.
func FilenameFor(b *types.Bean, ext string) string {
	if b.Slug == "" {
		return fmt.Sprintf("%s.%s", b.ID, ext)
	}
	return fmt.Sprintf("%s-%s.%s", b.ID, b.Slug, ext)
}

// Save atomically writes b in the given form to its active-tree location,
// removing any stale file left over from a prior slug or extension, via
// temp-file-then-rename: readers only ever see a complete old or new file.
func (s *Store) Save(b *types.Bean, form document.Form) (path string, err error) {
	if err := beanid.Validate(b.ID); err != nil {
		return "", err
	}
	dir := s.Root
	ext := CanonicalExt
	if form == document.Flat {
		ext = LegacyExt
	}
	name := FilenameFor(b, ext)
	target := filepath.Join(dir, name)

	data, err := document.Emit(b, form)
	if err != nil {
		return "", err
	}
	if err := atomicWrite(dir, target, data); err != nil {
		return "", err
	}
	if err := s.removeStaleSiblings(dir, b.ID, target); err != nil {
		return "", err
	}
	rel, err := filepath.Rel(s.Root, target)
	if err != nil {
		rel = target
	}
	b.Path = rel
	return target, nil
}

// removeStaleSiblings deletes other active-tree files for the same ID
// (e.g. left over after a slug change or form switch) once target has
// been committed, so Resolve never reports a spurious duplicate.
func (s *Store) removeStaleSiblings(dir, id, target string) error {
	matches, err := globID(dir, id)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if m == target {
			continue
		}
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return beanerr.WrapIO(m, err)
		}
	}
	return nil
}

func atomicWrite(dir, target string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".beans-tmp-*")
	if err != nil {
		return beanerr.WrapIO(dir, err)
	}
	tmpName := tmp.Name()
	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpName)
		return beanerr.WrapIO(tmpName, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpName)
		return beanerr.WrapIO(tmpName, closeErr)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return beanerr.WrapIO(target, err)
	}
	return nil
}

// Archive moves an active bean's file under archive/<YYYY>/<MM>/ keyed
// by closedAt.
func (s *Store) Archive(path string, closedAt time.Time) (newPath string, err error) {
	dir := filepath.Join(s.ArchiveRoot(), closedAt.Format("2006"), closedAt.Format("01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", beanerr.WrapIO(dir, err)
	}
	dest := filepath.Join(dir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return "", beanerr.WrapIO(path, err)
	}
	return dest, nil
}

// Unarchive moves an archived bean's file back to the active tree,
// failing if an active file already claims the same name.
func (s *Store) Unarchive(path string) (newPath string, err error) {
	dest := filepath.Join(s.Root, filepath.Base(path))
	if _, err := os.Stat(dest); err == nil {
		return "", beanerr.Wrapf(beanerr.ErrDuplicate, "active file already exists at %s", dest)
	}
	if err := os.Rename(path, dest); err != nil {
		return "", beanerr.WrapIO(path, err)
	}
	return dest, nil
}

// StageRename moves path aside to a sibling staging name, the first half
// of a stage-then-commit sequence that makes a multi-file rename (as
// Adopt requires) all-or-nothing.
func (s *Store) StageRename(path string) (stagedPath string, err error) {
	stagedPath = path + ".adopt-staged"
	if err := os.Rename(path, stagedPath); err != nil {
		return "", beanerr.WrapIO(path, err)
	}
	return stagedPath, nil
}

// RestoreStaged undoes StageRename, used to unwind a partially-staged
// adopt batch.
func (s *Store) RestoreStaged(stagedPath, originalPath string) error {
	if err := os.Rename(stagedPath, originalPath); err != nil {
		return beanerr.WrapIO(stagedPath, err)
	}
	return nil
}

// Delete removes a bean file outright (active or archived).
func (s *Store) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return beanerr.WrapIO(path, err)
	}
	return nil
}

// WalkActive lists every bean file directly under the store root, sorted
// lexicographically by path (not natural ID order — callers sort by
// parsed ID once loaded).
func (s *Store) WalkActive() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, beanerr.WrapIO(s.Root, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, "."+CanonicalExt) || strings.HasSuffix(name, "."+LegacyExt) {
			out = append(out, filepath.Join(s.Root, name))
		}
	}
	sort.Strings(out)
	return out, nil
}

// WalkArchive lists every bean file under archive/<YYYY>/<MM>/.
func (s *Store) WalkArchive() ([]string, error) {
	root := s.ArchiveRoot()
	var out []string
	years, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, beanerr.WrapIO(root, err)
	}
	for _, y := range years {
		if !y.IsDir() {
			continue
		}
		yearDir := filepath.Join(root, y.Name())
		months, err := os.ReadDir(yearDir)
		if err != nil {
			return nil, beanerr.WrapIO(yearDir, err)
		}
		for _, m := range months {
			if !m.IsDir() {
				continue
			}
			monthDir := filepath.Join(yearDir, m.Name())
			entries, err := os.ReadDir(monthDir)
			if err != nil {
				return nil, beanerr.WrapIO(monthDir, err)
			}
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				name := e.Name()
				if strings.HasSuffix(name, "."+CanonicalExt) || strings.HasSuffix(name, "."+LegacyExt) {
					out = append(out, filepath.Join(monthDir, name))
				}
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

package types

import "time"

// IndexEntry is a flattened, read-only projection of a Bean, sufficient to
// answer queries (ready/blocked/selector expansion) without opening files.
type IndexEntry struct {
	ID        string   `toml:"id"`
	Title     string   `toml:"title"`
	Status    Status   `toml:"status"`
	Priority  int      `toml:"priority"`
	Parent    string   `toml:"parent,omitempty"`
	Deps      []string `toml:"dependencies,omitempty"`
	Requires  []string `toml:"requires,omitempty"`
	Produces  []string `toml:"produces,omitempty"`
	Labels    []string `toml:"labels,omitempty"`
	Assignee  string   `toml:"assignee,omitempty"`
	ClaimedBy string   `toml:"claimed_by,omitempty"`
	Tokens    int      `toml:"tokens,omitempty"`
	Archived  bool     `toml:"archived"`
	Path      string   `toml:"path"`
	UpdatedAt time.Time `toml:"updated_at"`

	IsGoal bool `toml:"is_goal"`
}

// FromBean projects a full Bean down to its index entry.
func FromBean(b *Bean) IndexEntry {
	return IndexEntry{
		ID:        b.ID,
		Title:     b.Title,
		Status:    b.Status,
		Priority:  b.Priority,
		Parent:    b.Parent,
		Deps:      append([]string(nil), b.Dependencies...),
		Requires:  append([]string(nil), b.Requires...),
		Produces:  append([]string(nil), b.Produces...),
		Labels:    append([]string(nil), b.Labels...),
		Assignee:  b.Assignee,
		ClaimedBy: b.ClaimedBy,
		Tokens:    b.Tokens,
		Archived:  b.IsArchived,
		Path:      b.Path,
		UpdatedAt: b.UpdatedAt,
		IsGoal:    b.IsGoal(),
	}
}

// Index is the in-memory, on-disk-cacheable collection of entries, sorted
// by natural ID order (internal/beanid.Less).
type Index struct {
	Entries   []IndexEntry `toml:"entries"`
	BuiltAt   time.Time    `toml:"built_at"`
}

// ByID returns the entry with the given ID, or false if absent.
func (idx *Index) ByID(id string) (IndexEntry, bool) {
	for _, e := range idx.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return IndexEntry{}, false
}

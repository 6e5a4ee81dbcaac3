// Package types defines the shared data model for beans: the Bean record
// itself, its status enum, the flattened index projection, and project
// configuration. Other packages depend on types but never the reverse.
package types

import "time"

// Status is the stored lifecycle state of a Bean. "blocked" is deliberately
// not a member of this enum: it is derived at query time by the graph
// engine, never persisted.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
)

// Valid reports whether s is one of the storable statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	default:
		return false
	}
}

// DefaultPriority is assigned to beans created without an explicit priority.
const DefaultPriority = 2

// MinPriority and MaxPriority bound the priority field; 0 is highest.
const (
	MinPriority = 0
	MaxPriority = 4
)

// Bean is the primary entity: a single task file. Field tags double as the
// YAML frontmatter keys used by the document codec (internal/document) —
// the struct is the single source of truth for the on-disk schema.
type Bean struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Slug  string `yaml:"slug,omitempty"`

	Status   Status `yaml:"status"`
	Priority int    `yaml:"priority"`

	CreatedAt time.Time  `yaml:"created_at"`
	UpdatedAt time.Time  `yaml:"updated_at"`
	ClosedAt  *time.Time `yaml:"closed_at,omitempty"`
	ClaimedAt *time.Time `yaml:"claimed_at,omitempty"`

	Parent       string   `yaml:"parent,omitempty"`
	Dependencies []string `yaml:"dependencies,omitempty"`
	Requires     []string `yaml:"requires,omitempty"`
	Produces     []string `yaml:"produces,omitempty"`

	// Description is the body text in frontmatter form (lives after the
	// closing "---", handled by the document codec, not YAML-encoded
	// there). In flat form it is just another frontmatter key.
	Description LongText `yaml:"description,omitempty"`
	Acceptance  LongText `yaml:"acceptance,omitempty"`
	Design      LongText `yaml:"design,omitempty"`
	Notes       LongText `yaml:"notes,omitempty"`

	Verify      string   `yaml:"verify,omitempty"`
	FailFirst   bool     `yaml:"fail_first,omitempty"`
	Attempts    int      `yaml:"attempts"`
	CloseReason string   `yaml:"close_reason,omitempty"`

	ClaimedBy string   `yaml:"claimed_by,omitempty"`
	Assignee  string   `yaml:"assignee,omitempty"`
	Labels    []string `yaml:"labels,omitempty"`

	IsArchived bool `yaml:"-"` // derived from file location, never serialized

	Tokens        int       `yaml:"tokens,omitempty"`
	TokensUpdated time.Time `yaml:"tokens_updated,omitempty"`

	// Path is the file's location relative to the store root. Not part of
	// the document schema; populated by the store on load.
	Path string `yaml:"-"`
}

// IsGoal reports whether the bean has no verify command, i.e. is a
// non-schedulable goal rather than a spec.
func (b *Bean) IsGoal() bool {
	return b.Verify == ""
}

// Clone returns a deep-enough copy for mutation without aliasing slices.
func (b *Bean) Clone() *Bean {
	c := *b
	c.Dependencies = append([]string(nil), b.Dependencies...)
	c.Requires = append([]string(nil), b.Requires...)
	c.Produces = append([]string(nil), b.Produces...)
	c.Labels = append([]string(nil), b.Labels...)
	if b.ClosedAt != nil {
		t := *b.ClosedAt
		c.ClosedAt = &t
	}
	if b.ClaimedAt != nil {
		t := *b.ClaimedAt
		c.ClaimedAt = &t
	}
	return &c
}

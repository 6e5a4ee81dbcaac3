package lifecycle

import (
	"context"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/beanid"
	"github.com/beansdev/beans/internal/document"
	"github.com/beansdev/beans/internal/hooks"
	"github.com/beansdev/beans/internal/types"
	"github.com/beansdev/beans/internal/verify"
)

// CreateOptions carries every optional field a new bean may be created
// with. Title, Parent, Verify, PassOk, RequireVerifyOrAcceptance and
// ClaimActor steer the transition; the remaining fields are stored
// verbatim.
type CreateOptions struct {
	Title       string
	Parent      string
	Description string
	Acceptance  string
	Design      string
	Notes       string
	Verify      string
	PassOk      bool
	Priority    int
	Assignee    string
	Labels      []string
	Requires    []string
	Produces    []string
	Dependencies []string

	// RequireVerifyOrAcceptance is the per-entry-point policy: "quick"
	// sets this flag true, "create" leaves it false.
	RequireVerifyOrAcceptance bool

	// ClaimActor, if non-empty, atomically claims the new bean for this
	// actor as part of creation.
	ClaimActor string
}

// Create performs the full creation transition. On FailFirstRejected or
// any validation error, no file is written and no ID allocator is
// advanced.
func (e *Engine) Create(ctx context.Context, opts CreateOptions) (*types.Bean, error) {
	if opts.Title == "" {
		return nil, beanerr.Wrapf(beanerr.ErrValidation, "title is required")
	}
	if opts.RequireVerifyOrAcceptance && opts.Verify == "" && opts.Acceptance == "" {
		return nil, beanerr.Wrapf(beanerr.ErrValidation, "quick create requires verify or acceptance")
	}
	if err := e.ensureParentExists(opts.Parent); err != nil {
		return nil, err
	}

	// The fail-first gate runs before ID allocation, not after: next_id
	// must be left untouched on rejection, so the only way to honor both
	// the gate and that invariant is to prove the gate first and allocate
	// only once creation is certain to commit.
	failFirst := opts.Verify != "" && !opts.PassOk
	if failFirst {
		res, err := verify.Run(ctx, e.Store.ProjectRoot(), opts.Verify)
		if err != nil {
			return nil, err
		}
		if res.Passed {
			return nil, beanerr.Wrapf(beanerr.ErrFailFirstRejected, "verify already passes; it proves nothing about %q", opts.Title)
		}
	}

	id, err := e.allocateID(ctx, opts.Parent)
	if err != nil {
		return nil, err
	}
	if _, _, err := e.Store.Resolve(id); err == nil || beanerr.Is(err, beanerr.ErrDuplicate) {
		return nil, beanerr.Wrapf(beanerr.ErrDuplicate, "id %s is already taken", id)
	}

	now := e.now()
	b := &types.Bean{
		ID:           id,
		Title:        opts.Title,
		Slug:         beanid.Slug(opts.Title),
		Status:       types.StatusOpen,
		Priority:     opts.Priority,
		CreatedAt:    now,
		UpdatedAt:    now,
		Parent:       opts.Parent,
		Dependencies: opts.Dependencies,
		Requires:     opts.Requires,
		Produces:     opts.Produces,
		Description:  types.LongText(opts.Description),
		Acceptance:   types.LongText(opts.Acceptance),
		Design:       types.LongText(opts.Design),
		Notes:        types.LongText(opts.Notes),
		Verify:       opts.Verify,
		FailFirst:    failFirst,
		Attempts:     0,
		Assignee:     opts.Assignee,
		Labels:       opts.Labels,
	}

	if opts.ClaimActor != "" {
		b.Status = types.StatusInProgress
		b.ClaimedBy = opts.ClaimActor
		b.ClaimedAt = &now
	}

	if err := e.Hooks.Run(ctx, hooks.PreCreate, hooks.Context{Phase: hooks.PreCreate, Bean: b}); err != nil {
		return nil, err
	}

	if _, err := e.Store.Save(b, document.Frontmatter); err != nil {
		return nil, err
	}

	if err := e.Hooks.Run(ctx, hooks.PostCreate, hooks.Context{Phase: hooks.PostCreate, Bean: b}); err != nil {
		e.Log.Warn("post-create hook failed", "id", b.ID, "err", err)
	}

	return b, nil
}

func (e *Engine) allocateID(ctx context.Context, parent string) (string, error) {
	if parent != "" {
		return e.nextChildSlot(ctx, parent)
	}
	return e.nextTopLevelID()
}

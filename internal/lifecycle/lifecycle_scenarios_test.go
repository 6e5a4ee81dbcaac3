package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/document"
	"github.com/beansdev/beans/internal/graph"
	"github.com/beansdev/beans/internal/index"
	"github.com/beansdev/beans/internal/store"
	"github.com/beansdev/beans/internal/types"
)

// harness wraps a temp store and its engine with Fatalf-wrapping helpers
// for concise scenario tests.
type harness struct {
	t   *testing.T
	ctx context.Context
	s   *store.Store
	e   *Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	s, err := store.Init(t.TempDir(), "scenarios")
	require.NoError(t, err)
	e := New(s, nil)
	return &harness{t: t, ctx: context.Background(), s: s, e: e}
}

func (h *harness) create(opts CreateOptions) *types.Bean {
	h.t.Helper()
	b, err := h.e.Create(h.ctx, opts)
	require.NoError(h.t, err)
	return b
}

func (h *harness) load(id string) *types.Bean {
	h.t.Helper()
	b, _, err := h.s.Load(id)
	require.NoError(h.t, err)
	return b
}

// TestS1FailFirstAcceptance: create(verify="false") succeeds; close
// fails verify, increments attempts, bean stays open.
func TestS1FailFirstAcceptance(t *testing.T) {
	h := newHarness(t)
	b := h.create(CreateOptions{Title: "t", Verify: "exit 1"})
	assert.Equal(t, "1", b.ID)
	assert.True(t, b.FailFirst)
	assert.Equal(t, types.StatusOpen, b.Status)

	_, err := h.e.Close(h.ctx, b.ID, "", false)
	require.Error(t, err)
	assert.True(t, beanerr.Is(err, beanerr.ErrVerifyFailed))

	got := h.load(b.ID)
	assert.Equal(t, 1, got.Attempts)
	assert.Equal(t, types.StatusOpen, got.Status)
}

// TestS2FailFirstRejection: verify already passes -> rejected, store
// unchanged, next_id not advanced.
func TestS2FailFirstRejection(t *testing.T) {
	h := newHarness(t)
	_, err := h.e.Create(h.ctx, CreateOptions{Title: "t", Verify: "exit 0"})
	require.Error(t, err)
	assert.True(t, beanerr.Is(err, beanerr.ErrFailFirstRejected))

	// next_id must not have advanced: the next real create still gets "1".
	b := h.create(CreateOptions{Title: "u", Verify: "exit 1"})
	assert.Equal(t, "1", b.ID)
}

// TestS3ProducesRequiresInference and TestS4ParentAutoClose walk through
// the combined S3/S4 scenario.
func TestS3ProducesRequiresInferenceAndS4ParentAutoClose(t *testing.T) {
	h := newHarness(t)
	parent := h.create(CreateOptions{Title: "P"})
	assert.True(t, parent.IsGoal())

	child1 := h.create(CreateOptions{
		Title: "P.1", Parent: parent.ID, Produces: []string{"X"},
		Verify: "exit 0", PassOk: true,
	})
	child2 := h.create(CreateOptions{
		Title: "P.2", Parent: parent.ID, Requires: []string{"X"},
		Verify: "exit 0", PassOk: true,
	})

	ready := h.ready()
	assert.Equal(t, []string{child1.ID}, ready)

	_, err := h.e.Close(h.ctx, child1.ID, "", false)
	require.NoError(t, err)
	assert.Equal(t, types.StatusClosed, h.load(child1.ID).Status)

	ready = h.ready()
	assert.Equal(t, []string{child2.ID}, ready)

	_, err = h.e.Close(h.ctx, child2.ID, "", false)
	require.NoError(t, err)

	gotParent := h.load(parent.ID)
	assert.Equal(t, types.StatusClosed, gotParent.Status)
	assert.Equal(t, "all children completed", gotParent.CloseReason)
	assert.True(t, gotParent.IsArchived)
}

func (h *harness) ready() []string {
	h.t.Helper()
	idx, _, err := index.Build(h.ctx, h.s, false)
	require.NoError(h.t, err)
	g := graph.New(idx)
	return g.Ready()
}

// TestS5ClaimRace: two sequential claim attempts on the same open bean;
// the second (simulating the loser, since this is a single-threaded
// test) fails with ClaimConflict once the bean is already in_progress.
func TestS5ClaimRace(t *testing.T) {
	h := newHarness(t)
	b := h.create(CreateOptions{Title: "t", Verify: "exit 0", PassOk: true})

	_, err := h.e.Claim(h.ctx, b.ID, "alice", false)
	require.NoError(t, err)

	_, err = h.e.Claim(h.ctx, b.ID, "bob", false)
	require.Error(t, err)
	assert.True(t, beanerr.Is(err, beanerr.ErrStatusConflict) || beanerr.Is(err, beanerr.ErrClaimConflict))

	got := h.load(b.ID)
	assert.Equal(t, types.StatusInProgress, got.Status)
	assert.Equal(t, "alice", got.ClaimedBy)
}

// TestS6CycleRejection: dep_add(a,b) succeeds; dep_add(b,a) fails with
// CycleDetected; b's dependency set is unchanged.
func TestS6CycleRejection(t *testing.T) {
	h := newHarness(t)
	a := h.create(CreateOptions{Title: "a"})
	b := h.create(CreateOptions{Title: "b"})

	require.NoError(t, h.e.DepAdd(h.ctx, a.ID, b.ID))

	err := h.e.DepAdd(h.ctx, b.ID, a.ID)
	require.Error(t, err)
	assert.True(t, beanerr.Is(err, beanerr.ErrCycle))

	gotB := h.load(b.ID)
	assert.Empty(t, gotB.Dependencies)
}

// TestS7AdoptRenumbersAndRewritesReferences: adopting a under a new
// parent renumbers it and rewrites c's dependency on it.
func TestS7AdoptRenumbersAndRewritesReferences(t *testing.T) {
	h := newHarness(t)
	a := h.create(CreateOptions{Title: "a"})
	_ = h.create(CreateOptions{Title: "b"})
	c := h.create(CreateOptions{Title: "c"})
	require.NoError(t, h.e.DepAdd(h.ctx, c.ID, a.ID))

	p := h.create(CreateOptions{Title: "p"})

	require.NoError(t, h.e.Adopt(h.ctx, []string{a.ID}, p.ID))

	newAID := p.ID + ".1"
	adopted := h.load(newAID)
	assert.Equal(t, p.ID, adopted.Parent)

	gotC := h.load(c.ID)
	assert.Equal(t, []string{newAID}, gotC.Dependencies)
}

// TestAdoptCarriesDescendants: adopting a bean with an existing child
// moves the child along with it, rewriting both its ID prefix and its
// Parent field so the two never disagree.
func TestAdoptCarriesDescendants(t *testing.T) {
	h := newHarness(t)
	a := h.create(CreateOptions{Title: "a"})
	child := h.create(CreateOptions{Title: "a child", Parent: a.ID})
	grandchild := h.create(CreateOptions{Title: "a grandchild", Parent: child.ID})
	outsider := h.create(CreateOptions{Title: "depends on grandchild"})
	require.NoError(t, h.e.DepAdd(h.ctx, outsider.ID, grandchild.ID))

	p := h.create(CreateOptions{Title: "p"})

	require.NoError(t, h.e.Adopt(h.ctx, []string{a.ID}, p.ID))

	newAID := p.ID + ".1"
	newChildID := newAID + "." + child.ID[len(a.ID)+1:]
	newGrandchildID := newChildID + "." + grandchild.ID[len(child.ID)+1:]

	gotChild := h.load(newChildID)
	assert.Equal(t, newAID, gotChild.Parent)

	gotGrandchild := h.load(newGrandchildID)
	assert.Equal(t, newChildID, gotGrandchild.Parent)

	gotOutsider := h.load(outsider.ID)
	assert.Equal(t, []string{newGrandchildID}, gotOutsider.Dependencies)
}

// TestS8TidyReleasesStaleClaims: a bean claimed longer ago than the
// staleness bound is reset to open by Tidy.
func TestS8TidyReleasesStaleClaims(t *testing.T) {
	h := newHarness(t)
	b := h.create(CreateOptions{Title: "t", Verify: "exit 0", PassOk: true})

	_, err := h.e.Claim(h.ctx, b.ID, "alice", false)
	require.NoError(t, err)

	// Backdate the claim past the staleness bound directly on disk.
	got := h.load(b.ID)
	stale := h.e.now().Add(-2 * time.Hour)
	got.ClaimedAt = &stale
	_, err = h.s.Save(got, formOf(h, b.ID))
	require.NoError(t, err)

	report, err := h.e.Tidy(h.ctx, time.Hour)
	require.NoError(t, err)
	assert.Contains(t, report.ClaimsReleased, b.ID)

	final := h.load(b.ID)
	assert.Equal(t, types.StatusOpen, final.Status)
	assert.Empty(t, final.ClaimedBy)
	assert.Nil(t, final.ClaimedAt)
}

func formOf(h *harness, id string) document.Form {
	_, form, err := h.s.Load(id)
	require.NoError(h.t, err)
	return form
}

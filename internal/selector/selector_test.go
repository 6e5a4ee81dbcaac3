package selector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beansdev/beans/internal/types"
)

func sampleIndex() *types.Index {
	now := time.Now().UTC()
	return &types.Index{Entries: []types.IndexEntry{
		{ID: "bd-1", Status: types.StatusOpen, IsGoal: false, UpdatedAt: now.Add(-time.Hour)},
		{ID: "bd-2", Status: types.StatusOpen, Deps: []string{"bd-1"}, UpdatedAt: now},
		{ID: "bd-3", Status: types.StatusClosed, Parent: "", ClaimedBy: "alice", UpdatedAt: now.Add(-2 * time.Hour)},
		{ID: "bd-1.1", Parent: "bd-1", Status: types.StatusOpen, Assignee: "alice", UpdatedAt: now.Add(-3 * time.Hour)},
	}}
}

func TestExpandLiteralID(t *testing.T) {
	idx := sampleIndex()
	ids, err := Expand(idx, Context{}, "bd-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bd-1"}, ids)
}

func TestExpandLiteralIDNotFound(t *testing.T) {
	idx := sampleIndex()
	_, err := Expand(idx, Context{}, "bd-404")
	assert.Error(t, err)
}

func TestExpandLatest(t *testing.T) {
	idx := sampleIndex()
	ids, err := Expand(idx, Context{}, "@latest")
	require.NoError(t, err)
	assert.Equal(t, []string{"bd-2"}, ids)
}

func TestExpandReadyAndBlocked(t *testing.T) {
	idx := sampleIndex()
	ready, err := Expand(idx, Context{}, "@ready")
	require.NoError(t, err)
	assert.Equal(t, []string{"bd-1", "bd-1.1"}, ready)

	blocked, err := Expand(idx, Context{}, "@blocked")
	require.NoError(t, err)
	assert.Equal(t, []string{"bd-2"}, blocked)
}

func TestExpandMe(t *testing.T) {
	idx := sampleIndex()
	ids, err := Expand(idx, Context{Actor: "alice"}, "@me")
	require.NoError(t, err)
	assert.Equal(t, []string{"bd-1.1"}, ids)
}

func TestExpandMeNoActor(t *testing.T) {
	idx := sampleIndex()
	_, err := Expand(idx, Context{}, "@me")
	assert.Error(t, err)
}

func TestExpandParent(t *testing.T) {
	idx := sampleIndex()
	ids, err := Expand(idx, Context{CurrentBean: "bd-1.1"}, "@parent")
	require.NoError(t, err)
	assert.Equal(t, []string{"bd-1"}, ids)
}

func TestExpandParentNoneFails(t *testing.T) {
	idx := sampleIndex()
	_, err := Expand(idx, Context{CurrentBean: "bd-1"}, "@parent")
	assert.Error(t, err)
}

func TestExpandOneFailsOnMultiple(t *testing.T) {
	idx := &types.Index{Entries: []types.IndexEntry{
		{ID: "bd-1", Status: types.StatusOpen, UpdatedAt: time.Now()},
		{ID: "bd-2", Status: types.StatusOpen, UpdatedAt: time.Now()},
	}}
	_, err := ExpandOne(idx, Context{}, "@ready")
	assert.Error(t, err)
}

package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beansdev/beans/internal/types"
)

func sampleBean() *types.Bean {
	return &types.Bean{
		ID:          "bd-1",
		Title:       "fix the thing",
		Slug:        "fix-the-thing",
		Status:      types.StatusOpen,
		Priority:    2,
		Description: "line one\nline two",
		Verify:      "go test ./...",
	}
}

func TestRoundTripFrontmatter(t *testing.T) {
	b := sampleBean()
	data, err := Emit(b, Frontmatter)
	require.NoError(t, err)

	got, form, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Frontmatter, form)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, b.Title, got.Title)
	assert.Equal(t, b.Description, got.Description)
	assert.Equal(t, b.Verify, got.Verify)
}

func TestRoundTripFlat(t *testing.T) {
	b := sampleBean()
	data, err := Emit(b, Flat)
	require.NoError(t, err)

	got, form, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Flat, form)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, b.Description, got.Description)
}

// TestBodyContainingDelimiter checks the round-trip law: a description
// body containing literal "---" lines must survive parse -> emit ->
// parse unchanged.
func TestBodyContainingDelimiter(t *testing.T) {
	b := sampleBean()
	b.Description = "before\n---\nafter\n---\nmore"

	data, err := Emit(b, Frontmatter)
	require.NoError(t, err)

	got, form, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Frontmatter, form)
	assert.Equal(t, b.Description, got.Description)

	// Re-emit and re-parse to confirm stability across two full cycles.
	data2, err := Emit(got, Frontmatter)
	require.NoError(t, err)
	got2, _, err := Parse(data2)
	require.NoError(t, err)
	assert.Equal(t, b.Description, got2.Description)
}

func TestParseFlatDetectionWithoutDelimiters(t *testing.T) {
	b := sampleBean()
	data, err := Emit(b, Flat)
	require.NoError(t, err)
	require.False(t, strings.HasPrefix(string(data), delim))

	_, form, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Flat, form)
}

func TestParseMissingClosingDelimiter(t *testing.T) {
	_, _, err := Parse([]byte("---\nid: bd-1\ntitle: x\n"))
	assert.Error(t, err)
}

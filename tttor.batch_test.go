package tttor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEngine_ExpandBatch_IsolatesFailures(t *testing.T) {
	dict := Dictionary{"X": "Y"}
	items := []BatchItem{
		{ID: "first", Text: "a" + invocation("X", "old")},
		{ID: "second", Text: invocation("missing", "")},
		{ID: "third", Text: "plain"},
	}

	result := MustNew(WithLogger(zap.NewNop())).ExpandBatch(items, dict)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "second", result.Failed[0].ID)
	assert.Equal(t, "undefined macro: missing", result.Failed[0].Message)
	assert.True(t, IsMacroError(result.Failed[0].Err))
	assert.True(t, result.HasFailures())

	require.Len(t, result.Changed, 1)
	assert.Equal(t, "first", result.Changed[0].ID)
	assert.Equal(t, "a"+invocation("X", "old"), result.Changed[0].OldText)
	assert.Equal(t, "a"+invocation("X", "Y"), result.Changed[0].NewText)

	assert.Equal(t, []string{"third"}, result.Unchanged)
	assert.Empty(t, result.Skipped)
}

func TestEngine_ExpandBatch_UnchangedIsNotReported(t *testing.T) {
	dict := Dictionary{"X": "Y"}
	items := []BatchItem{
		{ID: "up-to-date", Text: invocation("X", "Y")},
	}

	result := ExpandBatch(items, dict)

	assert.Empty(t, result.Changed)
	assert.Empty(t, result.Failed)
	assert.False(t, result.HasFailures())
	assert.Equal(t, []string{"up-to-date"}, result.Unchanged)
}

func TestEngine_ExpandBatch_SkipsEmptyText(t *testing.T) {
	result := ExpandBatch([]BatchItem{{ID: "empty"}}, Dictionary{})

	assert.Equal(t, []string{"empty"}, result.Skipped)
	assert.Empty(t, result.Changed)
	assert.Empty(t, result.Unchanged)
	assert.Empty(t, result.Failed)
}

func TestEngine_ExpandBatch_AllFailuresCollected(t *testing.T) {
	items := []BatchItem{
		{ID: "a", Text: beginMarker("X")},
		{ID: "b", Text: endMarker("X")},
		{ID: "c", Text: invocation("X", "")},
	}

	result := ExpandBatch(items, Dictionary{"X": invocation("X", "")})

	require.Len(t, result.Failed, 3)
	assert.Equal(t, "a", result.Failed[0].ID)
	assert.Equal(t, "b", result.Failed[1].ID)
	assert.Equal(t, "c", result.Failed[2].ID)
	assert.Equal(t, "circular macro reference: X => X", result.Failed[2].Message)
}

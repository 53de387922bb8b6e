package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func begin(name string) string { return "<!-- macro-begin " + name + " -->" }
func end(name string) string   { return "<!-- macro-end " + name + " -->" }

func invoke(name, content string) string { return begin(name) + content + end(name) }

func TestExpander_Expand_Retention(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		dict     map[string]string
		retain   bool
		expected string
	}{
		{
			name:     "plain text is unchanged",
			input:    "no markers here",
			dict:     map[string]string{"X": "Y"},
			retain:   true,
			expected: "no markers here",
		},
		{
			name:     "outer markers retained",
			input:    "A" + invoke("X", "B") + "C",
			dict:     map[string]string{"X": "Y"},
			retain:   true,
			expected: "A" + invoke("X", "Y") + "C",
		},
		{
			name:     "markers stripped without retention",
			input:    "A" + invoke("X", "B") + "C",
			dict:     map[string]string{"X": "Y"},
			retain:   false,
			expected: "AYC",
		},
		{
			name:     "nested markers always stripped",
			input:    "A" + invoke("X", "B") + "C",
			dict:     map[string]string{"X": "p" + invoke("Z", "q") + "r", "Z": "Q"},
			retain:   true,
			expected: "A" + invoke("X", "pQr") + "C",
		},
		{
			name:     "several siblings",
			input:    invoke("X", "") + "-" + invoke("Z", "old") + "-" + invoke("X", "old"),
			dict:     map[string]string{"X": "1", "Z": "2"},
			retain:   true,
			expected: invoke("X", "1") + "-" + invoke("Z", "2") + "-" + invoke("X", "1"),
		},
		{
			name:     "same macro reached twice along different branches",
			input:    invoke("A", ""),
			dict:     map[string]string{"A": invoke("B", "") + invoke("C", ""), "B": invoke("D", ""), "C": invoke("D", ""), "D": "d"},
			retain:   true,
			expected: invoke("A", "dd"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewExpander(zap.NewNop()).Expand(tt.input, tt.dict, nil, tt.retain)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestExpander_Expand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		dict     map[string]string
		kind     ErrorKind
		expected string
	}{
		{
			name:     "direct cycle",
			input:    invoke("A", ""),
			dict:     map[string]string{"A": invoke("A", "x")},
			kind:     ErrorKindCircularReference,
			expected: "circular macro reference: A => A",
		},
		{
			name:     "indirect cycle",
			input:    "t" + invoke("A", ""),
			dict:     map[string]string{"A": invoke("B", ""), "B": invoke("A", "")},
			kind:     ErrorKindCircularReference,
			expected: "circular macro reference: A => B => A",
		},
		{
			name:     "undefined at top level",
			input:    invoke("missing", ""),
			dict:     map[string]string{},
			kind:     ErrorKindUndefinedMacro,
			expected: "undefined macro: missing",
		},
		{
			name:     "empty body is undefined",
			input:    invoke("E", ""),
			dict:     map[string]string{"E": ""},
			kind:     ErrorKindUndefinedMacro,
			expected: "undefined macro: E",
		},
		{
			name:     "undefined inside a macro body",
			input:    invoke("A", ""),
			dict:     map[string]string{"A": invoke("B", ""), "B": invoke("C", "")},
			kind:     ErrorKindUndefinedMacro,
			expected: `undefined macro in macro "A" => "B": C`,
		},
		{
			name:     "malformed body",
			input:    invoke("A", ""),
			dict:     map[string]string{"A": "x" + begin("B")},
			kind:     ErrorKindUnmatchedBegin,
			expected: `macro-begin without a matching macro-end in macro "A": ` + begin("B"),
		},
		{
			name:     "cycle checked before lookup",
			input:    invoke("A", ""),
			dict:     map[string]string{"A": invoke("A", "")},
			kind:     ErrorKindCircularReference,
			expected: "circular macro reference: A => A",
		},
		{
			name:     "first error wins left to right",
			input:    invoke("U1", "") + invoke("U2", ""),
			dict:     map[string]string{},
			kind:     ErrorKindUndefinedMacro,
			expected: "undefined macro: U1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewExpander(nil).Expand(tt.input, tt.dict, nil, true)
			require.Error(t, err)
			assert.Empty(t, result)

			var macroErr *MacroError
			require.True(t, errors.As(err, &macroErr))
			assert.Equal(t, tt.kind, macroErr.Kind)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestExpander_Expand_CircularErrorFields(t *testing.T) {
	dict := map[string]string{"A": invoke("B", ""), "B": invoke("A", "")}

	_, err := NewExpander(nil).Expand(invoke("A", ""), dict, nil, true)

	var macroErr *MacroError
	require.True(t, errors.As(err, &macroErr))
	assert.Equal(t, "A", macroErr.Macro)
	assert.Equal(t, Stack{"A", "B", "A"}, macroErr.Stack)
}

func TestExpander_Expand_DoesNotMutateDictionary(t *testing.T) {
	dict := map[string]string{"X": "p" + invoke("Z", "q") + "r", "Z": "Q"}
	snapshot := map[string]string{}
	for k, v := range dict {
		snapshot[k] = v
	}

	_, err := NewExpander(nil).Expand(invoke("X", ""), dict, nil, true)
	require.NoError(t, err)
	assert.Equal(t, snapshot, dict)
}

func TestExpander_Expand_FixedPoint(t *testing.T) {
	dict := map[string]string{"X": "p" + invoke("Z", "q") + "r", "Z": "Q"}
	exp := NewExpander(nil)

	first, err := exp.Expand("A"+invoke("X", "stale")+"C", dict, nil, true)
	require.NoError(t, err)

	second, err := exp.Expand(first, dict, nil, true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMacroError_KindMessage(t *testing.T) {
	assert.Equal(t, ErrMsgUnmatchedBegin, ErrorKindUnmatchedBegin.Message())
	assert.Equal(t, ErrMsgCircularReference, ErrorKindCircularReference.Message())
	assert.Equal(t, "Other", ErrorKind("Other").Message())
	assert.Equal(t, "NameMismatch", ErrorKindNameMismatch.String())
}

package tttor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTemplates(t *testing.T) {
	templates := []*StoredTemplate{
		{Slug: "welcome", Code: "hi"},
		{Slug: "macro-footer", Code: "(c)"},
		{Slug: "goodbye", Code: "bye"},
		{Slug: "macro-empty", Code: ""},
		{Slug: "macros-not-quite", Code: "x"},
	}

	regular, dict := SplitTemplates(templates, DefaultMacroPrefix)

	require.Len(t, regular, 3)
	assert.Equal(t, "welcome", regular[0].Slug)
	assert.Equal(t, "goodbye", regular[1].Slug)
	assert.Equal(t, "macros-not-quite", regular[2].Slug)

	assert.Equal(t, Dictionary{"footer": "(c)", "empty": ""}, dict)
	assert.Equal(t, []string{"empty", "footer"}, dict.Names())

	_, ok := dict.Lookup("empty")
	assert.False(t, ok)
	body, ok := dict.Lookup("footer")
	assert.True(t, ok)
	assert.Equal(t, "(c)", body)
}

func TestSplitTemplates_EmptyPrefix(t *testing.T) {
	templates := []*StoredTemplate{{Slug: "macro-x"}}

	regular, dict := SplitTemplates(templates, "")

	assert.Len(t, regular, 1)
	assert.Empty(t, dict)
}

func TestLoadDictionary(t *testing.T) {
	t.Run("mapping", func(t *testing.T) {
		src := "footer: \"(c) ACME\"\nheader: |\n  <h1>Hi</h1>\n"
		dict, err := LoadDictionary(strings.NewReader(src))
		require.NoError(t, err)
		assert.Equal(t, "(c) ACME", dict["footer"])
		assert.Equal(t, "<h1>Hi</h1>\n", dict["header"])
	})

	t.Run("empty input", func(t *testing.T) {
		dict, err := LoadDictionary(strings.NewReader(""))
		require.NoError(t, err)
		assert.NotNil(t, dict)
		assert.Empty(t, dict)
	})

	t.Run("not a mapping", func(t *testing.T) {
		_, err := LoadDictionary(strings.NewReader("- a\n- b\n"))
		require.Error(t, err)
	})
}

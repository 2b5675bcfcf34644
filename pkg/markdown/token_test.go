package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEscaped(t *testing.T) {
	testCases := []struct {
		text     string
		index    int
		expected bool
	}{
		{text: `*`, index: 0, expected: false},
		{text: `\*`, index: 1, expected: true},
		{text: `\\*`, index: 2, expected: false},
		{text: `\\\*`, index: 3, expected: true},
		{text: `a\`, index: 2, expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsEscaped(tc.text, tc.index))
		})
	}
}

func TestFindUnescapedToken(t *testing.T) {
	assert.Equal(t, 4, FindUnescapedToken(`a\*b*`, "*", 0))
	assert.Equal(t, 2, FindUnescapedToken(`\\*`, "*", 0))
	assert.Equal(t, -1, FindUnescapedToken(`\*`, "*", 0))
	assert.Equal(t, -1, FindUnescapedToken("abc", "", 0))
	assert.Equal(t, 3, FindUnescapedToken("**a**", "**", 2))
	assert.Equal(t, -1, FindUnescapedToken("**a", "**", 2))
	assert.Equal(t, 0, FindUnescapedToken("]", "]", -3))
}

func TestUnescapeMarkdown(t *testing.T) {
	assert.Equal(t, "*a*", UnescapeMarkdown(`\*a\*`))
	assert.Equal(t, `a\b`, UnescapeMarkdown(`a\b`))
	assert.Equal(t, `\`, UnescapeMarkdown(`\\`))
	assert.Equal(t, "[x](y) # ! > - + . { } ~ _ `", UnescapeMarkdown("\\[x\\]\\(y\\) \\# \\! \\> \\- \\+ \\. \\{ \\} \\~ \\_ \\`"))
	assert.Equal(t, "plain", UnescapeMarkdown("plain"))
}

func TestParseImageSourceAndTitle(t *testing.T) {
	testCases := []struct {
		name        string
		raw         string
		unescapeSrc bool
		expected    ImageSource
	}{
		{
			name:     "source only",
			raw:      " https://example.com/a.png ",
			expected: ImageSource{Src: "https://example.com/a.png"},
		},
		{
			name:     "double quoted title",
			raw:      `a.png "A title"`,
			expected: ImageSource{Src: "a.png", Title: "A title"},
		},
		{
			name:     "single quoted title",
			raw:      `a.png   'T'`,
			expected: ImageSource{Src: "a.png", Title: "T"},
		},
		{
			name:        "escaped source",
			raw:         `a\_b.png "t"`,
			unescapeSrc: true,
			expected:    ImageSource{Src: "a_b.png", Title: "t"},
		},
		{
			name:     "raw escapes kept",
			raw:      `a\_b.png`,
			expected: ImageSource{Src: `a\_b.png`},
		},
		{
			name:     "unterminated title",
			raw:      `a.png "t`,
			expected: ImageSource{Src: `a.png "t`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseImageSourceAndTitle(tc.raw, tc.unescapeSrc)
			require.Equal(t, tc.expected, got)
		})
	}
}

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/mdedit/internal/editor"
)

func TestRunScript(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		script   string
		expected string
	}{
		{
			name: "bold selection",
			text: "hello world",
			script: `# wrap the second word
select 6 11
apply bold
print
selection
`,
			expected: "hello **world**\n8 13\n",
		},
		{
			name: "typing with toggled actions",
			text: "",
			script: `apply bold
apply italic
active
insert hi
apply italic
apply bold
print
format 4
`,
			expected: "bold,italic\n***hi***\nbold\n",
		},
		{
			name: "quoted insert and undo",
			text: "a",
			script: `insert "\nb"
print
undo
print
`,
			expected: "a\nb\na\n",
		},
		{
			name:     "block action",
			text:     "one\ntwo",
			script:   "select 0 7\napply unorderedList\nprint\n",
			expected: "- one\n- two\n",
		},
		{
			name:     "segments",
			text:     "`x`",
			script:   "segments\n",
			expected: "delimiter\t\"`\"\ncode\t\"x\"\ndelimiter\t\"`\"\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sess := editor.NewSession(tc.text)
			var out bytes.Buffer
			err := runScript(sess, strings.NewReader(tc.script), &out)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out.String())
		})
	}
}

func TestRunScript_Errors(t *testing.T) {
	testCases := []struct {
		name           string
		script         string
		errorSubstring string
	}{
		{
			name:           "unknown command",
			script:         "\nfly\n",
			errorSubstring: `line 2: unknown command "fly"`,
		},
		{
			name:           "unknown action",
			script:         "apply table",
			errorSubstring: `"table": unknown toolbar action`,
		},
		{
			name:           "invalid offset",
			script:         "select x",
			errorSubstring: `select: invalid offset "x"`,
		},
		{
			name:           "too many offsets",
			script:         "select 1 2 3",
			errorSubstring: "expected 1 or 2 offsets, got 3",
		},
		{
			name:           "nothing to undo",
			script:         "undo",
			errorSubstring: "nothing to undo",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := runScript(editor.NewSession("a"), strings.NewReader(tc.script), &bytes.Buffer{})
			require.ErrorContains(t, err, tc.errorSubstring)
		})
	}
}

func TestCheckText(t *testing.T) {
	require.NoError(t, checkText("a.md", nil))
	require.NoError(t, checkText("a.md", []byte("# Title\n\n*hi*\n")))
	require.NoError(t, checkText("a.md", []byte("<p>html is text</p>")))

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	require.ErrorContains(t, checkText("a.png", png), "a.png: not a text file (detected image/png)")
}

package markdown

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var parityCorpus = []string{
	"",
	"hello world",
	"\n",
	"\n\n\n",
	"# Title\nbody",
	"####### Not heading",
	"## Sub\r\n\r\ntext\r\n",
	"**bold** *italic* ~~strike~~ `code`",
	"***nested***",
	"**unclosed *mixed ~~markers",
	`\*escaped\* \\ \` + "`" + ` \[x\](y)`,
	"trailing backslash \\",
	"[link **label**](https://example.com/a_(b))",
	"![img](src.png \"title\") and ![broken](",
	"![a] [l](u) ![x](y",
	"```go\nfunc main() {}\n```\nafter",
	"```\nunterminated\n# still text",
	"```js\n\n\n```   ",
	"> quote **bold**\n>tight\n> ",
	"- item\n* item *em*\n+ item\n1. one\n10. ten",
	"   - indented\n\t2. tabbed",
	"---\n* * *\n___\n- - -",
	"para\n# heading\n> q\n- l\n```\nc\n```",
	"héllo **wörld** ✓ [ünï](cödé)",
	"__a__ _b_ __c _d_ e__",
	"`a\\`b`",
	"\\",
	"!",
	"[",
	"**",
	"a\r\nb\rc\n",
}

var parityFeatures = []*FeatureSet{
	nil,
	NewFeatureSet(),
	NewFeatureSet(FeatureBold),
	NewFeatureSet(FeatureHeading2, FeatureQuote),
	NewFeatureSet(FeatureCode, FeatureItalic, FeatureImage),
	NewFeatureSet(FeatureCodeBlock, FeatureDivider, FeatureOrderedList),
}

func TestHighlight_Parity(t *testing.T) {
	for _, features := range parityFeatures {
		for _, in := range parityCorpus {
			got := Highlight(in, features)
			require.NoError(t, CheckParity(in, got), "input %q features %v", in, features.Strings())
			breaks := 0
			for _, s := range got {
				require.NotEmpty(t, s.Text, "empty segment for input %q", in)
				if s.Text == "\n" || s.Text == "\r\n" {
					breaks++
				}
			}
			assert.Equal(t, strings.Count(in, "\n"), breaks, "line breaks for input %q", in)
		}
	}
}

func TestHighlight_ParityGenerated(t *testing.T) {
	alphabet := []string{"*", "_", "~", "`", "\\", "[", "]", "(", ")", "!", "#", " ", ">", "-", "1.", "\n", "a", "\"", "```"}
	// Deterministic walk over short combinations of tricky tokens.
	var build func(prefix string, depth int)
	build = func(prefix string, depth int) {
		require.NoError(t, CheckParity(prefix, Highlight(prefix, nil)), "input %q", prefix)
		if depth == 0 {
			return
		}
		for _, tok := range alphabet {
			build(prefix+tok, depth-1)
		}
	}
	build("", 3)
}

func TestHighlight(t *testing.T) {
	h1 := map[string]string{MetaLine: LineHeading, MetaLevel: "1"}
	quote := map[string]string{MetaLine: LineQuote}
	fenceMeta := map[string]string{MetaLine: LineCodeFence}

	testCases := []struct {
		name     string
		text     string
		features *FeatureSet
		expected []Segment
	}{
		{
			name:     "plain",
			text:     "hello",
			expected: []Segment{{Text: "hello", Type: SegmentText}},
		},
		{
			name: "heading carries meta to newline",
			text: "# Hi\nx",
			expected: []Segment{
				{Text: "# ", Type: SegmentDelimiter, Meta: h1},
				{Text: "Hi", Type: SegmentHeading, Meta: h1},
				{Text: "\n", Type: SegmentHeading, Meta: h1},
				{Text: "x", Type: SegmentText},
			},
		},
		{
			name: "bold",
			text: "a **b**",
			expected: []Segment{
				{Text: "a ", Type: SegmentText},
				{Text: "**", Type: SegmentDelimiter},
				{Text: "b", Type: SegmentBold, Meta: map[string]string{MetaBold: "true"}},
				{Text: "**", Type: SegmentDelimiter},
			},
		},
		{
			name: "italic inside bold",
			text: "**a *b* c**",
			expected: []Segment{
				{Text: "**", Type: SegmentDelimiter},
				{Text: "a ", Type: SegmentBold, Meta: map[string]string{MetaBold: "true"}},
				{Text: "*", Type: SegmentDelimiter, Meta: map[string]string{MetaBold: "true"}},
				{Text: "b", Type: SegmentItalic, Meta: map[string]string{MetaBold: "true", MetaItalic: "true"}},
				{Text: "*", Type: SegmentDelimiter, Meta: map[string]string{MetaBold: "true"}},
				{Text: " c", Type: SegmentBold, Meta: map[string]string{MetaBold: "true"}},
				{Text: "**", Type: SegmentDelimiter},
			},
		},
		{
			name: "escape",
			text: `\*x`,
			expected: []Segment{
				{Text: `\`, Type: SegmentDelimiter},
				{Text: "*x", Type: SegmentText},
			},
		},
		{
			name: "inline code",
			text: "`a*b`",
			expected: []Segment{
				{Text: "`", Type: SegmentDelimiter},
				{Text: "a*b", Type: SegmentCode},
				{Text: "`", Type: SegmentDelimiter},
			},
		},
		{
			name: "link",
			text: "[a](u)",
			expected: []Segment{
				{Text: "[", Type: SegmentDelimiter},
				{Text: "a", Type: SegmentLink, Meta: map[string]string{MetaLink: "true"}},
				{Text: "](", Type: SegmentDelimiter},
				{Text: "u", Type: SegmentLinkURL},
				{Text: ")", Type: SegmentDelimiter},
			},
		},
		{
			name: "image",
			text: `![a](u\_1 "t")`,
			expected: []Segment{
				{
					Text: `![a](u\_1 "t")`,
					Type: SegmentImage,
					Meta: map[string]string{MetaSrc: `u\_1`, MetaAlt: "a", MetaTitle: "t"},
				},
			},
		},
		{
			name:     "image disabled",
			text:     "![a](u)",
			features: NewFeatureSet(),
			expected: []Segment{{Text: "![a](u)", Type: SegmentText}},
		},
		{
			name: "quote",
			text: "> q *i*",
			expected: []Segment{
				{Text: "> ", Type: SegmentQuoteMarker, Meta: quote},
				{Text: "q ", Type: SegmentQuote, Meta: quote},
				{Text: "*", Type: SegmentDelimiter, Meta: quote},
				{Text: "i", Type: SegmentItalic, Meta: map[string]string{MetaLine: LineQuote, MetaItalic: "true"}},
				{Text: "*", Type: SegmentDelimiter, Meta: quote},
			},
		},
		{
			name: "list",
			text: "- a\n2. b",
			expected: []Segment{
				{Text: "- ", Type: SegmentListMarker},
				{Text: "a", Type: SegmentText},
				{Text: "\n", Type: SegmentText},
				{Text: "2. ", Type: SegmentListMarker},
				{Text: "b", Type: SegmentText},
			},
		},
		{
			name: "rule",
			text: "---\nx",
			expected: []Segment{
				{Text: "---", Type: SegmentHorizontalRule},
				{Text: "\n", Type: SegmentText},
				{Text: "x", Type: SegmentText},
			},
		},
		{
			name: "fenced code",
			text: "```js\n*a*\n```",
			expected: []Segment{
				{Text: "```", Type: SegmentDelimiter, Meta: fenceMeta},
				{Text: "js", Type: SegmentCodeBlock, Meta: fenceMeta},
				{Text: "\n", Type: SegmentText, Meta: fenceMeta},
				{Text: "*a*", Type: SegmentCodeBlock, Meta: fenceMeta},
				{Text: "\n", Type: SegmentText, Meta: fenceMeta},
				{Text: "```", Type: SegmentDelimiter, Meta: fenceMeta},
			},
		},
		{
			name: "crlf newline is one segment",
			text: "# A\r\nb",
			expected: []Segment{
				{Text: "# ", Type: SegmentDelimiter, Meta: h1},
				{Text: "A", Type: SegmentHeading, Meta: h1},
				{Text: "\r\n", Type: SegmentHeading, Meta: h1},
				{Text: "b", Type: SegmentText},
			},
		},
		{
			name:     "marker without space is text",
			text:     ">tight",
			expected: []Segment{{Text: ">tight", Type: SegmentText}},
		},
		{
			name: "line breaks are separate segments",
			text: "a\nb",
			expected: []Segment{
				{Text: "a", Type: SegmentText},
				{Text: "\n", Type: SegmentText},
				{Text: "b", Type: SegmentText},
			},
		},
		{
			name: "blank lines",
			text: "a\n\n",
			expected: []Segment{
				{Text: "a", Type: SegmentText},
				{Text: "\n", Type: SegmentText},
				{Text: "\n", Type: SegmentText},
			},
		},
		{
			name:     "disabled heading level",
			text:     "# A",
			features: NewFeatureSet(FeatureHeading2),
			expected: []Segment{{Text: "# A", Type: SegmentText}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Highlight(tc.text, tc.features)
			require.True(t, cmp.Equal(tc.expected, got), "%s", cmp.Diff(tc.expected, got))
		})
	}
}

func TestHighlight_HeadingLevels(t *testing.T) {
	for level := 1; level <= 6; level++ {
		in := strings.Repeat("#", level) + " T"
		got := Highlight(in, nil)
		require.Len(t, got, 2)
		assert.Equal(t, SegmentHeading, got[1].Type)
		assert.Equal(t, LineHeading, got[1].Line())
		assert.Equal(t, string(rune('0'+level)), got[1].Meta[MetaLevel])
	}
}

func TestSegmentAt(t *testing.T) {
	segs := Highlight("ä **b**", nil)
	// "ä " | "**" | "b" | "**"
	idx, inner := SegmentAt(segs, 1)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, inner)

	idx, inner = SegmentAt(segs, 4)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 0, inner)
	assert.True(t, segs[idx].Flag(MetaBold))

	idx, inner = SegmentAt(segs, 7)
	assert.Equal(t, 3, idx)
	assert.Equal(t, 2, inner)

	idx, _ = SegmentAt(segs, 8)
	assert.Equal(t, -1, idx)
	idx, _ = SegmentAt(nil, 0)
	assert.Equal(t, -1, idx)
}

func TestCheckParity(t *testing.T) {
	err := CheckParity("abc", []Segment{{Text: "ab"}, {Text: "d"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "byte 2")
}

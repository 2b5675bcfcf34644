package markdown

import (
	"regexp"
	"strings"
)

const fence = "```"

// sourceLine is a single line of the input. Text never contains the
// line terminator, which is kept separately in EOL ("\n", "\r\n", or
// "" for the final line).
type sourceLine struct {
	Text string
	EOL  string
}

func splitLines(text string) []sourceLine {
	var lines []sourceLine
	for {
		idx := strings.IndexByte(text, '\n')
		if idx == -1 {
			lines = append(lines, sourceLine{Text: text})
			return lines
		}
		l := sourceLine{Text: text[:idx], EOL: "\n"}
		if strings.HasSuffix(l.Text, "\r") {
			l.Text = l.Text[:len(l.Text)-1]
			l.EOL = "\r\n"
		}
		lines = append(lines, l)
		text = text[idx+1:]
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// fenceOpen reports whether s opens a fenced code block and returns
// the info string.
func fenceOpen(s string) (string, bool) {
	if !strings.HasPrefix(s, fence) {
		return "", false
	}
	info := strings.TrimSpace(s[len(fence):])
	if strings.Contains(info, "`") {
		return "", false
	}
	return info, true
}

func isFenceClose(s string) bool {
	return strings.TrimRight(s, " \t") == fence
}

// findFenceClose returns the index of the first closing fence line
// at or after from, or -1.
func findFenceClose(lines []sourceLine, from int) int {
	for i := from; i < len(lines); i++ {
		if isFenceClose(lines[i].Text) {
			return i
		}
	}
	return -1
}

var headingRe = regexp.MustCompile(`^(#{1,6})([ \t]+)(.*)$`)

type headingMatch struct {
	level   int
	marker  string // hashes and the whitespace after them
	content string
}

func matchHeading(s string) (headingMatch, bool) {
	m := headingRe.FindStringSubmatch(s)
	if m == nil {
		return headingMatch{}, false
	}
	return headingMatch{
		level:   len(m[1]),
		marker:  m[1] + m[2],
		content: m[3],
	}, true
}

// IsHorizontalRule reports whether s consists of three or more of the same
// "-", "*" or "_" character, optionally separated by spaces or tabs.
func IsHorizontalRule(s string) bool {
	var marker byte
	count := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t':
			continue
		case '-', '*', '_':
			if marker == 0 {
				marker = c
			}
			if c != marker {
				return false
			}
			count++
		default:
			return false
		}
	}
	return count >= 3
}

// A bare ">" only counts as a quote marker on an otherwise empty line.
var quoteRe = regexp.MustCompile(`^(>(?: |$))(.*)$`)

func matchQuote(s string) (marker, content string, ok bool) {
	m := quoteRe.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

var (
	unorderedItemRe = regexp.MustCompile(`^([ \t]*[-*+][ \t]+)(.*)$`)
	orderedItemRe   = regexp.MustCompile(`^([ \t]*\d+\.[ \t]+)(.*)$`)
)

type listItemMatch struct {
	ordered bool
	marker  string // indentation, marker and the whitespace after it
	content string
}

func matchListItem(s string, features *FeatureSet) (listItemMatch, bool) {
	if IsFeatureEnabled(features, FeatureUnorderedList) {
		if m := unorderedItemRe.FindStringSubmatch(s); m != nil {
			return listItemMatch{marker: m[1], content: m[2]}, true
		}
	}
	if IsFeatureEnabled(features, FeatureOrderedList) {
		if m := orderedItemRe.FindStringSubmatch(s); m != nil {
			return listItemMatch{ordered: true, marker: m[1], content: m[2]}, true
		}
	}
	return listItemMatch{}, false
}

// lineRules holds the per-line block recognizers gated by features.
// Both the block scanner and the highlighter go through it.
type lineRules struct {
	lines    []sourceLine
	features *FeatureSet
}

func (r lineRules) enabled(f Feature) bool {
	return IsFeatureEnabled(r.features, f)
}

// fencedBlock returns the info string and the index of the closing
// line when line i opens a fenced code block that is closed later.
func (r lineRules) fencedBlock(i int) (info string, end int, ok bool) {
	if !r.enabled(FeatureCodeBlock) {
		return "", 0, false
	}
	info, ok = fenceOpen(r.lines[i].Text)
	if !ok {
		return "", 0, false
	}
	end = findFenceClose(r.lines, i+1)
	if end == -1 {
		return "", 0, false
	}
	return info, end, true
}

func (r lineRules) heading(i int) (headingMatch, bool) {
	m, ok := matchHeading(r.lines[i].Text)
	if !ok || !IsHeadingLevelEnabled(r.features, m.level) {
		return headingMatch{}, false
	}
	return m, true
}

func (r lineRules) rule(i int) bool {
	return r.enabled(FeatureDivider) && IsHorizontalRule(r.lines[i].Text)
}

func (r lineRules) quote(i int) (marker, content string, ok bool) {
	if !r.enabled(FeatureQuote) {
		return "", "", false
	}
	return matchQuote(r.lines[i].Text)
}

func (r lineRules) listItem(i int) (listItemMatch, bool) {
	return matchListItem(r.lines[i].Text, r.features)
}

// isBlockStart reports whether line i begins a block other than
// a paragraph. Paragraphs end right before such a line.
func (r lineRules) isBlockStart(i int) bool {
	if _, _, ok := r.fencedBlock(i); ok {
		return true
	}
	if _, ok := r.heading(i); ok {
		return true
	}
	if r.rule(i) {
		return true
	}
	if _, _, ok := r.quote(i); ok {
		return true
	}
	_, ok := r.listItem(i)
	return ok
}

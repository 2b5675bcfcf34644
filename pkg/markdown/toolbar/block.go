package toolbar

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/stateful/mdedit/pkg/markdown"
)

type lineTransform func(lines []string) []string

var blockTransforms = map[Action]lineTransform{
	ActionHeading:       toggleHeading,
	ActionHeading1:      setHeadingLevel(1),
	ActionHeading2:      setHeadingLevel(2),
	ActionHeading3:      setHeadingLevel(3),
	ActionHeading4:      setHeadingLevel(4),
	ActionHeading5:      setHeadingLevel(5),
	ActionHeading6:      setHeadingLevel(6),
	ActionQuote:         togglePrefix("> ", true),
	ActionUnorderedList: togglePrefix("- ", false),
	ActionOrderedList:   toggleOrderedList,
	ActionDivider:       toggleDivider,
	ActionCodeBlock:     toggleCodeFence,
}

var (
	headingPrefixRe = regexp.MustCompile(`^#{1,6}[ \t]+`)
	orderedPrefixRe = regexp.MustCompile(`^\d+\.[ \t]+`)
)

func every(lines []string, pred func(string) bool) bool {
	for _, l := range lines {
		if !pred(l) {
			return false
		}
	}
	return true
}

func mapLines(lines []string, fn func(int, string) string) []string {
	result := make([]string, len(lines))
	for i, l := range lines {
		result[i] = fn(i, l)
	}
	return result
}

func stripHeading(line string) string {
	return headingPrefixRe.ReplaceAllLiteralString(line, "")
}

func toggleHeading(lines []string) []string {
	if every(lines, headingPrefixRe.MatchString) {
		return mapLines(lines, func(_ int, l string) string { return stripHeading(l) })
	}
	return mapLines(lines, func(_ int, l string) string { return "# " + stripHeading(l) })
}

func setHeadingLevel(level int) lineTransform {
	exact := regexp.MustCompile(`^#{` + strconv.Itoa(level) + `}[ \t]`)
	prefix := strings.Repeat("#", level) + " "

	return func(lines []string) []string {
		if every(lines, exact.MatchString) {
			return mapLines(lines, func(_ int, l string) string { return stripHeading(l) })
		}
		return mapLines(lines, func(_ int, l string) string { return prefix + stripHeading(l) })
	}
}

// togglePrefix adds prefix to every line unless all of them have it.
// With allowBare, a line holding only the trimmed prefix counts as
// having it.
func togglePrefix(prefix string, allowBare bool) lineTransform {
	bare := strings.TrimSpace(prefix)
	isBare := func(l string) bool { return allowBare && l == bare }
	has := func(l string) bool { return strings.HasPrefix(l, prefix) || isBare(l) }

	return func(lines []string) []string {
		if every(lines, has) {
			return mapLines(lines, func(_ int, l string) string {
				if isBare(l) {
					return ""
				}
				return strings.TrimPrefix(l, prefix)
			})
		}
		return mapLines(lines, func(_ int, l string) string { return prefix + l })
	}
}

func toggleOrderedList(lines []string) []string {
	if every(lines, orderedPrefixRe.MatchString) {
		return mapLines(lines, func(_ int, l string) string {
			return orderedPrefixRe.ReplaceAllLiteralString(l, "")
		})
	}
	return mapLines(lines, func(i int, l string) string {
		return strconv.Itoa(i+1) + ". " + orderedPrefixRe.ReplaceAllLiteralString(l, "")
	})
}

// toggleDivider blanks the lines when all of them are rules already.
// Otherwise every line is replaced by a rule.
func toggleDivider(lines []string) []string {
	if every(lines, markdown.IsHorizontalRule) {
		return make([]string, len(lines))
	}
	return mapLines(lines, func(int, string) string { return "---" })
}

func toggleCodeFence(lines []string) []string {
	const fence = "```"
	n := len(lines)
	if n >= 2 && strings.HasPrefix(lines[0], fence) && strings.HasPrefix(lines[n-1], fence) {
		return append([]string(nil), lines[1:n-1]...)
	}
	result := make([]string, 0, n+2)
	result = append(result, fence)
	result = append(result, lines...)
	return append(result, fence)
}

package markdown

import (
	"regexp"
	"strings"
)

// specialChars are the characters that a backslash can escape.
const specialChars = "\\`*_~[]()#+.!>{}-"

func isSpecialChar(c byte) bool {
	return strings.IndexByte(specialChars, c) >= 0
}

// IsEscaped reports whether the character at index is preceded
// by an odd number of backslashes.
func IsEscaped(text string, index int) bool {
	if index > len(text) {
		index = len(text)
	}
	count := 0
	for i := index - 1; i >= 0 && text[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}

// FindUnescapedToken returns the byte index of the first occurrence of token
// at or after from that is not escaped, or -1.
func FindUnescapedToken(text, token string, from int) int {
	if token == "" {
		return -1
	}
	if from < 0 {
		from = 0
	}
	for from <= len(text)-len(token) {
		idx := strings.Index(text[from:], token)
		if idx == -1 {
			return -1
		}
		pos := from + idx
		if !IsEscaped(text, pos) {
			return pos
		}
		from = pos + 1
	}
	return -1
}

// UnescapeMarkdown removes a single backslash in front of
// every Markdown-special character.
func UnescapeMarkdown(text string) string {
	if strings.IndexByte(text, '\\') == -1 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\\' && i+1 < len(text) && isSpecialChar(text[i+1]) {
			_ = b.WriteByte(text[i+1])
			i++
			continue
		}
		_ = b.WriteByte(c)
	}

	return b.String()
}

// ImageSource is the destination part of an image, split into
// the source and an optional title.
type ImageSource struct {
	Src   string
	Title string
}

var imageTitleRe = regexp.MustCompile(`^(.+?)\s+(?:"([^"]*)"|'([^']*)')$`)

// ParseImageSourceAndTitle splits raw (the text between the parentheses of an
// image) into a source and a trailing quoted title. When unescapeSrc is true,
// backslash escapes in the source are resolved.
func ParseImageSourceAndTitle(raw string, unescapeSrc bool) ImageSource {
	raw = strings.TrimSpace(raw)

	var result ImageSource

	if m := imageTitleRe.FindStringSubmatch(raw); m != nil {
		result.Src = m[1]
		if m[2] != "" {
			result.Title = m[2]
		} else {
			result.Title = m[3]
		}
	} else {
		result.Src = raw
	}

	if unescapeSrc {
		result.Src = UnescapeMarkdown(result.Src)
	}

	return result
}

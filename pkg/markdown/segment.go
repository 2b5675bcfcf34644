package markdown

import (
	"maps"
	"strings"

	"github.com/pkg/errors"
)

// SegmentType classifies a highlighted run of text.
type SegmentType string

const (
	SegmentText           SegmentType = "text"
	SegmentDelimiter      SegmentType = "delimiter"
	SegmentHeading        SegmentType = "heading"
	SegmentBold           SegmentType = "bold"
	SegmentItalic         SegmentType = "italic"
	SegmentStrikethrough  SegmentType = "strikethrough"
	SegmentCode           SegmentType = "code"
	SegmentCodeBlock      SegmentType = "codeBlock"
	SegmentLink           SegmentType = "link"
	SegmentLinkURL        SegmentType = "linkUrl"
	SegmentImage          SegmentType = "image"
	SegmentQuote          SegmentType = "quote"
	SegmentQuoteMarker    SegmentType = "quoteMarker"
	SegmentListMarker     SegmentType = "listMarker"
	SegmentHorizontalRule SegmentType = "horizontalRule"
)

var allSegmentTypes = []SegmentType{
	SegmentText,
	SegmentDelimiter,
	SegmentHeading,
	SegmentBold,
	SegmentItalic,
	SegmentStrikethrough,
	SegmentCode,
	SegmentCodeBlock,
	SegmentLink,
	SegmentLinkURL,
	SegmentImage,
	SegmentQuote,
	SegmentQuoteMarker,
	SegmentListMarker,
	SegmentHorizontalRule,
}

func AllSegmentTypes() []SegmentType {
	return append([]SegmentType(nil), allSegmentTypes...)
}

// Meta keys used by Segment.Meta.
const (
	MetaLine          = "line"
	MetaLevel         = "level"
	MetaBold          = "bold"
	MetaItalic        = "italic"
	MetaStrikethrough = "strikethrough"
	MetaLink          = "link"
	MetaSrc           = "src"
	MetaAlt           = "alt"
	MetaTitle         = "title"
)

// Values of the MetaLine key.
const (
	LineHeading   = "heading"
	LineQuote     = "quote"
	LineCodeFence = "codeFence"
)

// Segment is a styled run of the original text.
type Segment struct {
	Text string
	Type SegmentType
	Meta map[string]string
}

// Flag reports whether the boolean meta key is set.
func (s Segment) Flag(key string) bool {
	return s.Meta[key] == "true"
}

// Line returns the line context of the segment, if any.
func (s Segment) Line() string {
	return s.Meta[MetaLine]
}

// Concat joins the text of all segments.
func Concat(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		_, _ = b.WriteString(s.Text)
	}
	return b.String()
}

// CheckParity returns an error if segments do not reproduce text exactly.
func CheckParity(text string, segments []Segment) error {
	got := Concat(segments)
	if got == text {
		return nil
	}
	i := 0
	for i < len(got) && i < len(text) && got[i] == text[i] {
		i++
	}
	return errors.Errorf("segments diverge from source at byte %d (source %d bytes, segments %d bytes)", i, len(text), len(got))
}

// SegmentAt finds the segment containing the rune offset. It returns the
// segment index and the rune offset within that segment. An offset equal to
// the total length maps to the end of the last segment. It returns -1 if
// offset is out of range.
func SegmentAt(segments []Segment, offset int) (index, inner int) {
	if offset < 0 {
		return -1, 0
	}
	pos := 0
	for i, s := range segments {
		n := len([]rune(s.Text))
		if offset < pos+n {
			return i, offset - pos
		}
		pos += n
	}
	if offset == pos && len(segments) > 0 {
		last := len(segments) - 1
		return last, len([]rune(segments[last].Text))
	}
	return -1, 0
}

func mergeable(a, b Segment) bool {
	if a.Type != b.Type || a.Type == SegmentImage {
		return false
	}
	return maps.Equal(a.Meta, b.Meta)
}

// mergeSegments folds adjacent segments with equal type and meta
// into one and drops empty segments.
func mergeSegments(segments []Segment) []Segment {
	result := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if s.Text == "" {
			continue
		}
		if n := len(result); n > 0 && mergeable(result[n-1], s) {
			result[n-1] = Segment{
				Text: result[n-1].Text + s.Text,
				Type: s.Type,
				Meta: result[n-1].Meta,
			}
			continue
		}
		result = append(result, s)
	}
	return result
}

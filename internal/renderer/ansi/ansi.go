// Package ansi colors highlighted segments with ANSI escape sequences.
// Removing the escape sequences from the output yields the source text.
package ansi

import (
	"strings"

	"github.com/mgutz/ansi"

	"github.com/stateful/mdedit/pkg/markdown"
)

// Theme provides a color spec, such as "blue+b" or "240:black",
// for a segment type. An empty spec leaves the segment uncolored.
type Theme interface {
	Style(typ markdown.SegmentType) string
}

type Renderer struct {
	theme  Theme
	colors map[markdown.SegmentType]func(string) string
}

func New(theme Theme) *Renderer {
	r := &Renderer{
		theme:  theme,
		colors: make(map[markdown.SegmentType]func(string) string),
	}
	for _, typ := range markdown.AllSegmentTypes() {
		spec := ""
		if theme != nil {
			spec = theme.Style(typ)
		}
		r.colors[typ] = ansi.ColorFunc(spec)
	}
	return r
}

func (r *Renderer) Render(segments []markdown.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		r.segment(&b, s)
	}
	return b.String()
}

// segment colors every line of s separately so that line
// terminators are never wrapped in escape sequences.
func (r *Renderer) segment(b *strings.Builder, s markdown.Segment) {
	color, ok := r.colors[s.Type]
	if !ok {
		_, _ = b.WriteString(s.Text)
		return
	}

	lines := strings.SplitAfter(s.Text, "\n")
	for _, line := range lines {
		content := strings.TrimRight(line, "\r\n")
		if content != "" {
			_, _ = b.WriteString(color(content))
		}
		_, _ = b.WriteString(line[len(content):])
	}
}

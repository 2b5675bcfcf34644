// Package term renders parsed Markdown blocks as styled terminal text.
package term

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/stateful/mdedit/pkg/markdown"
)

const defaultRuleWidth = 40

// Theme provides a color spec for a segment type.
type Theme interface {
	Style(typ markdown.SegmentType) string
}

type Renderer struct {
	width  int
	out    io.Writer
	styles map[markdown.SegmentType]lipgloss.Style
}

type Option func(*Renderer)

// WithWidth sets the column at which paragraphs are wrapped.
// Zero disables wrapping.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		r.width = width
	}
}

// WithOutput sets the writer used to detect the color profile.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		r.out = w
	}
}

func New(theme Theme, opts ...Option) *Renderer {
	r := &Renderer{out: os.Stdout}
	for _, opt := range opts {
		opt(r)
	}

	lr := lipgloss.NewRenderer(r.out)
	r.styles = make(map[markdown.SegmentType]lipgloss.Style)
	for _, typ := range markdown.AllSegmentTypes() {
		spec := ""
		if theme != nil {
			spec = theme.Style(typ)
		}
		r.styles[typ] = parseStyle(lr, spec)
	}
	return r
}

func (r *Renderer) Render(blocks []markdown.Block) string {
	var lines []string
	for _, b := range blocks {
		lines = append(lines, r.block(b)...)
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func (r *Renderer) style(typ markdown.SegmentType) lipgloss.Style {
	return r.styles[typ]
}

// paint styles s line by line. Multi-line strings rendered by lipgloss
// are padded to the same width, which is not wanted here.
func paint(style lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) wrap(s string, indent int) []string {
	if r.width > 0 && r.width > indent {
		s = wordwrap.String(s, r.width-indent)
	}
	return strings.Split(s, "\n")
}

func (r *Renderer) block(b markdown.Block) []string {
	switch b := b.(type) {
	case *markdown.Paragraph:
		return r.wrap(r.inlines(b.Children, r.style(markdown.SegmentText)), 0)

	case *markdown.Heading:
		heading := r.style(markdown.SegmentHeading)
		prefix := paint(heading, strings.Repeat("#", b.Level)+" ")
		return r.wrap(prefix+r.inlines(b.Children, heading), 0)

	case *markdown.CodeBlock:
		code := r.style(markdown.SegmentCodeBlock)
		var lines []string
		for _, l := range strings.Split(b.Content, "\n") {
			lines = append(lines, "    "+paint(code, l))
		}
		return lines

	case *markdown.Blockquote:
		marker := paint(r.style(markdown.SegmentQuoteMarker), "│ ")
		lines := r.wrap(r.inlines(b.Children, r.style(markdown.SegmentQuote)), 2)
		for i, l := range lines {
			lines[i] = marker + l
		}
		return lines

	case *markdown.List:
		var lines []string
		for i, item := range b.Items {
			bullet := "• "
			if b.Ordered {
				bullet = strconv.Itoa(i+1) + ". "
			}
			indent := strings.Repeat(" ", len([]rune(bullet)))
			itemLines := r.wrap(r.inlines(item, r.style(markdown.SegmentText)), len(indent))
			for j, l := range itemLines {
				if j == 0 {
					lines = append(lines, paint(r.style(markdown.SegmentListMarker), bullet)+l)
				} else {
					lines = append(lines, indent+l)
				}
			}
		}
		return lines

	case *markdown.HorizontalRule:
		width := r.width
		if width <= 0 {
			width = defaultRuleWidth
		}
		return []string{paint(r.style(markdown.SegmentHorizontalRule), strings.Repeat("─", width))}

	case *markdown.Spacer:
		return []string{""}
	}
	return nil
}

func (r *Renderer) inlines(nodes []markdown.Inline, base lipgloss.Style) string {
	var b strings.Builder
	for _, n := range nodes {
		_, _ = b.WriteString(r.inline(n, base))
	}
	return b.String()
}

func (r *Renderer) inline(n markdown.Inline, base lipgloss.Style) string {
	switch n := n.(type) {
	case *markdown.Text:
		return paint(base, n.Content)
	case *markdown.Bold:
		return r.inlines(n.Children, r.style(markdown.SegmentBold).Inherit(base))
	case *markdown.Italic:
		return r.inlines(n.Children, r.style(markdown.SegmentItalic).Inherit(base))
	case *markdown.Strikethrough:
		return r.inlines(n.Children, r.style(markdown.SegmentStrikethrough).Inherit(base))
	case *markdown.Code:
		return paint(r.style(markdown.SegmentCode), n.Content)
	case *markdown.Link:
		text := r.inlines(n.Children, r.style(markdown.SegmentLink).Inherit(base))
		if n.Href == "" || n.Href == markdown.PlainText(n.Children) {
			return text
		}
		return text + " " + paint(r.style(markdown.SegmentLinkURL), "("+n.Href+")")
	case *markdown.Image:
		label := "[image: " + n.Alt + "]"
		if n.Alt == "" {
			label = "[image: " + n.Src + "]"
		}
		return paint(r.style(markdown.SegmentImage), label)
	}
	return ""
}

// Package html renders parsed Markdown blocks as an HTML fragment.
package html

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark/util"

	"github.com/stateful/mdedit/pkg/markdown"
)

func Render(blocks []markdown.Block) []byte {
	r := new(renderer)
	for _, b := range blocks {
		r.block(b)
	}
	return r.buf.Bytes()
}

// RenderInline renders inline nodes without a wrapping element.
func RenderInline(inlines []markdown.Inline) []byte {
	r := new(renderer)
	r.inlines(inlines)
	return r.buf.Bytes()
}

type renderer struct {
	buf bytes.Buffer
}

func (r *renderer) text(s string) {
	_, _ = r.buf.Write(util.EscapeHTML([]byte(s)))
}

func (r *renderer) url(s string) {
	_, _ = r.buf.Write(util.EscapeHTML(util.URLEscape([]byte(s), false)))
}

func (r *renderer) raw(s string) {
	_, _ = r.buf.WriteString(s)
}

func (r *renderer) block(b markdown.Block) {
	switch b := b.(type) {
	case *markdown.Paragraph:
		r.raw("<p>")
		r.inlines(b.Children)
		r.raw("</p>\n")
	case *markdown.Heading:
		tag := "h" + strconv.Itoa(b.Level)
		r.raw("<" + tag + ">")
		r.inlines(b.Children)
		r.raw("</" + tag + ">\n")
	case *markdown.CodeBlock:
		r.raw("<pre><code")
		if b.Language != "" {
			r.raw(` class="language-`)
			r.text(b.Language)
			r.raw(`"`)
		}
		r.raw(">")
		r.text(b.Content)
		r.raw("</code></pre>\n")
	case *markdown.Blockquote:
		r.raw("<blockquote>\n<p>")
		r.inlines(b.Children)
		r.raw("</p>\n</blockquote>\n")
	case *markdown.HorizontalRule:
		r.raw("<hr />\n")
	case *markdown.List:
		tag := "ul"
		if b.Ordered {
			tag = "ol"
		}
		r.raw("<" + tag + ">\n")
		for _, item := range b.Items {
			r.raw("<li>")
			r.inlines(item)
			r.raw("</li>\n")
		}
		r.raw("</" + tag + ">\n")
	case *markdown.Spacer:
		// Blank lines only separate blocks.
	}
}

func (r *renderer) inlines(nodes []markdown.Inline) {
	for _, n := range nodes {
		r.inline(n)
	}
}

func (r *renderer) inline(n markdown.Inline) {
	switch n := n.(type) {
	case *markdown.Text:
		r.text(n.Content)
	case *markdown.Bold:
		r.wrap("strong", n.Children)
	case *markdown.Italic:
		r.wrap("em", n.Children)
	case *markdown.Strikethrough:
		r.wrap("del", n.Children)
	case *markdown.Code:
		r.raw("<code>")
		r.text(n.Content)
		r.raw("</code>")
	case *markdown.Link:
		r.raw(`<a href="`)
		r.url(n.Href)
		r.raw(`">`)
		r.inlines(n.Children)
		r.raw("</a>")
	case *markdown.Image:
		r.raw(`<img src="`)
		r.url(n.Src)
		r.raw(`" alt="`)
		r.text(n.Alt)
		r.raw(`"`)
		if n.Title != "" {
			r.raw(` title="`)
			r.text(n.Title)
			r.raw(`"`)
		}
		r.raw(" />")
	}
}

func (r *renderer) wrap(tag string, children []markdown.Inline) {
	r.raw("<" + tag + ">")
	r.inlines(children)
	r.raw("</" + tag + ">")
}

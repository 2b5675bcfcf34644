package markdown

import (
	"strconv"
	"strings"
)

type astFrame struct {
	kind  InlineKind
	nodes []Inline
}

// astEmitter builds the inline tree. Open containers are kept on a stack.
type astEmitter struct {
	stack []astFrame
}

func newASTEmitter() *astEmitter {
	return &astEmitter{stack: []astFrame{{}}}
}

func (e *astEmitter) add(n Inline) {
	top := &e.stack[len(e.stack)-1]
	top.nodes = append(top.nodes, n)
}

func (e *astEmitter) pop() astFrame {
	top := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return top
}

func (e *astEmitter) literal(s string, _ inlineContext) { e.add(&Text{Content: s}) }

func (e *astEmitter) escape(ch string, _ inlineContext) { e.add(&Text{Content: ch}) }

func (e *astEmitter) code(content string, _ inlineContext) { e.add(&Code{Content: content}) }

func (e *astEmitter) open(kind InlineKind, _ string, _ inlineContext) {
	e.stack = append(e.stack, astFrame{kind: kind})
}

func (e *astEmitter) close(kind InlineKind, _ string, _ inlineContext) {
	children := mergeText(e.pop().nodes)
	switch kind {
	case KindBold:
		e.add(&Bold{Children: children})
	case KindItalic:
		e.add(&Italic{Children: children})
	case KindStrikethrough:
		e.add(&Strikethrough{Children: children})
	}
}

func (e *astEmitter) closeLink(href string, _ inlineContext) {
	children := mergeText(e.pop().nodes)
	e.add(&Link{
		Href:     UnescapeMarkdown(strings.TrimSpace(href)),
		Children: children,
	})
}

func (e *astEmitter) image(alt, source string, _ inlineContext) {
	src := ParseImageSourceAndTitle(source, true)
	e.add(&Image{
		Src:   src.Src,
		Alt:   UnescapeMarkdown(alt),
		Title: src.Title,
	})
}

func (e *astEmitter) result() []Inline {
	return mergeText(e.stack[0].nodes)
}

// mergeText folds runs of adjacent Text nodes into single nodes.
func mergeText(nodes []Inline) []Inline {
	var result []Inline
	for _, n := range nodes {
		text, ok := n.(*Text)
		if !ok {
			result = append(result, n)
			continue
		}
		if last := len(result) - 1; last >= 0 {
			if prev, ok := result[last].(*Text); ok {
				result[last] = &Text{Content: prev.Content + text.Content}
				continue
			}
		}
		result = append(result, &Text{Content: text.Content})
	}
	return result
}

// segmentEmitter produces flat segments for one line. Markers are kept
// as delimiter segments so the output reproduces the input.
type segmentEmitter struct {
	base     SegmentType
	lineMeta map[string]string
	segments []Segment
}

func newSegmentEmitter(base SegmentType, lineMeta map[string]string) *segmentEmitter {
	return &segmentEmitter{base: base, lineMeta: lineMeta}
}

func (e *segmentEmitter) add(text string, typ SegmentType, meta map[string]string) {
	if text == "" {
		return
	}
	e.segments = append(e.segments, Segment{Text: text, Type: typ, Meta: meta})
}

func (e *segmentEmitter) textType(ctx inlineContext) SegmentType {
	switch ctx.kind {
	case KindBold:
		return SegmentBold
	case KindItalic:
		return SegmentItalic
	case KindStrikethrough:
		return SegmentStrikethrough
	case KindLink:
		return SegmentLink
	}
	return e.base
}

func (e *segmentEmitter) meta(ctx inlineContext) map[string]string {
	m := cloneMeta(e.lineMeta)
	set := func(key string, v bool) {
		if !v {
			return
		}
		if m == nil {
			m = make(map[string]string, 4)
		}
		m[key] = "true"
	}
	set(MetaBold, ctx.bold)
	set(MetaItalic, ctx.italic)
	set(MetaStrikethrough, ctx.strikethrough)
	set(MetaLink, ctx.link)
	return m
}

func (e *segmentEmitter) delimiter(marker string, ctx inlineContext) {
	e.add(marker, SegmentDelimiter, e.meta(ctx))
}

func (e *segmentEmitter) literal(s string, ctx inlineContext) {
	e.add(s, e.textType(ctx), e.meta(ctx))
}

func (e *segmentEmitter) escape(ch string, ctx inlineContext) {
	e.delimiter(`\`, ctx)
	e.literal(ch, ctx)
}

func (e *segmentEmitter) code(content string, ctx inlineContext) {
	e.delimiter("`", ctx)
	e.add(content, SegmentCode, e.meta(ctx))
	e.delimiter("`", ctx)
}

func (e *segmentEmitter) open(_ InlineKind, marker string, ctx inlineContext) {
	e.delimiter(marker, ctx)
}

func (e *segmentEmitter) close(_ InlineKind, marker string, ctx inlineContext) {
	e.delimiter(marker, ctx)
}

func (e *segmentEmitter) closeLink(href string, ctx inlineContext) {
	e.delimiter("](", ctx)
	e.add(href, SegmentLinkURL, e.meta(ctx))
	e.delimiter(")", ctx)
}

func (e *segmentEmitter) image(alt, source string, ctx inlineContext) {
	src := ParseImageSourceAndTitle(source, false)
	m := e.meta(ctx)
	if m == nil {
		m = make(map[string]string, 3)
	}
	m[MetaSrc] = src.Src
	m[MetaAlt] = alt
	if src.Title != "" {
		m[MetaTitle] = src.Title
	}
	e.add("!["+alt+"]("+source+")", SegmentImage, m)
}

func cloneMeta(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	result := make(map[string]string, len(m)+2)
	for k, v := range m {
		result[k] = v
	}
	return result
}

func headingMeta(level int) map[string]string {
	return map[string]string{
		MetaLine:  LineHeading,
		MetaLevel: strconv.Itoa(level),
	}
}

package markdown

// Highlight splits text into styled segments for an editable overlay.
// The concatenated Text of the result always equals text.
func Highlight(text string, features *FeatureSet) []Segment {
	if text == "" {
		return nil
	}
	h := &highlighter{
		rules:    lineRules{lines: splitLines(text), features: features},
		fenceEnd: -1,
	}
	return h.run()
}

type highlighter struct {
	rules    lineRules
	segments []Segment

	// fenceEnd is the index of the closing line of the fenced
	// block being highlighted, or -1 outside of a block.
	fenceEnd int
}

// run merges segments within each line only, so every line break
// stays a segment of its own.
func (h *highlighter) run() []Segment {
	var result []Segment
	for i, l := range h.rules.lines {
		h.segments = nil
		typ, meta := h.highlightLine(i)
		result = append(result, mergeSegments(h.segments)...)
		if l.EOL != "" {
			result = append(result, Segment{Text: l.EOL, Type: typ, Meta: meta})
		}
	}
	return result
}

func (h *highlighter) add(text string, typ SegmentType, meta map[string]string) {
	if text == "" {
		return
	}
	h.segments = append(h.segments, Segment{Text: text, Type: typ, Meta: meta})
}

func (h *highlighter) inline(text string, base SegmentType, lineMeta map[string]string) {
	e := newSegmentEmitter(base, lineMeta)
	tokenizeInline(text, h.rules.features, e)
	h.segments = append(h.segments, e.segments...)
}

// highlightLine emits the segments of line i and returns the type and
// meta that the following line break should carry.
func (h *highlighter) highlightLine(i int) (SegmentType, map[string]string) {
	text := h.rules.lines[i].Text

	if h.fenceEnd >= i {
		meta := map[string]string{MetaLine: LineCodeFence}
		if i == h.fenceEnd {
			h.fenceEnd = -1
			h.add(fence, SegmentDelimiter, meta)
			h.add(text[len(fence):], SegmentCodeBlock, meta)
		} else {
			h.add(text, SegmentCodeBlock, meta)
		}
		return SegmentText, meta
	}

	if isBlank(text) {
		h.add(text, SegmentText, nil)
		return SegmentText, nil
	}

	if _, end, ok := h.rules.fencedBlock(i); ok {
		h.fenceEnd = end
		meta := map[string]string{MetaLine: LineCodeFence}
		h.add(fence, SegmentDelimiter, meta)
		h.add(text[len(fence):], SegmentCodeBlock, meta)
		return SegmentText, meta
	}

	if m, ok := h.rules.heading(i); ok {
		meta := headingMeta(m.level)
		h.add(m.marker, SegmentDelimiter, meta)
		h.inline(m.content, SegmentHeading, meta)
		return SegmentHeading, meta
	}

	if h.rules.rule(i) {
		h.add(text, SegmentHorizontalRule, nil)
		return SegmentText, nil
	}

	if marker, content, ok := h.rules.quote(i); ok {
		meta := map[string]string{MetaLine: LineQuote}
		h.add(marker, SegmentQuoteMarker, meta)
		h.inline(content, SegmentQuote, meta)
		return SegmentText, meta
	}

	if m, ok := h.rules.listItem(i); ok {
		h.add(m.marker, SegmentListMarker, nil)
		h.inline(m.content, SegmentText, nil)
		return SegmentText, nil
	}

	h.inline(text, SegmentText, nil)
	return SegmentText, nil
}

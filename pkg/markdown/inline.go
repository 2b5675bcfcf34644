package markdown

import (
	"strings"
)

// inlineContext carries the emphasis that encloses the text being
// scanned. It is passed by value so that every recursion level works
// on its own copy.
type inlineContext struct {
	bold          bool
	italic        bool
	strikethrough bool
	link          bool

	// kind is the innermost enclosing container, or empty at the top level.
	kind InlineKind
}

func (c inlineContext) enter(kind InlineKind) inlineContext {
	switch kind {
	case KindBold:
		c.bold = true
	case KindItalic:
		c.italic = true
	case KindStrikethrough:
		c.strikethrough = true
	case KindLink:
		c.link = true
	}
	c.kind = kind
	return c
}

// emitter receives the constructs recognized by the inline tokenizer.
// Containers are reported with open/close pairs that nest properly.
type emitter interface {
	literal(s string, ctx inlineContext)
	escape(ch string, ctx inlineContext)
	code(content string, ctx inlineContext)
	open(kind InlineKind, marker string, ctx inlineContext)
	close(kind InlineKind, marker string, ctx inlineContext)
	closeLink(href string, ctx inlineContext)
	image(alt, source string, ctx inlineContext)
}

type tokenizer struct {
	features *FeatureSet
	emit     emitter
}

func tokenizeInline(text string, features *FeatureSet, e emitter) {
	t := &tokenizer{features: features, emit: e}
	t.scan(text, inlineContext{})
}

func (t *tokenizer) scan(text string, ctx inlineContext) {
	s := &inlineScan{t: t, text: text, ctx: ctx}
	s.run()
}

type inlineScan struct {
	t    *tokenizer
	text string
	ctx  inlineContext
	lit  strings.Builder
}

func (s *inlineScan) run() {
	for i := 0; i < len(s.text); {
		if next, ok := s.match(i); ok {
			i = next
			continue
		}
		_ = s.lit.WriteByte(s.text[i])
		i++
	}
	s.flush()
}

func (s *inlineScan) flush() {
	if s.lit.Len() == 0 {
		return
	}
	s.t.emit.literal(s.lit.String(), s.ctx)
	s.lit.Reset()
}

func (s *inlineScan) enabled(f Feature) bool {
	return IsFeatureEnabled(s.t.features, f)
}

// match tries every construct that can start at i. Two-character
// markers are tried before their single-character counterparts.
func (s *inlineScan) match(i int) (int, bool) {
	switch s.text[i] {
	case '\\':
		return s.escape(i)
	case '`':
		return s.code(i)
	case '*', '_':
		marker := s.text[i : i+1]
		if next, ok := s.delimited(i, marker+marker, KindBold, FeatureBold); ok {
			return next, true
		}
		return s.delimited(i, marker, KindItalic, FeatureItalic)
	case '~':
		return s.delimited(i, "~~", KindStrikethrough, FeatureStrikethrough)
	case '!':
		return s.image(i)
	case '[':
		return s.link(i)
	}
	return 0, false
}

func (s *inlineScan) escape(i int) (int, bool) {
	if i+1 >= len(s.text) || !isSpecialChar(s.text[i+1]) {
		return 0, false
	}
	s.flush()
	s.t.emit.escape(s.text[i+1:i+2], s.ctx)
	return i + 2, true
}

func (s *inlineScan) code(i int) (int, bool) {
	if !s.enabled(FeatureCode) {
		return 0, false
	}
	end := FindUnescapedToken(s.text, "`", i+1)
	if end <= i+1 {
		return 0, false
	}
	s.flush()
	s.t.emit.code(s.text[i+1:end], s.ctx)
	return end + 1, true
}

func (s *inlineScan) delimited(i int, marker string, kind InlineKind, feature Feature) (int, bool) {
	if !s.enabled(feature) || !strings.HasPrefix(s.text[i:], marker) {
		return 0, false
	}
	start := i + len(marker)
	end := FindUnescapedToken(s.text, marker, start)
	if end <= start {
		return 0, false
	}
	s.flush()
	s.t.emit.open(kind, marker, s.ctx)
	s.t.scan(s.text[start:end], s.ctx.enter(kind))
	s.t.emit.close(kind, marker, s.ctx)
	return end + len(marker), true
}

// bracketed locates "[label](dest)" with the opening bracket at open.
// It returns the indexes of "]" and ")".
func (s *inlineScan) bracketed(open int) (closeBracket, closeParen int, ok bool) {
	closeBracket = FindUnescapedToken(s.text, "]", open+1)
	if closeBracket == -1 || closeBracket+1 >= len(s.text) || s.text[closeBracket+1] != '(' {
		return 0, 0, false
	}
	closeParen = FindUnescapedToken(s.text, ")", closeBracket+2)
	if closeParen == -1 {
		return 0, 0, false
	}
	return closeBracket, closeParen, true
}

func (s *inlineScan) image(i int) (int, bool) {
	if i+1 >= len(s.text) || s.text[i+1] != '[' {
		return 0, false
	}
	closeBracket, closeParen, complete := s.bracketed(i + 1)

	if !s.enabled(FeatureImage) {
		// Keep the whole construct literal so that the inner
		// "[alt](src)" is not picked up as a link.
		if complete {
			_, _ = s.lit.WriteString(s.text[i : closeParen+1])
			return closeParen + 1, true
		}
		_ = s.lit.WriteByte('!')
		return i + 1, true
	}
	if !complete {
		return 0, false
	}

	s.flush()
	s.t.emit.image(s.text[i+2:closeBracket], s.text[closeBracket+2:closeParen], s.ctx)
	return closeParen + 1, true
}

func (s *inlineScan) link(i int) (int, bool) {
	closeBracket, closeParen, ok := s.bracketed(i)
	if !ok {
		return 0, false
	}
	s.flush()
	s.t.emit.open(KindLink, "[", s.ctx)
	s.t.scan(s.text[i+1:closeBracket], s.ctx.enter(KindLink))
	s.t.emit.closeLink(s.text[closeBracket+2:closeParen], s.ctx)
	return closeParen + 1, true
}

// ParseInline tokenizes a single run of inline Markdown.
func ParseInline(text string, features *FeatureSet) []Inline {
	e := newASTEmitter()
	tokenizeInline(text, features, e)
	return e.result()
}

package markdown

import (
	"strings"
)

// Parse converts Markdown text into a list of blocks. Features
// restricts the recognized syntax; nil enables everything.
func Parse(text string, features *FeatureSet) []Block {
	if text == "" {
		return nil
	}
	p := &blockParser{
		rules: lineRules{lines: splitLines(text), features: features},
	}
	return p.parse()
}

type blockParser struct {
	rules  lineRules
	blocks []Block
}

func (p *blockParser) parse() []Block {
	lines := p.rules.lines
	for i := 0; i < len(lines); {
		i = p.parseBlock(i)
	}
	return p.blocks
}

func (p *blockParser) add(b Block) {
	p.blocks = append(p.blocks, b)
}

func (p *blockParser) inline(text string) []Inline {
	return ParseInline(text, p.rules.features)
}

// parseBlock consumes the block starting at line i and returns
// the index of the first line after it.
func (p *blockParser) parseBlock(i int) int {
	lines := p.rules.lines
	text := lines[i].Text

	if isBlank(text) {
		p.add(&Spacer{})
		return i + 1
	}

	if info, end, ok := p.rules.fencedBlock(i); ok {
		body := make([]string, 0, end-i-1)
		for _, l := range lines[i+1 : end] {
			body = append(body, l.Text)
		}
		p.add(&CodeBlock{
			Language: info,
			Content:  strings.Join(body, "\n"),
		})
		return end + 1
	}

	if m, ok := p.rules.heading(i); ok {
		p.add(&Heading{
			Level:    m.level,
			Children: p.inline(m.content),
		})
		return i + 1
	}

	if p.rules.rule(i) {
		p.add(&HorizontalRule{})
		return i + 1
	}

	if _, _, ok := p.rules.quote(i); ok {
		return p.parseBlockquote(i)
	}

	if m, ok := p.rules.listItem(i); ok {
		return p.parseList(i, m.ordered)
	}

	return p.parseParagraph(i)
}

func (p *blockParser) parseBlockquote(i int) int {
	var content []string
	for ; i < len(p.rules.lines); i++ {
		_, c, ok := p.rules.quote(i)
		if !ok {
			break
		}
		content = append(content, c)
	}
	p.add(&Blockquote{Children: p.inline(strings.Join(content, "\n"))})
	return i
}

func (p *blockParser) parseList(i int, ordered bool) int {
	list := &List{Ordered: ordered}
	for ; i < len(p.rules.lines); i++ {
		if p.rules.rule(i) {
			break
		}
		m, ok := p.rules.listItem(i)
		if !ok || m.ordered != ordered {
			break
		}
		list.Items = append(list.Items, p.inline(m.content))
	}
	p.add(list)
	return i
}

func (p *blockParser) parseParagraph(i int) int {
	lines := p.rules.lines
	content := []string{lines[i].Text}
	j := i + 1
	for ; j < len(lines); j++ {
		if isBlank(lines[j].Text) || p.rules.isBlockStart(j) {
			break
		}
		content = append(content, lines[j].Text)
	}
	p.add(&Paragraph{Children: p.inline(strings.Join(content, "\n"))})
	return j
}

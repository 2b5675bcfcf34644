package markdown

// BlockKind identifies the type of a Block.
type BlockKind string

const (
	KindParagraph      BlockKind = "paragraph"
	KindHeading        BlockKind = "heading"
	KindCodeBlock      BlockKind = "codeBlock"
	KindBlockquote     BlockKind = "blockquote"
	KindHorizontalRule BlockKind = "horizontalRule"
	KindSpacer         BlockKind = "spacer"
	KindList           BlockKind = "list"
)

// InlineKind identifies the type of an Inline.
type InlineKind string

const (
	KindText          InlineKind = "text"
	KindBold          InlineKind = "bold"
	KindItalic        InlineKind = "italic"
	KindStrikethrough InlineKind = "strikethrough"
	KindCode          InlineKind = "code"
	KindLink          InlineKind = "link"
	KindImage         InlineKind = "image"
)

// Block is a top-level node of a parsed document.
type Block interface {
	Kind() BlockKind
	block()
}

// Inline is a node within a block's content.
type Inline interface {
	Kind() InlineKind
	inline()
}

type Paragraph struct {
	Children []Inline
}

type Heading struct {
	Level    int
	Children []Inline
}

type CodeBlock struct {
	// Language is the info string after the opening fence. Empty if absent.
	Language string
	Content  string
}

type Blockquote struct {
	Children []Inline
}

type HorizontalRule struct{}

// Spacer represents a single blank line.
type Spacer struct{}

type List struct {
	Ordered bool
	Items   [][]Inline
}

func (*Paragraph) Kind() BlockKind      { return KindParagraph }
func (*Heading) Kind() BlockKind        { return KindHeading }
func (*CodeBlock) Kind() BlockKind      { return KindCodeBlock }
func (*Blockquote) Kind() BlockKind     { return KindBlockquote }
func (*HorizontalRule) Kind() BlockKind { return KindHorizontalRule }
func (*Spacer) Kind() BlockKind         { return KindSpacer }
func (*List) Kind() BlockKind           { return KindList }

func (*Paragraph) block()      {}
func (*Heading) block()        {}
func (*CodeBlock) block()      {}
func (*Blockquote) block()     {}
func (*HorizontalRule) block() {}
func (*Spacer) block()         {}
func (*List) block()           {}

type Text struct {
	Content string
}

type Bold struct {
	Children []Inline
}

type Italic struct {
	Children []Inline
}

type Strikethrough struct {
	Children []Inline
}

type Code struct {
	Content string
}

type Link struct {
	Href     string
	Children []Inline
}

type Image struct {
	Src   string
	Alt   string
	Title string
}

func (*Text) Kind() InlineKind          { return KindText }
func (*Bold) Kind() InlineKind          { return KindBold }
func (*Italic) Kind() InlineKind        { return KindItalic }
func (*Strikethrough) Kind() InlineKind { return KindStrikethrough }
func (*Code) Kind() InlineKind          { return KindCode }
func (*Link) Kind() InlineKind          { return KindLink }
func (*Image) Kind() InlineKind         { return KindImage }

func (*Text) inline()          {}
func (*Bold) inline()          {}
func (*Italic) inline()        {}
func (*Strikethrough) inline() {}
func (*Code) inline()          {}
func (*Link) inline()          {}
func (*Image) inline()         {}

// PlainText returns the visible text of inlines with all markup removed.
// Images contribute their alt text.
func PlainText(inlines []Inline) string {
	var buf []byte
	var walk func([]Inline)
	walk = func(nodes []Inline) {
		for _, n := range nodes {
			switch n := n.(type) {
			case *Text:
				buf = append(buf, n.Content...)
			case *Code:
				buf = append(buf, n.Content...)
			case *Image:
				buf = append(buf, n.Alt...)
			case *Bold:
				walk(n.Children)
			case *Italic:
				walk(n.Children)
			case *Strikethrough:
				walk(n.Children)
			case *Link:
				walk(n.Children)
			}
		}
	}
	walk(inlines)
	return string(buf)
}

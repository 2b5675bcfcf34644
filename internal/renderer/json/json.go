// Package json converts parsed Markdown and highlight results into
// values that marshal to type-tagged JSON.
package json

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/stateful/mdedit/pkg/markdown"
	"github.com/stateful/mdedit/pkg/markdown/toolbar"
)

// Node is a block or inline node. Type holds the node kind and
// only the fields relevant for that kind are set.
type Node struct {
	Type     string    `json:"type"`
	Level    int       `json:"level,omitempty"`
	Ordered  bool      `json:"ordered,omitempty"`
	Language string    `json:"language,omitempty"`
	Content  string    `json:"content,omitempty"`
	Href     string    `json:"href,omitempty"`
	Src      string    `json:"src,omitempty"`
	Alt      string    `json:"alt,omitempty"`
	Title    string    `json:"title,omitempty"`
	Children []*Node   `json:"children,omitempty"`
	Items    [][]*Node `json:"items,omitempty"`
}

type Segment struct {
	Text string            `json:"text"`
	Type string            `json:"type"`
	Meta map[string]string `json:"meta,omitempty"`
}

type Document struct {
	Blocks []*Node `json:"blocks"`
}

type Highlight struct {
	Segments []Segment `json:"segments"`
}

type ToolbarResult struct {
	Action string `json:"action"`
	toolbar.Result
}

func FromBlocks(blocks []markdown.Block) Document {
	result := make([]*Node, 0, len(blocks))
	for _, b := range blocks {
		result = append(result, fromBlock(b))
	}
	return Document{Blocks: result}
}

func FromInlines(inlines []markdown.Inline) []*Node {
	result := make([]*Node, 0, len(inlines))
	for _, n := range inlines {
		result = append(result, fromInline(n))
	}
	return result
}

func FromSegments(segments []markdown.Segment) Highlight {
	result := make([]Segment, 0, len(segments))
	for _, s := range segments {
		result = append(result, Segment{Text: s.Text, Type: string(s.Type), Meta: s.Meta})
	}
	return Highlight{Segments: result}
}

func FromToolbarResult(action toolbar.Action, r toolbar.Result) ToolbarResult {
	if r.ActiveInlineActions == nil {
		r.ActiveInlineActions = []toolbar.Action{}
	}
	return ToolbarResult{Action: string(action), Result: r}
}

// Marshal encodes v with two-space indentation.
func Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	return data, errors.WithStack(err)
}

func fromBlock(b markdown.Block) *Node {
	n := &Node{Type: string(b.Kind())}
	switch b := b.(type) {
	case *markdown.Paragraph:
		n.Children = FromInlines(b.Children)
	case *markdown.Heading:
		n.Level = b.Level
		n.Children = FromInlines(b.Children)
	case *markdown.CodeBlock:
		n.Language = b.Language
		n.Content = b.Content
	case *markdown.Blockquote:
		n.Children = FromInlines(b.Children)
	case *markdown.List:
		n.Ordered = b.Ordered
		for _, item := range b.Items {
			n.Items = append(n.Items, FromInlines(item))
		}
	}
	return n
}

func fromInline(in markdown.Inline) *Node {
	n := &Node{Type: string(in.Kind())}
	switch in := in.(type) {
	case *markdown.Text:
		n.Content = in.Content
	case *markdown.Bold:
		n.Children = FromInlines(in.Children)
	case *markdown.Italic:
		n.Children = FromInlines(in.Children)
	case *markdown.Strikethrough:
		n.Children = FromInlines(in.Children)
	case *markdown.Code:
		n.Content = in.Content
	case *markdown.Link:
		n.Href = in.Href
		n.Children = FromInlines(in.Children)
	case *markdown.Image:
		n.Src = in.Src
		n.Alt = in.Alt
		n.Title = in.Title
	}
	return n
}

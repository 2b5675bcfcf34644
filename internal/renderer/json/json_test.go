package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/mdedit/pkg/markdown"
	"github.com/stateful/mdedit/pkg/markdown/toolbar"
)

func TestFromBlocks(t *testing.T) {
	doc := FromBlocks(markdown.Parse("## Hi *there*\n\n- [a](u)\n```sh\nls\n```", nil))

	data, err := Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
  "blocks": [
    {"type": "heading", "level": 2, "children": [
      {"type": "text", "content": "Hi "},
      {"type": "italic", "children": [{"type": "text", "content": "there"}]}
    ]},
    {"type": "spacer"},
    {"type": "list", "items": [
      [{"type": "link", "href": "u", "children": [{"type": "text", "content": "a"}]}]
    ]},
    {"type": "codeBlock", "language": "sh", "content": "ls"}
  ]
}`, string(data))
}

func TestFromInlines_Image(t *testing.T) {
	nodes := FromInlines(markdown.ParseInline(`![alt](a.png "T")`, nil))
	require.Len(t, nodes, 1)
	assert.Equal(t, &Node{Type: "image", Src: "a.png", Alt: "alt", Title: "T"}, nodes[0])
}

func TestFromSegments(t *testing.T) {
	data, err := Marshal(FromSegments(markdown.Highlight("**a**", nil)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"segments": [
  {"text": "**", "type": "delimiter"},
  {"text": "a", "type": "bold", "meta": {"bold": "true"}},
  {"text": "**", "type": "delimiter"}
]}`, string(data))

	data, err = Marshal(FromSegments(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"segments": []}`, string(data))
}

func TestFromToolbarResult(t *testing.T) {
	result, err := toolbar.Apply(toolbar.Request{
		Action:    toolbar.ActionBold,
		Text:      "hello world",
		Selection: toolbar.Selection{Start: 6, End: 11},
	})
	require.NoError(t, err)

	data, err := Marshal(FromToolbarResult(toolbar.ActionBold, result))
	require.NoError(t, err)
	assert.JSONEq(t, `{
  "action": "bold",
  "text": "hello **world**",
  "selection": {"start": 8, "end": 13},
  "activeInlineActions": []
}`, string(data))
}

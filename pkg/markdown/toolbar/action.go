package toolbar

import (
	"github.com/pkg/errors"
)

// Action is a formatting command issued by a toolbar.
type Action string

const (
	ActionBold          Action = "bold"
	ActionItalic        Action = "italic"
	ActionStrikethrough Action = "strikethrough"
	ActionCode          Action = "code"

	ActionHeading       Action = "heading"
	ActionHeading1      Action = "heading1"
	ActionHeading2      Action = "heading2"
	ActionHeading3      Action = "heading3"
	ActionHeading4      Action = "heading4"
	ActionHeading5      Action = "heading5"
	ActionHeading6      Action = "heading6"
	ActionQuote         Action = "quote"
	ActionUnorderedList Action = "unorderedList"
	ActionOrderedList   Action = "orderedList"
	ActionDivider       Action = "divider"
	ActionCodeBlock     Action = "codeBlock"

	ActionImage Action = "image"
)

var ErrUnknownAction = errors.New("unknown toolbar action")

// ParseAction validates an action name.
func ParseAction(name string) (Action, error) {
	a := Action(name)
	if a.IsInline() || a.IsBlock() || a == ActionImage {
		return a, nil
	}
	return "", errors.Wrapf(ErrUnknownAction, "%q", name)
}

type markerPair struct {
	open  string
	close string
}

var inlineMarkers = map[Action]markerPair{
	ActionBold:          {open: "**", close: "**"},
	ActionItalic:        {open: "*", close: "*"},
	ActionStrikethrough: {open: "~~", close: "~~"},
	ActionCode:          {open: "`", close: "`"},
}

// IsInline reports whether the action wraps text with a marker pair.
func (a Action) IsInline() bool {
	_, ok := inlineMarkers[a]
	return ok
}

// IsBlock reports whether the action transforms whole lines.
func (a Action) IsBlock() bool {
	_, ok := blockTransforms[a]
	return ok
}

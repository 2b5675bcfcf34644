// Package toolbar turns formatting actions into edits of raw Markdown.
//
// All offsets are rune offsets into the text.
package toolbar

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const imageTemplate = "![](url)"

// Selection is a half-open range [Start, End). A caret has Start == End.
type Selection struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func Caret(pos int) Selection {
	return Selection{Start: pos, End: pos}
}

func (s Selection) IsCaret() bool {
	return s.Start == s.End
}

// bounds returns the selection ordered and clamped to [0, n].
func (s Selection) bounds(n int) (int, int) {
	start, end := clamp(s.Start, 0, n), clamp(s.End, 0, n)
	if start > end {
		start, end = end, start
	}
	return start, end
}

type Request struct {
	Action              Action
	Text                string
	Selection           Selection
	ActiveInlineActions []Action
}

type Result struct {
	Text                string    `json:"text"`
	Selection           Selection `json:"selection"`
	ActiveInlineActions []Action  `json:"activeInlineActions"`
}

// Apply computes the text and selection after performing req.Action.
func Apply(req Request) (Result, error) {
	switch {
	case req.Action.IsInline():
		return applyInline(req), nil
	case req.Action.IsBlock():
		return applyBlock(req), nil
	case req.Action == ActionImage:
		return applyImage(req), nil
	}
	return Result{}, errors.Wrapf(ErrUnknownAction, "%q", req.Action)
}

func applyInline(req Request) Result {
	text := []rune(req.Text)
	markers := inlineMarkers[req.Action]
	start, end := req.Selection.bounds(len(text))

	if !req.Selection.IsCaret() {
		var b strings.Builder
		_, _ = b.WriteString(string(text[:start]))
		_, _ = b.WriteString(markers.open)
		_, _ = b.WriteString(string(text[start:end]))
		_, _ = b.WriteString(markers.close)
		_, _ = b.WriteString(string(text[end:]))

		shift := utf8.RuneCountInString(markers.open)
		return Result{
			Text:                b.String(),
			Selection:           Selection{Start: start + shift, End: end + shift},
			ActiveInlineActions: withoutAction(req.ActiveInlineActions, req.Action),
		}
	}

	active := containsAction(req.ActiveInlineActions, req.Action)
	marker := markers.open
	if active {
		marker = markers.close
	}

	caret := start + utf8.RuneCountInString(marker)
	result := Result{
		Text:      string(text[:start]) + marker + string(text[start:]),
		Selection: Caret(caret),
	}
	if active {
		result.ActiveInlineActions = withoutAction(req.ActiveInlineActions, req.Action)
	} else {
		result.ActiveInlineActions = append(copyActions(req.ActiveInlineActions), req.Action)
	}
	return result
}

func applyBlock(req Request) Result {
	text := []rune(req.Text)
	start, end := req.Selection.bounds(len(text))

	lineStart := 0
	for i := start - 1; i >= 0; i-- {
		if text[i] == '\n' {
			lineStart = i + 1
			break
		}
	}
	lineEnd := len(text)
	for i := end; i < len(text); i++ {
		if text[i] == '\n' {
			lineEnd = i
			break
		}
	}

	block := string(text[lineStart:lineEnd])
	sep := "\n"
	if strings.Contains(block, "\r\n") {
		sep = "\r\n"
	}
	lines := strings.Split(block, sep)
	newBlock := strings.Join(blockTransforms[req.Action](lines), sep)
	newLen := utf8.RuneCountInString(newBlock)

	result := Result{
		Text:                string(text[:lineStart]) + newBlock + string(text[lineEnd:]),
		ActiveInlineActions: copyActions(req.ActiveInlineActions),
	}

	if req.Selection.IsCaret() {
		delta := newLen - (lineEnd - lineStart)
		result.Selection = Caret(clamp(start+delta, lineStart, lineStart+newLen))
	} else {
		result.Selection = Selection{Start: lineStart, End: lineStart + newLen}
	}

	return result
}

func applyImage(req Request) Result {
	text := []rune(req.Text)
	pos, _ := req.Selection.bounds(len(text))
	return Result{
		Text:                string(text[:pos]) + imageTemplate + string(text[pos:]),
		Selection:           Caret(pos + 2),
		ActiveInlineActions: copyActions(req.ActiveInlineActions),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func containsAction(actions []Action, a Action) bool {
	for _, item := range actions {
		if item == a {
			return true
		}
	}
	return false
}

func copyActions(actions []Action) []Action {
	result := make([]Action, 0, len(actions)+1)
	return append(result, actions...)
}

func withoutAction(actions []Action, a Action) []Action {
	result := make([]Action, 0, len(actions))
	for _, item := range actions {
		if item != a {
			result = append(result, item)
		}
	}
	return result
}

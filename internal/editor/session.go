// Package editor keeps the state of a Markdown editing session
// and applies toolbar actions to it.
package editor

import (
	"sync"
	"unicode/utf8"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/mdedit/internal/ulid"
	"github.com/stateful/mdedit/pkg/markdown"
	"github.com/stateful/mdedit/pkg/markdown/toolbar"
)

const maxHistory = 100

type state struct {
	text      string
	selection toolbar.Selection
	active    []toolbar.Action
}

// Session is a single editing session. It is safe for concurrent use.
type Session struct {
	ID string

	features *markdown.FeatureSet
	cache    *Cache
	logger   *zap.Logger

	mu      sync.RWMutex
	current state
	history []state
}

type SessionOption func(*Session)

// WithFeatures restricts the syntax recognized in the session.
// By default all features are enabled.
func WithFeatures(features *markdown.FeatureSet) SessionOption {
	return func(s *Session) {
		s.features = features
	}
}

func WithCache(cache *Cache) SessionOption {
	return func(s *Session) {
		s.cache = cache
	}
}

func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession starts a session with text and the caret at its end.
func NewSession(text string, opts ...SessionOption) *Session {
	s := &Session{
		ID: ulid.GenerateID(),
		current: state{
			text:      text,
			selection: toolbar.Caret(utf8.RuneCountInString(text)),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.logger = s.logger.With(zap.String("session", s.ID))
	return s
}

func (s *Session) Identifier() string {
	return s.ID
}

func (s *Session) Features() *markdown.FeatureSet {
	return s.features
}

func (s *Session) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.text
}

func (s *Session) Selection() toolbar.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.selection
}

func (s *Session) ActiveInlineActions() []toolbar.Action {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]toolbar.Action(nil), s.current.active...)
}

// Select moves the selection. Offsets are clamped to the text.
func (s *Session) Select(sel toolbar.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := utf8.RuneCountInString(s.current.text)
	s.current.selection = toolbar.Selection{
		Start: clamp(sel.Start, 0, n),
		End:   clamp(sel.End, 0, n),
	}
}

// Insert replaces the selection with text and puts the caret after it.
func (s *Session) Insert(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runes := []rune(s.current.text)
	start, end := ordered(s.current.selection, len(runes))

	s.push()
	s.current.text = string(runes[:start]) + text + string(runes[end:])
	s.current.selection = toolbar.Caret(start + utf8.RuneCountInString(text))

	s.logger.Debug("inserted text", zap.Int("at", start), zap.Int("replaced", end-start), zap.Int("length", len(text)))
}

// Apply performs a toolbar action on the current selection.
func (s *Session) Apply(action toolbar.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := toolbar.Apply(toolbar.Request{
		Action:              action,
		Text:                s.current.text,
		Selection:           s.current.selection,
		ActiveInlineActions: s.current.active,
	})
	if err != nil {
		return errors.WithMessagef(err, "session %s", s.ID)
	}

	s.push()
	s.current = state{
		text:      result.Text,
		selection: result.Selection,
		active:    result.ActiveInlineActions,
	}

	s.logger.Debug(
		"applied action",
		zap.String("action", string(action)),
		zap.Int("start", result.Selection.Start),
		zap.Int("end", result.Selection.End),
	)
	return nil
}

// Undo restores the state before the last edit. It reports
// whether there was anything to undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) == 0 {
		return false
	}
	s.current = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	return true
}

func (s *Session) push() {
	if len(s.history) == maxHistory {
		s.history = append(s.history[:0], s.history[1:]...)
	}
	s.history = append(s.history, s.current)
}

// Highlight returns the segments of the current text.
func (s *Session) Highlight() []markdown.Segment {
	text := s.Text()
	if s.cache != nil {
		return s.cache.Highlight(text, s.features)
	}
	return markdown.Highlight(text, s.features)
}

func (s *Session) Blocks() []markdown.Block {
	return markdown.Parse(s.Text(), s.features)
}

// SegmentAt returns the segment containing the rune offset
// and the offset within that segment.
func (s *Session) SegmentAt(offset int) (markdown.Segment, int, bool) {
	segments := s.Highlight()
	idx, inner := markdown.SegmentAt(segments, offset)
	if idx < 0 {
		return markdown.Segment{}, 0, false
	}
	return segments[idx], inner, true
}

// FormattingAt returns the inline actions in effect for the character
// before the rune offset, or the first character at offset zero.
// Toolbars use it to show which buttons are active.
func (s *Session) FormattingAt(offset int) []toolbar.Action {
	if offset > 0 {
		offset--
	}
	seg, _, ok := s.SegmentAt(offset)
	if !ok {
		return nil
	}

	var result []toolbar.Action
	if seg.Flag(markdown.MetaBold) {
		result = append(result, toolbar.ActionBold)
	}
	if seg.Flag(markdown.MetaItalic) {
		result = append(result, toolbar.ActionItalic)
	}
	if seg.Flag(markdown.MetaStrikethrough) {
		result = append(result, toolbar.ActionStrikethrough)
	}
	if seg.Type == markdown.SegmentCode {
		result = append(result, toolbar.ActionCode)
	}
	return result
}

func ordered(sel toolbar.Selection, n int) (int, int) {
	start, end := clamp(sel.Start, 0, n), clamp(sel.End, 0, n)
	if start > end {
		start, end = end, start
	}
	return start, end
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

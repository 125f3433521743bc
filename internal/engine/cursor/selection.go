package cursor

import (
	"fmt"
	"unicode/utf8"
)

// ByteOffset is a byte position within document text.
type ByteOffset = int

// Range is a half-open byte range [Start, End).
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Selection represents a range of selected text.
// Anchor is where the selection started; Head is the current cursor position.
type Selection struct {
	Anchor ByteOffset
	Head   ByteOffset
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head ByteOffset) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection representing just a cursor.
func NewCursorSelection(offset ByteOffset) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// NewRangeSelection creates a forward selection covering r.
func NewRangeSelection(r Range) Selection {
	return Selection{Anchor: r.Start, Head: r.End}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Start returns the lower bound of the selection.
func (s Selection) Start() ByteOffset {
	return min(s.Anchor, s.Head)
}

// End returns the upper bound of the selection.
func (s Selection) End() ByteOffset {
	return max(s.Anchor, s.Head)
}

// Range returns the selection as a range (always Start <= End).
func (s Selection) Range() Range {
	return Range{Start: s.Start(), End: s.End()}
}

// IsBackward returns true if the head sits before the anchor.
func (s Selection) IsBackward() bool {
	return s.Head < s.Anchor
}

// MoveTo returns a collapsed selection at offset.
func (s Selection) MoveTo(offset ByteOffset) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// Shift returns the selection moved by delta bytes.
func (s Selection) Shift(delta int) Selection {
	return Selection{Anchor: s.Anchor + delta, Head: s.Head + delta}
}

// Overlaps returns true if the two selections share at least one byte,
// or if both are cursors at the same offset.
func (s Selection) Overlaps(other Selection) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return s.Range() == other.Range() ||
			(s.Start() > other.Start() && s.Start() < other.End()) ||
			(other.Start() > s.Start() && other.Start() < s.End())
	}
	return s.Start() < other.End() && other.Start() < s.End()
}

// Merge returns a forward selection covering both selections.
func (s Selection) Merge(other Selection) Selection {
	return Selection{
		Anchor: min(s.Start(), other.Start()),
		Head:   max(s.End(), other.End()),
	}
}

// Clamp returns the selection clamped to [0, maxOffset].
func (s Selection) Clamp(maxOffset ByteOffset) Selection {
	return Selection{
		Anchor: clamp(s.Anchor, maxOffset),
		Head:   clamp(s.Head, maxOffset),
	}
}

// ClampText clamps the selection to text and moves each offset that falls
// inside a multi-byte rune back to the start of that rune.
func (s Selection) ClampText(text string) Selection {
	s = s.Clamp(len(text))
	return Selection{
		Anchor: runeStart(text, s.Anchor),
		Head:   runeStart(text, s.Head),
	}
}

func runeStart(text string, off ByteOffset) ByteOffset {
	for off > 0 && off < len(text) && !utf8.RuneStart(text[off]) {
		off--
	}
	return off
}

// Fragment returns the text spanned by the selection.
// Offsets are clamped to the text and to rune boundaries.
func (s Selection) Fragment(text string) string {
	r := s.ClampText(text).Range()
	return text[r.Start:r.End]
}

// String returns a debug representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%d)", s.Head)
	}
	dir := "→"
	if s.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%d%s%d)", s.Anchor, dir, s.Head)
}

func clamp(offset, maxOffset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}

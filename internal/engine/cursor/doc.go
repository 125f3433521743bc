// Package cursor provides the selection model registers read from.
//
// Selections use an anchor/head model:
//   - Anchor: the position where the selection started
//   - Head: the current cursor position (where typing would occur)
//
// When Anchor == Head the selection is a bare cursor and spans no text.
// Offsets are byte offsets into the document text and ranges are half-open.
//
// A CursorSet holds every selection of one view. It always contains at least
// one selection, keeps selections sorted by start offset, and merges
// selections that overlap. Adjacent selections stay distinct so that a
// multi-value register write keeps one value per selection.
//
// Basic usage:
//
//	cs := cursor.NewCursorSet(cursor.NewSelection(0, 5))
//	cs.Add(cursor.NewSelection(10, 15))
//	parts := cs.Fragments("hello world, hello gopher")
//	// parts == []string{"hello", "d, he"}
//
// Selection is an immutable value type. CursorSet is not safe for concurrent
// use; the editor owns it on its command goroutine.
package cursor

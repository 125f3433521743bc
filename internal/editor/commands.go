package editor

import (
	"slices"
	"strings"

	"github.com/dshills/keyreg/internal/engine/cursor"
	"github.com/dshills/keyreg/internal/register"
)

// edit replaces text[start:end] with text.
type edit struct {
	start, end int
	text       string
}

// applyEdits applies edits to text and returns the result together with
// the range each edit's text occupies afterwards, indexed like edits.
// Edits are applied in position order; an edit starting inside an earlier
// one is moved to that edit's end.
func applyEdits(text string, edits []edit) (string, []cursor.Range) {
	order := make([]int, len(edits))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return edits[a].start - edits[b].start
	})

	var b strings.Builder
	ranges := make([]cursor.Range, len(edits))
	last, delta := 0, 0
	for _, i := range order {
		ed := edits[i]
		start := max(ed.start, last)
		end := max(ed.end, start)

		b.WriteString(text[last:start])
		b.WriteString(ed.text)

		newStart := start + delta
		ranges[i] = cursor.Range{Start: newStart, End: newStart + len(ed.text)}
		delta += len(ed.text) - (end - start)
		last = end
	}
	b.WriteString(text[last:])
	return b.String(), ranges
}

// valueFor returns the value pasted at selection i: the i-th value, or the
// last one when there are fewer values than selections.
func valueFor(values register.Values, i int) string {
	return values.At(min(i, values.Len()-1))
}

// Yank writes the text of each selection of the focused view to reg.
func (e *Editor) Yank(reg rune) (int, error) {
	if reg == 0 {
		reg = register.Default
	}
	v, doc := e.Current()
	fragments := doc.cursors(v.ID).Fragments(doc.text)
	if err := e.Registers.Write(reg, e, fragments); err != nil {
		return 0, &CommandError{Command: "yank", Register: reg, Err: err}
	}
	return len(fragments), nil
}

// Paste inserts the values of reg after (or before) each selection and
// selects the inserted text.
func (e *Editor) Paste(reg rune, after bool) error {
	if reg == 0 {
		reg = register.Default
	}
	values, err := e.readValues("paste", reg)
	if err != nil {
		return err
	}

	v, doc := e.Current()
	sels := doc.cursors(v.ID).All()
	edits := make([]edit, len(sels))
	for i, sel := range sels {
		at := sel.Start()
		if after {
			at = sel.End()
		}
		edits[i] = edit{start: at, end: at, text: valueFor(values, i)}
	}
	e.apply(v, doc, edits)
	return nil
}

// ReplaceWithYanked replaces each selection with the matching value of reg.
func (e *Editor) ReplaceWithYanked(reg rune) error {
	if reg == 0 {
		reg = register.Default
	}
	values, err := e.readValues("replace", reg)
	if err != nil {
		return err
	}

	v, doc := e.Current()
	sels := doc.cursors(v.ID).All()
	edits := make([]edit, len(sels))
	for i, sel := range sels {
		edits[i] = edit{start: sel.Start(), end: sel.End(), text: valueFor(values, i)}
	}
	e.apply(v, doc, edits)
	return nil
}

// Delete yanks the selections into reg and removes them from the document.
// Deleting into the discard register '_' keeps the other registers intact.
func (e *Editor) Delete(reg rune) error {
	if reg == 0 {
		reg = register.Default
	}
	if _, err := e.Yank(reg); err != nil {
		return err
	}

	v, doc := e.Current()
	sels := doc.cursors(v.ID).All()
	edits := make([]edit, len(sels))
	for i, sel := range sels {
		edits[i] = edit{start: sel.Start(), end: sel.End()}
	}
	e.apply(v, doc, edits)
	return nil
}

// InsertRegister inserts the values of reg, joined with the document's
// line ending, before each selection.
func (e *Editor) InsertRegister(reg rune) error {
	values, err := e.readValues("insert", reg)
	if err != nil {
		return err
	}

	v, doc := e.Current()
	joined := strings.Join(values.Slice(), string(doc.lineEnding))
	sels := doc.cursors(v.ID).All()
	edits := make([]edit, len(sels))
	for i, sel := range sels {
		edits[i] = edit{start: sel.Start(), end: sel.Start(), text: joined}
	}
	e.apply(v, doc, edits)
	return nil
}

// RecordHistory pushes entry onto a history register such as '/' or ':'.
// Empty entries are not recorded.
func (e *Editor) RecordHistory(reg rune, entry string) error {
	if entry == "" {
		return nil
	}
	if err := e.Registers.Push(reg, e, entry); err != nil {
		return &CommandError{Command: "history", Register: reg, Err: err}
	}
	return nil
}

func (e *Editor) readValues(command string, reg rune) (register.Values, error) {
	values, ok := e.Registers.Read(reg, e)
	if !ok {
		return register.Values{}, &CommandError{Command: command, Register: reg, Err: ErrUnknownRegister}
	}
	if values.Len() == 0 {
		return register.Values{}, &CommandError{Command: command, Register: reg, Err: ErrEmptyRegister}
	}
	return values, nil
}

// apply edits the document and selects the text each edit produced.
func (e *Editor) apply(v *View, doc *Document, edits []edit) {
	text, ranges := applyEdits(doc.text, edits)

	// Other views keep their offsets, clamped to the new length.
	doc.setText(text)

	sels := make([]cursor.Selection, len(ranges))
	for i, r := range ranges {
		sels[i] = cursor.NewRangeSelection(r)
	}
	doc.cursors(v.ID).SetAll(sels)
}

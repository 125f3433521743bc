package register

import (
	"iter"

	"github.com/dshills/keyreg/internal/engine/cursor"
)

// Reserved register names.
const (
	Discard           = '_'
	SelectionIndices  = '#'
	SelectionContents = '.'
	DocumentPath      = '%'
	SystemClipboard   = '*'
	PrimaryClipboard  = '+'
)

// Conventional names of static registers used by editor commands.
const (
	Default = '"'
	Search  = '/'
	Command = ':'
	Macro   = '@'
)

// reserved lists the registers that always exist.
var reserved = [...]rune{
	Discard,
	SelectionIndices,
	SelectionContents,
	DocumentPath,
	SystemClipboard,
	PrimaryClipboard,
}

// IsReserved reports whether name belongs to a register that cannot be
// removed or cleared.
func IsReserved(name rune) bool {
	for _, r := range reserved {
		if r == name {
			return true
		}
	}
	return false
}

// Placeholder previews.
const (
	emptyPreview = "<empty>"

	// ScratchName is read from '%' when the active document has no path.
	ScratchName = "[scratch]"
)

// Editor is the editor state registers read from.
type Editor interface {
	// ActiveDocument returns the document shown in the focused view.
	ActiveDocument() Document
}

// Document is the focused document as seen from its focused view.
type Document interface {
	Text() string
	// Selections returns the view's selections in document order.
	Selections() []cursor.Selection
	// Path returns the file path, or "" for a scratch document.
	Path() string
	LineEnding() string
}

// Register is a named slot of values.
type Register interface {
	Name() rune

	// Preview returns a one-line summary for register listings.
	Preview() string

	Read(ed Editor) Values

	// Write replaces the register contents, keeping the order of values.
	Write(ed Editor, values []string) error

	// Push adds a value to the register.
	Push(ed Editor, value string) error
}

// readOnly supplies the Write and Push of registers that reject writes.
type readOnly struct {
	name rune
}

func (r readOnly) Name() rune {
	return r.name
}

func (r readOnly) Write(Editor, []string) error {
	return notWritable(r.name, "write")
}

func (r readOnly) Push(Editor, string) error {
	return notWritable(r.name, "push")
}

// Values is a read-only sequence of register values with a known length.
// The zero value is an empty sequence.
type Values struct {
	n  int
	at func(i int) string
}

func newValues(n int, at func(i int) string) Values {
	return Values{n: n, at: at}
}

// valuesOf returns a sequence over vs in order. vs must not be modified
// afterwards.
func valuesOf(vs []string) Values {
	return newValues(len(vs), func(i int) string { return vs[i] })
}

// Len returns the number of values.
func (v Values) Len() int {
	return v.n
}

// At returns the i-th value. It panics if i is out of range.
func (v Values) At(i int) string {
	if i < 0 || i >= v.n {
		panic("register: value index out of range")
	}
	return v.at(i)
}

// All iterates over the values in order.
func (v Values) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(v.at(i)) {
				return
			}
		}
	}
}

// Slice returns the values as a new slice.
func (v Values) Slice() []string {
	out := make([]string, v.n)
	for i := range out {
		out[i] = v.at(i)
	}
	return out
}

// First returns the first value.
func (v Values) First() (string, bool) {
	if v.n == 0 {
		return "", false
	}
	return v.at(0), true
}

// Last returns the last value.
func (v Values) Last() (string, bool) {
	if v.n == 0 {
		return "", false
	}
	return v.at(v.n - 1), true
}

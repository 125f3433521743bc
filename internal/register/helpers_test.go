package register

import (
	"errors"

	"github.com/dshills/keyreg/internal/clipboard"
	"github.com/dshills/keyreg/internal/engine/cursor"
)

// mockDocument implements Document for testing.
type mockDocument struct {
	text       string
	path       string
	lineEnding string
	selections []cursor.Selection
}

func (d *mockDocument) Text() string                   { return d.text }
func (d *mockDocument) Selections() []cursor.Selection { return d.selections }
func (d *mockDocument) Path() string                   { return d.path }
func (d *mockDocument) LineEnding() string {
	if d.lineEnding == "" {
		return "\n"
	}
	return d.lineEnding
}

// mockEditor implements Editor for testing.
type mockEditor struct {
	doc *mockDocument
}

func (e *mockEditor) ActiveDocument() Document { return e.doc }

func newMockEditor() *mockEditor {
	return &mockEditor{doc: &mockDocument{
		selections: []cursor.Selection{cursor.NewCursorSelection(0)},
	}}
}

// failingProvider is a clipboard that is never reachable.
type failingProvider struct {
	gets, sets int
}

var errNoDisplay = errors.New("no display")

func (p *failingProvider) Name() string { return "failing" }

func (p *failingProvider) GetContents(clipboard.Type) (string, error) {
	p.gets++
	return "", errNoDisplay
}

func (p *failingProvider) SetContents(string, clipboard.Type) error {
	p.sets++
	return errNoDisplay
}

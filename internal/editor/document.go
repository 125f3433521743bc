package editor

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/keyreg/internal/engine/cursor"
)

// LineEnding is the line separator a document uses.
type LineEnding string

const (
	LF   LineEnding = "\n"
	CRLF LineEnding = "\r\n"
)

// DetectLineEnding reports the separator of the first line break in text.
// Text without a line break is treated as LF.
func DetectLineEnding(text string) LineEnding {
	i := strings.IndexByte(text, '\n')
	if i > 0 && text[i-1] == '\r' {
		return CRLF
	}
	return LF
}

// Document is an open file or scratch buffer.
type Document struct {
	// ID identifies the document for the lifetime of the editor.
	ID uuid.UUID

	// Path is the absolute file path (empty for scratch buffers).
	Path string

	// Name is the display name (file name or "[scratch]").
	Name string

	text       string
	lineEnding LineEnding
	modified   bool

	// selections holds one cursor set per view showing the document.
	selections map[uuid.UUID]*cursor.CursorSet
}

func newDocument(path, text string) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "[scratch]"
	}
	return &Document{
		ID:         uuid.New(),
		Path:       path,
		Name:       name,
		text:       text,
		lineEnding: DetectLineEnding(text),
		selections: make(map[uuid.UUID]*cursor.CursorSet),
	}
}

// Text returns the document contents.
func (d *Document) Text() string { return d.text }

// LineEnding returns the separator detected when the document was created.
func (d *Document) LineEnding() LineEnding { return d.lineEnding }

// IsModified returns true if the document has been edited.
func (d *Document) IsModified() bool { return d.modified }

// IsScratch returns true if this is a scratch buffer (no file path).
func (d *Document) IsScratch() bool { return d.Path == "" }

// Selections returns the selections of the given view.
func (d *Document) Selections(view uuid.UUID) []cursor.Selection {
	cs, ok := d.selections[view]
	if !ok {
		return nil
	}
	return cs.All()
}

func (d *Document) cursors(view uuid.UUID) *cursor.CursorSet {
	cs, ok := d.selections[view]
	if !ok {
		cs = cursor.NewCursorSetAt(0)
		d.selections[view] = cs
	}
	return cs
}

// setText replaces the contents and clamps the selections of every view.
func (d *Document) setText(text string) {
	d.text = text
	d.modified = true
	for _, cs := range d.selections {
		cs.ClampText(text)
	}
}

// View displays a document.
type View struct {
	ID  uuid.UUID
	Doc uuid.UUID
}

// docView binds a document to one of its views for the register package.
type docView struct {
	doc  *Document
	view uuid.UUID
}

func (b docView) Text() string                   { return b.doc.text }
func (b docView) Selections() []cursor.Selection { return b.doc.Selections(b.view) }
func (b docView) Path() string                   { return b.doc.Path }
func (b docView) LineEnding() string             { return string(b.doc.lineEnding) }

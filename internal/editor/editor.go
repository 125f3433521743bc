package editor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/keyreg/internal/engine/cursor"
	"github.com/dshills/keyreg/internal/register"
)

// Editor holds the open documents, the views onto them and the register
// store shared by every view.
type Editor struct {
	// Registers is the register store of the session.
	Registers *register.Registry

	documents map[uuid.UUID]*Document
	order     []uuid.UUID
	views     map[uuid.UUID]*View
	focus     uuid.UUID
}

// Option configures an Editor.
type Option func(*Editor)

// WithRegistry sets the register store. By default the editor creates one
// backed by an in-process clipboard.
func WithRegistry(r *register.Registry) Option {
	return func(e *Editor) {
		if r != nil {
			e.Registers = r
		}
	}
}

// New creates an editor showing a single scratch document.
func New(opts ...Option) *Editor {
	e := &Editor{
		documents: make(map[uuid.UUID]*Document),
		views:     make(map[uuid.UUID]*View),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.Registers == nil {
		e.Registers = register.New(nil)
	}
	e.NewScratch()
	return e
}

// ActiveDocument returns the focused view's document as the register
// package sees it.
func (e *Editor) ActiveDocument() register.Document {
	v, doc := e.Current()
	return docView{doc: doc, view: v.ID}
}

// Current returns the focused view and its document.
func (e *Editor) Current() (*View, *Document) {
	v := e.views[e.focus]
	return v, e.documents[v.Doc]
}

// Documents returns the open documents in the order they were opened.
func (e *Editor) Documents() []*Document {
	docs := make([]*Document, 0, len(e.order))
	for _, id := range e.order {
		docs = append(docs, e.documents[id])
	}
	return docs
}

// Document returns the document with the given ID.
func (e *Editor) Document(id uuid.UUID) (*Document, error) {
	doc, ok := e.documents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	return doc, nil
}

// NewScratch creates an empty scratch document in a new, focused view.
func (e *Editor) NewScratch() *Document {
	doc := newDocument("", "")
	e.add(doc)
	return doc
}

// NewDocument creates a scratch document holding text in a new, focused
// view.
func (e *Editor) NewDocument(text string) *Document {
	doc := newDocument("", text)
	e.add(doc)
	return doc
}

// Open reads path into a document and focuses it. A file that is already
// open is focused instead of read again.
func (e *Editor) Open(path string) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %s: %w", path, err)
	}

	for _, doc := range e.documents {
		if doc.Path == absPath {
			for _, v := range e.views {
				if v.Doc == doc.ID {
					e.focus = v.ID
					return doc, nil
				}
			}
		}
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", absPath, err)
	}

	doc := newDocument(absPath, string(content))
	e.add(doc)
	return doc, nil
}

// Close closes a document and its views. Closing the last document leaves
// a fresh scratch document behind.
func (e *Editor) Close(id uuid.UUID) error {
	if _, ok := e.documents[id]; !ok {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	delete(e.documents, id)
	for i, docID := range e.order {
		if docID == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	for vid, v := range e.views {
		if v.Doc == id {
			delete(e.views, vid)
		}
	}

	if _, ok := e.views[e.focus]; ok {
		return nil
	}
	if len(e.order) == 0 {
		e.NewScratch()
		return nil
	}
	last := e.order[len(e.order)-1]
	for vid, v := range e.views {
		if v.Doc == last {
			e.focus = vid
			break
		}
	}
	return nil
}

// Split opens a second view onto the focused document and focuses it. The
// new view starts with a cursor at offset 0.
func (e *Editor) Split() *View {
	_, doc := e.Current()
	view := &View{ID: uuid.New(), Doc: doc.ID}
	e.views[view.ID] = view
	doc.cursors(view.ID)
	e.focus = view.ID
	return view
}

// Focus makes the given view current.
func (e *Editor) Focus(view uuid.UUID) error {
	if _, ok := e.views[view]; !ok {
		return fmt.Errorf("%w: %s", ErrViewNotFound, view)
	}
	e.focus = view
	return nil
}

// Select replaces the selections of the focused view. Selections beyond
// the end of the document are clamped and offsets inside a multi-byte
// character move to its start; no selections leaves a cursor at 0.
func (e *Editor) Select(sels ...cursor.Selection) {
	v, doc := e.Current()
	cs := doc.cursors(v.ID)
	cs.SetAll(sels)
	cs.ClampText(doc.text)
}

// Selections returns the selections of the focused view in document order.
func (e *Editor) Selections() []cursor.Selection {
	v, doc := e.Current()
	return doc.Selections(v.ID)
}

func (e *Editor) add(doc *Document) {
	view := &View{ID: uuid.New(), Doc: doc.ID}
	e.documents[doc.ID] = doc
	e.order = append(e.order, doc.ID)
	e.views[view.ID] = view
	doc.cursors(view.ID)
	e.focus = view.ID
}

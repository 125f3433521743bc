package register

import "strconv"

// discardRegister drops everything written to it and always reads empty.
type discardRegister struct{}

func (discardRegister) Name() rune                   { return Discard }
func (discardRegister) Preview() string              { return emptyPreview }
func (discardRegister) Read(Editor) Values           { return Values{} }
func (discardRegister) Write(Editor, []string) error { return nil }
func (discardRegister) Push(Editor, string) error    { return nil }

// selectionIndexRegister reads the 1-based index of every selection in the
// focused view.
type selectionIndexRegister struct {
	readOnly
}

func newSelectionIndexRegister() *selectionIndexRegister {
	return &selectionIndexRegister{readOnly{name: SelectionIndices}}
}

func (r *selectionIndexRegister) Preview() string {
	return "<selection indices>"
}

func (r *selectionIndexRegister) Read(ed Editor) Values {
	n := len(ed.ActiveDocument().Selections())
	return newValues(n, func(i int) string { return strconv.Itoa(i + 1) })
}

// selectionContentsRegister reads the text of every selection in the
// focused view.
type selectionContentsRegister struct {
	readOnly
}

func newSelectionContentsRegister() *selectionContentsRegister {
	return &selectionContentsRegister{readOnly{name: SelectionContents}}
}

func (r *selectionContentsRegister) Preview() string {
	return "<selection contents>"
}

func (r *selectionContentsRegister) Read(ed Editor) Values {
	doc := ed.ActiveDocument()
	text := doc.Text()
	sels := doc.Selections()
	return newValues(len(sels), func(i int) string { return sels[i].Fragment(text) })
}

// documentPathRegister reads the path of the active document.
type documentPathRegister struct {
	readOnly
}

func newDocumentPathRegister() *documentPathRegister {
	return &documentPathRegister{readOnly{name: DocumentPath}}
}

func (r *documentPathRegister) Preview() string {
	return "<document path>"
}

func (r *documentPathRegister) Read(ed Editor) Values {
	path := ed.ActiveDocument().Path()
	if path == "" {
		path = ScratchName
	}
	return valuesOf([]string{path})
}

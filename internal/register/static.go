package register

import (
	"slices"
	"strings"
)

// staticRegister is a regular in-memory register.
// values holds the contents newest-last so that Push is an append; reads
// walk it backwards.
type staticRegister struct {
	name   rune
	values []string
}

func newStaticRegister(name rune, values []string) *staticRegister {
	r := &staticRegister{name: name}
	r.store(values)
	return r
}

func (r *staticRegister) Name() rune {
	return r.name
}

func (r *staticRegister) Preview() string {
	if len(r.values) == 0 {
		return emptyPreview
	}
	return firstLine(r.values[len(r.values)-1])
}

func (r *staticRegister) Read(Editor) Values {
	vals := r.values
	n := len(vals)
	return newValues(n, func(i int) string { return vals[n-1-i] })
}

func (r *staticRegister) Write(_ Editor, values []string) error {
	r.store(values)
	return nil
}

func (r *staticRegister) Push(_ Editor, value string) error {
	r.values = append(r.values, value)
	return nil
}

func (r *staticRegister) store(values []string) {
	r.values = slices.Clone(values)
	slices.Reverse(r.values)
}

// firstLine returns the first line of s without its line ending, or the
// empty placeholder when s has no lines.
func firstLine(s string) string {
	if s == "" {
		return emptyPreview
	}
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r")
}

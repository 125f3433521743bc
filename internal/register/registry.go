package register

import (
	"iter"
	"log/slog"
	"sort"

	"github.com/dshills/keyreg/internal/clipboard"
)

// Registry maps register names to registers.
// A new Registry already holds the reserved registers.
type Registry struct {
	inner  map[rune]Register
	logger *slog.Logger

	system  *clipboardRegister
	primary *clipboardRegister
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report clipboard failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a registry whose clipboard registers use provider.
// A nil provider selects an in-process clipboard.
func New(provider clipboard.Provider, opts ...Option) *Registry {
	r := &Registry{
		inner:  make(map[rune]Register),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}

	if provider == nil {
		provider = clipboard.NewMemory()
	}
	r.system = newClipboardRegister(SystemClipboard, clipboard.System, "<system clipboard>", provider, r.logger)
	r.primary = newClipboardRegister(PrimaryClipboard, clipboard.Primary, "<primary clipboard>", provider, r.logger)

	r.inner[Discard] = discardRegister{}
	r.inner[SelectionIndices] = newSelectionIndexRegister()
	r.inner[SelectionContents] = newSelectionContentsRegister()
	r.inner[DocumentPath] = newDocumentPathRegister()
	r.inner[SystemClipboard] = r.system
	r.inner[PrimaryClipboard] = r.primary

	return r
}

// SetClipboardProvider switches both clipboard registers to provider.
// The values they last wrote are kept, so a read still recognizes them if
// the new provider reaches the same clipboard.
func (r *Registry) SetClipboardProvider(provider clipboard.Provider) {
	if provider == nil {
		provider = clipboard.NewMemory()
	}
	r.system.provider = provider
	r.primary.provider = provider
}

// ClipboardProvider returns the provider behind the clipboard registers.
func (r *Registry) ClipboardProvider() clipboard.Provider {
	return r.system.provider
}

// Get returns the register called name.
func (r *Registry) Get(name rune) (Register, bool) {
	reg, ok := r.inner[name]
	return reg, ok
}

// Read returns the values of register name. It returns false when no such
// register exists.
func (r *Registry) Read(name rune, ed Editor) (Values, bool) {
	reg, ok := r.inner[name]
	if !ok {
		return Values{}, false
	}
	return reg.Read(ed), true
}

// Write replaces the values of register name, creating a static register
// if the name is unused.
func (r *Registry) Write(name rune, ed Editor, values []string) error {
	if reg, ok := r.inner[name]; ok {
		return reg.Write(ed, values)
	}
	r.inner[name] = newStaticRegister(name, values)
	return nil
}

// Push adds value to register name, creating a static register holding
// just value if the name is unused.
func (r *Registry) Push(name rune, ed Editor, value string) error {
	if reg, ok := r.inner[name]; ok {
		return reg.Push(ed, value)
	}
	return r.Write(name, ed, []string{value})
}

// First returns the first value of register name.
func (r *Registry) First(name rune, ed Editor) (string, bool) {
	values, ok := r.Read(name, ed)
	if !ok {
		return "", false
	}
	return values.First()
}

// Last returns the last value of register name.
func (r *Registry) Last(name rune, ed Editor) (string, bool) {
	values, ok := r.Read(name, ed)
	if !ok {
		return "", false
	}
	return values.Last()
}

// Previews yields the name and preview of every register in no
// particular order.
func (r *Registry) Previews() iter.Seq2[rune, string] {
	return func(yield func(rune, string) bool) {
		for name, reg := range r.inner {
			if !yield(name, reg.Preview()) {
				return
			}
		}
	}
}

// Preview is one line of a register listing.
type Preview struct {
	Name rune
	Text string
}

// SortedPreviews returns the previews of every register ordered by name.
func (r *Registry) SortedPreviews() []Preview {
	previews := make([]Preview, 0, len(r.inner))
	for name, text := range r.Previews() {
		previews = append(previews, Preview{Name: name, Text: text})
	}
	sort.Slice(previews, func(i, j int) bool {
		return previews[i].Name < previews[j].Name
	})
	return previews
}

// Len returns the number of registers, reserved ones included.
func (r *Registry) Len() int {
	return len(r.inner)
}

// Clear removes every register that is not reserved.
func (r *Registry) Clear() {
	for name := range r.inner {
		if !IsReserved(name) {
			delete(r.inner, name)
		}
	}
}

// Remove detaches and returns register name. Reserved registers are never
// removed.
func (r *Registry) Remove(name rune) (Register, bool) {
	if IsReserved(name) {
		return nil, false
	}
	reg, ok := r.inner[name]
	if ok {
		delete(r.inner, name)
	}
	return reg, ok
}

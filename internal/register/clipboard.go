package register

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/dshills/keyreg/internal/clipboard"
)

// clipboardRegister mirrors its values to an OS clipboard.
//
// The clipboard stores a single string, so the register remembers the
// values it last sent. A read returns those values as long as the clipboard
// still holds their join; otherwise somebody else set the clipboard and its
// text is returned as one value.
type clipboardRegister struct {
	name     rune
	kind     clipboard.Type
	preview  string
	provider clipboard.Provider
	logger   *slog.Logger

	// saved holds the values last sent to the clipboard, in order.
	saved []string
}

func newClipboardRegister(name rune, kind clipboard.Type, preview string, provider clipboard.Provider, logger *slog.Logger) *clipboardRegister {
	return &clipboardRegister{
		name:     name,
		kind:     kind,
		preview:  preview,
		provider: provider,
		logger:   logger,
	}
}

func (r *clipboardRegister) Name() rune {
	return r.name
}

func (r *clipboardRegister) Preview() string {
	return r.preview
}

func (r *clipboardRegister) Read(ed Editor) Values {
	contents, err := r.provider.GetContents(r.kind)
	if err != nil {
		r.logger.Warn("failed to read clipboard",
			"register", string(r.name),
			"clipboard", r.kind.String(),
			"provider", r.provider.Name(),
			"error", err)
		return Values{}
	}

	saved := r.saved
	if contentsAreSaved(saved, contents, ed.ActiveDocument().LineEnding()) {
		return valuesOf(saved)
	}
	return valuesOf([]string{contents})
}

func (r *clipboardRegister) Write(ed Editor, values []string) error {
	r.saved = slices.Clone(values)
	return r.sync(ed, "write")
}

func (r *clipboardRegister) Push(ed Editor, value string) error {
	r.saved = append(r.saved, value)
	return r.sync(ed, "push")
}

// sync sends the joined saved values to the clipboard.
func (r *clipboardRegister) sync(ed Editor, op string) error {
	contents := strings.Join(r.saved, ed.ActiveDocument().LineEnding())
	if err := r.provider.SetContents(contents, r.kind); err != nil {
		return clipboardFailure(r.name, op, err)
	}
	return nil
}

// contentsAreSaved reports whether contents starts with the saved values
// joined by lineEnding. The check is a prefix match: text after the last
// saved value is not inspected. An empty saved list matches only an empty
// clipboard.
func contentsAreSaved(saved []string, contents, lineEnding string) bool {
	if len(saved) == 0 {
		return contents == ""
	}

	first, rest := saved[0], saved[1:]
	var ok bool
	if contents, ok = strings.CutPrefix(contents, first); !ok {
		return false
	}

	for _, value := range rest {
		if contents, ok = strings.CutPrefix(contents, lineEnding); !ok {
			return false
		}
		if contents, ok = strings.CutPrefix(contents, value); !ok {
			return false
		}
	}
	return true
}

// Package clipboard provides access to the operating system clipboards.
//
// Two clipboards are addressed: the system clipboard and, where the
// platform has one, the primary selection. A Provider moves plain text to
// and from them. Three providers are available:
//
//   - Command runs external copy/paste programs (pbcopy, wl-copy, xclip,
//     xsel, win32yank, tmux). Detect picks one for the current environment.
//   - Terminal asks the terminal emulator through OSC 52 using a tcell
//     screen.
//   - Memory keeps the text in the process. It is the fallback when no
//     other provider is usable and the provider used by tests.
//
// Providers are called synchronously from the editor's command goroutine.
package clipboard

import (
	"fmt"
	"log/slog"
	"time"
)

// Type selects a clipboard.
type Type int

const (
	// System is the regular copy/paste clipboard.
	System Type = iota

	// Primary is the X11/Wayland primary selection.
	Primary
)

// String returns the clipboard name.
func (t Type) String() string {
	switch t {
	case System:
		return "clipboard"
	case Primary:
		return "primary"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Provider reads and writes clipboard text.
type Provider interface {
	// Name identifies the provider in logs and status messages.
	Name() string

	// GetContents returns the current text of clipboard t.
	GetContents(t Type) (string, error)

	// SetContents replaces the text of clipboard t.
	SetContents(text string, t Type) error
}

// DefaultTimeout bounds external commands and terminal round trips.
const DefaultTimeout = time.Second

// options holds settings shared by providers.
type options struct {
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a provider.
type Option func(*options)

// WithTimeout sets how long a provider waits for a clipboard round trip.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the logger providers report to.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		timeout: DefaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

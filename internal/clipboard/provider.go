package clipboard

import (
	"errors"
	"fmt"
)

// Provider kinds accepted by New.
const (
	KindAuto     = "auto"
	KindCommand  = "command"
	KindTerminal = "terminal"
	KindMemory   = "memory"
)

// Settings selects and configures a provider.
type Settings struct {
	// Kind is one of KindAuto, KindCommand, KindTerminal or KindMemory.
	// Empty means KindAuto.
	Kind string

	// Commands are the programs used by KindCommand.
	Commands CommandSet
}

// New builds the provider described by s. screen may be nil when the
// editor is not attached to a terminal; KindAuto then skips OSC 52.
//
// KindAuto prefers installed clipboard programs, then the terminal, and
// falls back to an in-process clipboard.
func New(s Settings, screen Screen, opts ...Option) (Provider, error) {
	o := newOptions(opts)

	switch s.Kind {
	case "", KindAuto:
		if p, ok := Detect(opts...); ok {
			return p, nil
		}
		if screen != nil {
			return NewTerminal(screen, opts...), nil
		}
		o.logger.Warn("no system clipboard available, using in-process clipboard")
		return NewMemory(), nil

	case KindCommand:
		if len(s.Commands.Copy) == 0 || len(s.Commands.Paste) == 0 {
			return nil, errors.New("clipboard: command provider requires copy and paste commands")
		}
		return NewCommand(s.Commands.Copy[0], s.Commands, opts...), nil

	case KindTerminal:
		if screen == nil {
			return nil, fmt.Errorf("clipboard: terminal provider requires a terminal screen: %w", ErrUnavailable)
		}
		return NewTerminal(screen, opts...), nil

	case KindMemory:
		return NewMemory(), nil

	default:
		return nil, fmt.Errorf("clipboard: unknown provider %q", s.Kind)
	}
}

package clipboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Screen is the part of tcell.Screen used for OSC 52 clipboard access.
type Screen interface {
	SetClipboard(data []byte)
	GetClipboard()
}

var _ Screen = tcell.Screen(nil)

// Terminal is a Provider that reaches the system clipboard through the
// terminal emulator (OSC 52). Only the System clipboard is supported.
//
// Clipboard contents arrive asynchronously as *tcell.EventClipboard; the
// goroutine polling screen events must pass them to HandleEvent.
type Terminal struct {
	screen Screen
	opts   options

	mu      sync.Mutex
	replies chan []byte
}

// NewTerminal creates a terminal provider writing through screen.
func NewTerminal(screen Screen, opts ...Option) *Terminal {
	return &Terminal{
		screen:  screen,
		opts:    newOptions(opts),
		replies: make(chan []byte, 1),
	}
}

// Name returns "terminal".
func (t *Terminal) Name() string {
	return "terminal"
}

// HandleEvent consumes clipboard replies. It reports whether ev was one.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	cev, ok := ev.(*tcell.EventClipboard)
	if !ok {
		return false
	}

	// Keep only the newest reply.
	select {
	case <-t.replies:
	default:
	}
	select {
	case t.replies <- cev.Data():
	default:
	}
	return true
}

// GetContents requests the clipboard from the terminal and waits for the
// reply.
func (t *Terminal) GetContents(typ Type) (string, error) {
	if typ != System {
		return "", fmt.Errorf("terminal: %s: %w", typ, ErrUnsupported)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Drop a reply that arrived after an earlier request timed out.
	select {
	case <-t.replies:
	default:
	}

	t.screen.GetClipboard()

	timer := time.NewTimer(t.opts.timeout)
	defer timer.Stop()

	select {
	case data := <-t.replies:
		return string(data), nil
	case <-timer.C:
		t.opts.logger.Debug("terminal clipboard request timed out", "timeout", t.opts.timeout)
		return "", fmt.Errorf("terminal: %w", ErrTimeout)
	}
}

// SetContents sends text to the terminal clipboard.
func (t *Terminal) SetContents(text string, typ Type) error {
	if typ != System {
		return fmt.Errorf("terminal: %s: %w", typ, ErrUnsupported)
	}
	t.screen.SetClipboard([]byte(text))
	return nil
}

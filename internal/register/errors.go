package register

import (
	"errors"
	"fmt"
)

// Errors returned by register operations.
var (
	// ErrNotWritable indicates a write or push to a read-only register.
	ErrNotWritable = errors.New("register is not writable")

	// ErrClipboard indicates the clipboard provider failed.
	ErrClipboard = errors.New("clipboard transport failed")
)

// Error describes a failed register operation.
type Error struct {
	Name rune   // Register name
	Op   string // "write" or "push"
	Err  error  // Underlying error
}

func (e *Error) Error() string {
	if errors.Is(e.Err, ErrNotWritable) {
		return fmt.Sprintf("the '%c' register is not writable", e.Name)
	}
	return fmt.Sprintf("register '%c': %s: %v", e.Name, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func notWritable(name rune, op string) error {
	return &Error{Name: name, Op: op, Err: ErrNotWritable}
}

func clipboardFailure(name rune, op string, err error) error {
	return &Error{Name: name, Op: op, Err: fmt.Errorf("%w: %w", ErrClipboard, err)}
}

package editor

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrDocumentNotFound indicates the document ID is unknown.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrViewNotFound indicates the view ID is unknown.
	ErrViewNotFound = errors.New("view not found")

	// ErrEmptyRegister indicates a paste from a register with no values.
	ErrEmptyRegister = errors.New("register is empty")

	// ErrUnknownRegister indicates a paste from a register that does not exist.
	ErrUnknownRegister = errors.New("register does not exist")
)

// CommandError wraps a failure of an editing command.
type CommandError struct {
	Command  string
	Register rune
	Err      error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s '%c': %v", e.Command, e.Register, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

package clipboard

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by clipboard providers.
var (
	// ErrUnavailable indicates no clipboard could be reached.
	ErrUnavailable = errors.New("clipboard unavailable")

	// ErrUnsupported indicates the provider cannot address the clipboard type.
	ErrUnsupported = errors.New("clipboard type not supported by provider")

	// ErrTimeout indicates the clipboard did not answer in time.
	ErrTimeout = errors.New("clipboard timed out")
)

// CommandError describes a failed copy or paste command.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("clipboard command %s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("clipboard command %s: %v: %s", e.Command, e.Err, msg)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

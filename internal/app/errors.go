package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrUnknownCommand indicates a command name that does not exist.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage indicates a command was given the wrong arguments.
	ErrUsage = errors.New("usage")

	// ErrNoSuchRegister indicates a register that does not exist.
	ErrNoSuchRegister = errors.New("no such register")

	// ErrReservedRegister indicates an attempt to remove a built-in register.
	ErrReservedRegister = errors.New("register is reserved")
)

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// usageError reports how a command is meant to be called.
func usageError(name, usage string) error {
	return fmt.Errorf("%w: %s %s", ErrUsage, name, usage)
}

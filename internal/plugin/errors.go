package plugin

import (
	"errors"
	"fmt"
)

// ErrHostClosed is returned when using a closed host.
var ErrHostClosed = errors.New("plugin host is closed")

// ScriptError reports a failure while loading or running Lua code.
type ScriptError struct {
	// Source is the script path or "<chunk>" for evaluated code.
	Source string
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("lua %s: %v", e.Source, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

package plugin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyreg/internal/plugin/api"
)

// DefaultExecutionTimeout bounds a single script or chunk.
const DefaultExecutionTimeout = 5 * time.Second

// Host manages a Lua state and the scripts run in it.
type Host struct {
	mu     sync.Mutex
	L      *lua.LState
	closed bool

	timeout time.Duration
	out     io.Writer
	logger  *slog.Logger
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithExecutionTimeout sets the execution timeout for scripts and chunks.
func WithExecutionTimeout(d time.Duration) HostOption {
	return func(h *Host) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithOutput sets where Lua's print writes.
func WithOutput(w io.Writer) HostOption {
	return func(h *Host) {
		if w != nil {
			h.out = w
		}
	}
}

// WithLogger sets the logger script loading is reported to.
func WithLogger(logger *slog.Logger) HostOption {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHost creates a sandboxed Lua state and injects the modules of reg.
func NewHost(reg *api.Registry, opts ...HostOption) (*Host, error) {
	h := &Host{
		timeout: DefaultExecutionTimeout,
		out:     os.Stdout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(h.L)
	h.L.SetGlobal("print", h.L.NewFunction(h.print))

	if reg != nil {
		if err := reg.InjectAll(h.L); err != nil {
			h.L.Close()
			return nil, err
		}
	}
	return h, nil
}

// openSafeLibraries opens only safe Lua standard libraries.
// io, os, debug and package are left closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// The base library still reaches the file system through these.
	for _, name := range []string{"dofile", "loadfile"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// print writes its arguments tab-separated to the host output.
func (h *Host) print(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, top)
	for i := 1; i <= top; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(h.out, strings.Join(parts, "\t"))
	return 0
}

// LoadScripts runs each script in order. A failing script does not stop
// the ones after it; all failures are returned joined.
func (h *Host) LoadScripts(ctx context.Context, paths []string) error {
	var errs []error
	for _, path := range paths {
		if err := h.DoFile(ctx, path); err != nil {
			h.logger.Error("failed to load script", "path", path, "error", err)
			errs = append(errs, err)
			continue
		}
		h.logger.Info("loaded script", "path", path)
	}
	return errors.Join(errs...)
}

// DoFile runs the script at path.
func (h *Host) DoFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return &ScriptError{Source: path, Err: err}
	}

	return h.run(ctx, func(L *lua.LState) error {
		fn, err := L.Load(strings.NewReader(string(src)), path)
		if err != nil {
			return &ScriptError{Source: path, Err: err}
		}
		L.Push(fn)
		if err := L.PCall(0, 0, nil); err != nil {
			return &ScriptError{Source: path, Err: err}
		}
		return nil
	})
}

// Eval runs a chunk and returns the string form of its results. A chunk
// that is an expression returns its value.
func (h *Host) Eval(ctx context.Context, chunk string) ([]string, error) {
	var results []string
	err := h.run(ctx, func(L *lua.LState) error {
		fn, err := L.LoadString("return " + chunk)
		if err != nil {
			fn, err = L.LoadString(chunk)
			if err != nil {
				return &ScriptError{Source: "<chunk>", Err: err}
			}
		}

		top := L.GetTop()
		L.Push(fn)
		if err := L.PCall(0, lua.MultRet, nil); err != nil {
			L.SetTop(top)
			return &ScriptError{Source: "<chunk>", Err: err}
		}
		for i := top + 1; i <= L.GetTop(); i++ {
			results = append(results, L.ToStringMeta(L.Get(i)).String())
		}
		L.SetTop(top)
		return nil
	})
	return results, err
}

// run executes fn with the state bound to a context that expires after
// the execution timeout.
func (h *Host) run(ctx context.Context, fn func(L *lua.LState) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	h.L.SetContext(ctx)
	defer h.L.RemoveContext()

	return fn(h.L)
}

// Close releases the Lua state.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	h.L.Close()
}

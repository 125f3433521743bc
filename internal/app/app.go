package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/dshills/keyreg/internal/clipboard"
	"github.com/dshills/keyreg/internal/config"
	"github.com/dshills/keyreg/internal/config/watcher"
	"github.com/dshills/keyreg/internal/editor"
	"github.com/dshills/keyreg/internal/logging"
	"github.com/dshills/keyreg/internal/plugin"
	"github.com/dshills/keyreg/internal/plugin/api"
	"github.com/dshills/keyreg/internal/register"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// LogLevel overrides logging.level when set.
	LogLevel string

	// Clipboard overrides clipboard.provider when set.
	Clipboard string

	// Files are files to open on startup.
	Files []string

	// Watch reloads the configuration when the file changes.
	Watch bool

	// Screen enables the OSC 52 clipboard provider.
	Screen clipboard.Screen

	// Stderr receives the log when logging.file is empty.
	// Defaults to os.Stderr.
	Stderr io.Writer
}

// Application is the central coordinator for keyreg's components.
type Application struct {
	opts Options

	cfg       *config.Config
	level     *slog.LevelVar
	logOutput *logging.SwapHandler
	logger    *slog.Logger
	logCloser io.Closer

	editor  *editor.Editor
	host    *plugin.Host
	watcher *watcher.Watcher
	out     *switchWriter

	reloads chan struct{}
	running atomic.Bool
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	app := &Application{
		opts:    opts,
		level:   new(slog.LevelVar),
		out:     &switchWriter{w: io.Discard},
		reloads: make(chan struct{}, 1),
	}

	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	// 1. Configuration
	cfg, err := app.loadConfig()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	// 2. Logging
	app.level.Set(logging.ParseLevel(cfg.Logging.Level))
	logger, closer, err := logging.Open(app.level, cfg.Logging.Format, config.ExpandPath(cfg.Logging.File), app.opts.Stderr)
	if err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	app.logOutput = logging.NewSwapHandler(logger.Handler())
	app.logger, app.logCloser = slog.New(app.logOutput), closer

	// 3. Clipboard and registers
	provider, err := app.newProvider(cfg)
	if err != nil {
		return &InitError{Component: "clipboard", Err: err}
	}
	app.logger.Debug("clipboard provider selected", "provider", provider.Name())
	registers := register.New(provider, register.WithLogger(app.logger))

	// 4. Editor
	app.editor = editor.New(editor.WithRegistry(registers))
	for _, file := range app.opts.Files {
		if _, err := app.editor.Open(file); err != nil {
			app.logger.Warn("failed to open file", "path", file, "error", err)
		}
	}

	// 5. Lua host
	modules := api.NewRegistry()
	if err := modules.Register(api.NewRegisterModule(&api.Context{Registers: registers, Editor: app.editor})); err != nil {
		return &InitError{Component: "plugins", Err: err}
	}
	app.host, err = plugin.NewHost(modules, plugin.WithOutput(app.out), plugin.WithLogger(app.logger))
	if err != nil {
		return &InitError{Component: "plugins", Err: err}
	}

	// 6. Config watcher
	if app.opts.Watch && app.opts.ConfigPath != "" {
		if err := app.startWatcher(); err != nil {
			// Non-fatal: the editor works without live reload.
			app.logger.Warn("config watcher unavailable", "path", app.opts.ConfigPath, "error", err)
		}
	}
	return nil
}

// loadConfig reads the configuration file and applies the command-line
// overrides.
func (app *Application) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}
	if app.opts.Clipboard != "" {
		cfg.Clipboard.Provider = app.opts.Clipboard
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (app *Application) newProvider(cfg *config.Config) (clipboard.Provider, error) {
	settings := clipboard.Settings{
		Kind: cfg.Clipboard.Provider,
		Commands: clipboard.CommandSet{
			Copy:         cfg.Clipboard.Command.Copy,
			Paste:        cfg.Clipboard.Command.Paste,
			PrimaryCopy:  cfg.Clipboard.Command.PrimaryCopy,
			PrimaryPaste: cfg.Clipboard.Command.PrimaryPaste,
		},
	}
	return clipboard.New(settings, app.opts.Screen,
		clipboard.WithTimeout(cfg.Timeout()),
		clipboard.WithLogger(app.logger),
	)
}

func (app *Application) startWatcher() error {
	w, err := watcher.New(watcher.WithLogger(app.logger))
	if err != nil {
		return err
	}
	if err := w.Watch(config.ExpandPath(app.opts.ConfigPath)); err != nil {
		_ = w.Close()
		return err
	}
	w.OnChange(func(watcher.Event) {
		select {
		case app.reloads <- struct{}{}:
		default:
		}
	})
	app.watcher = w
	return nil
}

// reload re-reads the configuration. A broken file keeps the running
// configuration in place.
func (app *Application) reload() {
	cfg, err := app.loadConfig()
	if err != nil {
		app.logger.Error("config reload failed", "error", err)
		return
	}

	app.level.Set(logging.ParseLevel(cfg.Logging.Level))

	if cfg.Logging.Format != app.cfg.Logging.Format || cfg.Logging.File != app.cfg.Logging.File {
		if err := app.reopenLog(cfg.Logging); err != nil {
			app.logger.Error("log output unchanged", "file", cfg.Logging.File, "error", err)
			cfg.Logging.Format, cfg.Logging.File = app.cfg.Logging.Format, app.cfg.Logging.File
		}
	}

	if !sameClipboard(app.cfg.Clipboard, cfg.Clipboard) {
		provider, err := app.newProvider(cfg)
		if err != nil {
			app.logger.Error("clipboard provider unavailable", "error", err)
			cfg.Clipboard = app.cfg.Clipboard
		} else {
			app.editor.Registers.SetClipboardProvider(provider)
			app.logger.Info("clipboard provider changed", "provider", provider.Name())
		}
	}

	app.cfg = cfg
	app.logger.Info("configuration reloaded")
}

// reopenLog points every component logger at a new format or file.
func (app *Application) reopenLog(lc config.LoggingConfig) error {
	logger, closer, err := logging.Open(app.level, lc.Format, config.ExpandPath(lc.File), app.opts.Stderr)
	if err != nil {
		return err
	}
	app.logOutput.Swap(logger.Handler())
	old := app.logCloser
	app.logCloser = closer
	return old.Close()
}

func sameClipboard(a, b config.ClipboardConfig) bool {
	return reflect.DeepEqual(a, b)
}

// Run executes commands read from in, one per line, writing results to
// out. It returns nil at end of input or on quit.
func (app *Application) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	ctx, cancel := context.WithCancel(logging.WithLogger(ctx, app.logger))
	defer cancel()
	app.out.set(out)
	defer app.out.set(io.Discard)

	if scripts := app.cfg.ScriptPaths(); len(scripts) > 0 {
		// Failures are logged by the host; a broken script does not stop
		// the editor.
		_ = app.host.LoadScripts(ctx, scripts)
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-app.reloads:
			app.reload()

		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			err := app.Execute(ctx, line, app.out)
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				logging.FromContext(ctx).Debug("command failed", "line", line, "error", err)
				fmt.Fprintf(app.out, "error: %v\n", err)
			}
		}
	}
}

// Close stops the watcher and releases the Lua state and the log file.
func (app *Application) Close() error {
	var errs []error
	if app.watcher != nil {
		errs = append(errs, app.watcher.Close())
	}
	if app.host != nil {
		app.host.Close()
	}
	if app.logCloser != nil {
		errs = append(errs, app.logCloser.Close())
	}
	return errors.Join(errs...)
}

// Editor returns the editor state.
func (app *Application) Editor() *editor.Editor {
	return app.editor
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Logger returns the application logger.
func (app *Application) Logger() *slog.Logger {
	return app.logger
}

// switchWriter forwards writes to a writer that Run swaps in.
type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *switchWriter) set(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = w
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

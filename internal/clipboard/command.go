package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// CommandSet lists the argv of the programs a Command provider runs.
// An empty entry means the clipboard type is not supported.
type CommandSet struct {
	Copy         []string
	Paste        []string
	PrimaryCopy  []string
	PrimaryPaste []string
}

// Command is a Provider backed by external copy and paste programs.
// Copy programs read the text on stdin; paste programs write it to stdout.
type Command struct {
	name string
	cmds CommandSet
	opts options
}

// NewCommand creates a command provider.
func NewCommand(name string, cmds CommandSet, opts ...Option) *Command {
	return &Command{
		name: name,
		cmds: cmds,
		opts: newOptions(opts),
	}
}

// Name returns the provider name, typically the copy program.
func (c *Command) Name() string {
	return c.name
}

// Commands returns the configured programs.
func (c *Command) Commands() CommandSet {
	return c.cmds
}

// GetContents runs the paste program for t.
func (c *Command) GetContents(t Type) (string, error) {
	argv := c.cmds.Paste
	if t == Primary {
		argv = c.cmds.PrimaryPaste
	}
	if len(argv) == 0 {
		return "", fmt.Errorf("%s: %s: %w", c.name, t, ErrUnsupported)
	}
	return c.run(argv, nil)
}

// SetContents runs the copy program for t with text on stdin.
func (c *Command) SetContents(text string, t Type) error {
	argv := c.cmds.Copy
	if t == Primary {
		argv = c.cmds.PrimaryCopy
	}
	if len(argv) == 0 {
		return fmt.Errorf("%s: %s: %w", c.name, t, ErrUnsupported)
	}
	_, err := c.run(argv, strings.NewReader(text))
	return err
}

// run executes argv. When stdin is set the command is a copy program and
// its output is discarded, because programs such as xclip keep a forked
// child holding stdout open.
func (c *Command) run(argv []string, stdin *strings.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opts.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	if stdin != nil {
		cmd.Stdin = stdin
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	c.opts.logger.Debug("running clipboard command", "provider", c.name, "command", argv[0])

	err := cmd.Run()
	switch {
	case ctx.Err() == context.DeadlineExceeded:
		return "", &CommandError{Command: argv[0], Err: ErrTimeout}
	case errors.Is(err, exec.ErrNotFound):
		return "", &CommandError{Command: argv[0], Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	case err != nil:
		return "", &CommandError{Command: argv[0], Stderr: stderr.String(), Err: err}
	}

	return stdout.String(), nil
}

// environment is the part of the host Detect inspects.
type environment struct {
	goos     string
	getenv   func(string) string
	lookPath func(string) (string, error)
}

func hostEnvironment() environment {
	return environment{
		goos:     runtime.GOOS,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
	}
}

func (e environment) has(programs ...string) bool {
	for _, p := range programs {
		if _, err := e.lookPath(p); err != nil {
			return false
		}
	}
	return true
}

// Detect picks the copy/paste programs for the current environment.
// It returns false when no supported program is installed.
func Detect(opts ...Option) (*Command, bool) {
	return detect(hostEnvironment(), opts...)
}

func detect(env environment, opts ...Option) (*Command, bool) {
	o := newOptions(opts)
	name, cmds, ok := detectCommands(env)
	if !ok {
		o.logger.Debug("no clipboard program found")
		return nil, false
	}
	o.logger.Debug("clipboard provider detected", "provider", name)
	return NewCommand(name, cmds, opts...), true
}

func detectCommands(env environment) (string, CommandSet, bool) {
	switch {
	case env.goos == "darwin" && env.has("pbcopy", "pbpaste"):
		return "pbcopy", CommandSet{
			Copy:  []string{"pbcopy"},
			Paste: []string{"pbpaste"},
		}, true

	case env.goos == "windows" && env.has("win32yank.exe"):
		return "win32yank", CommandSet{
			Copy:  []string{"win32yank.exe", "-i", "--crlf"},
			Paste: []string{"win32yank.exe", "-o", "--lf"},
		}, true

	case env.getenv("WAYLAND_DISPLAY") != "" && env.has("wl-copy", "wl-paste"):
		return "wl-clipboard", CommandSet{
			Copy:         []string{"wl-copy", "--type", "text/plain"},
			Paste:        []string{"wl-paste", "--no-newline"},
			PrimaryCopy:  []string{"wl-copy", "-p", "--type", "text/plain"},
			PrimaryPaste: []string{"wl-paste", "-p", "--no-newline"},
		}, true

	case env.getenv("DISPLAY") != "" && env.has("xclip"):
		return "xclip", CommandSet{
			Copy:         []string{"xclip", "-i", "-selection", "clipboard"},
			Paste:        []string{"xclip", "-o", "-selection", "clipboard"},
			PrimaryCopy:  []string{"xclip", "-i", "-selection", "primary"},
			PrimaryPaste: []string{"xclip", "-o", "-selection", "primary"},
		}, true

	case env.getenv("DISPLAY") != "" && env.has("xsel"):
		return "xsel", CommandSet{
			Copy:         []string{"xsel", "--nodetach", "-i", "-b"},
			Paste:        []string{"xsel", "-o", "-b"},
			PrimaryCopy:  []string{"xsel", "--nodetach", "-i"},
			PrimaryPaste: []string{"xsel", "-o"},
		}, true

	case env.has("win32yank.exe"):
		// WSL
		return "win32yank", CommandSet{
			Copy:  []string{"win32yank.exe", "-i", "--crlf"},
			Paste: []string{"win32yank.exe", "-o", "--lf"},
		}, true

	case env.has("termux-clipboard-set", "termux-clipboard-get"):
		return "termux", CommandSet{
			Copy:  []string{"termux-clipboard-set"},
			Paste: []string{"termux-clipboard-get"},
		}, true

	case env.getenv("TMUX") != "" && env.has("tmux"):
		return "tmux", CommandSet{
			Copy:  []string{"tmux", "load-buffer", "-w", "-"},
			Paste: []string{"tmux", "save-buffer", "-"},
		}, true
	}

	return "", CommandSet{}, false
}

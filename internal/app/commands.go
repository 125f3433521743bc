package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/keyreg/internal/engine/cursor"
	"github.com/dshills/keyreg/internal/register"
)

// command is one entry of the command table.
type command struct {
	usage string
	help  string
	run   func(app *Application, ctx context.Context, args []string, rest string, out io.Writer) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"open":         {"<path>", "open a file and focus it", (*Application).cmdOpen},
		"scratch":      {"[text]", "create a scratch document", (*Application).cmdScratch},
		"select":       {"<anchor:head>...", "set the selections of the focused view", (*Application).cmdSelect},
		"show":         {"", "print the focused document and its selections", (*Application).cmdShow},
		"write":        {"<reg> [value]...", "replace the values of a register", (*Application).cmdWrite},
		"push":         {"<reg> <value>", "add a value to a register", (*Application).cmdPush},
		"read":         {"<reg>", "print the values of a register", (*Application).cmdRead},
		"first":        {"<reg>", "print the first value of a register", (*Application).cmdFirst},
		"last":         {"<reg>", "print the last value of a register", (*Application).cmdLast},
		"list":         {"", "list every register with a preview", (*Application).cmdList},
		"clear":        {"", "remove every register except the built-in ones", (*Application).cmdClear},
		"remove":       {"<reg>", "remove a register", (*Application).cmdRemove},
		"yank":         {"[reg]", "copy the selections into a register", (*Application).cmdYank},
		"paste":        {"[reg]", "paste after each selection", (*Application).cmdPaste},
		"paste-before": {"[reg]", "paste before each selection", (*Application).cmdPasteBefore},
		"replace":      {"[reg]", "replace the selections with register values", (*Application).cmdReplace},
		"delete":       {"[reg]", "yank and then delete the selections", (*Application).cmdDelete},
		"insert":       {"<reg>", "insert every value of a register at each selection", (*Application).cmdInsert},
		"history":      {"<reg> <entry>", "record a history entry", (*Application).cmdHistory},
		"lua":          {"<chunk>", "evaluate Lua", (*Application).cmdLua},
		"clipboard":    {"", "print the clipboard provider", (*Application).cmdClipboard},
		"help":         {"", "list commands", (*Application).cmdHelp},
		"quit":         {"", "exit", (*Application).cmdQuit},
	}
}

// rawArgs lists commands that take the rest of the line verbatim.
var rawArgs = map[string]bool{"scratch": true, "history": true, "lua": true}

// Execute runs a single command line. Blank lines and lines starting with
// '#' are ignored.
func (app *Application) Execute(ctx context.Context, line string, out io.Writer) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	name, rest := cutWord(line)

	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	var args []string
	if rawArgs[name] {
		args = strings.Fields(rest)
	} else {
		var err error
		if args, err = splitArgs(rest); err != nil {
			return usageError(name, cmd.usage)
		}
	}
	return cmd.run(app, ctx, args, rest, out)
}

// splitArgs splits s on spaces. Arguments may be double quoted or
// backquoted with Go syntax.
func splitArgs(s string) ([]string, error) {
	var args []string
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return args, nil
		}
		if s[0] == '"' || s[0] == '`' {
			quoted, err := strconv.QuotedPrefix(s)
			if err != nil {
				return nil, err
			}
			arg, err := strconv.Unquote(quoted)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			s = s[len(quoted):]
			continue
		}
		end := strings.IndexAny(s, " \t")
		if end < 0 {
			end = len(s)
		}
		args = append(args, s[:end])
		s = s[end:]
	}
}

// parseRegister parses a register name, which must be a single character.
func parseRegister(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if s == "" || r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("register name must be a single character: %q", s)
	}
	return r, nil
}

// optionalRegister parses the register argument of an editing command;
// without one the default register is used.
func optionalRegister(name, usage string, args []string) (rune, error) {
	switch len(args) {
	case 0:
		return register.Default, nil
	case 1:
		return parseRegister(args[0])
	default:
		return 0, usageError(name, usage)
	}
}

// requiredRegister parses a leading register argument and returns the
// rest of the line after it.
func requiredRegister(name string, args []string, rest string) (rune, string, error) {
	if len(args) == 0 {
		return 0, "", usageError(name, commands[name].usage)
	}
	reg, err := parseRegister(args[0])
	if err != nil {
		return 0, "", err
	}
	_, after := cutWord(rest)
	return reg, after, nil
}

// cutWord splits s at its first blank into a word and the trimmed rest.
func cutWord(s string) (word, rest string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func (app *Application) cmdOpen(_ context.Context, args []string, _ string, out io.Writer) error {
	if len(args) != 1 {
		return usageError("open", commands["open"].usage)
	}
	doc, err := app.editor.Open(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\t%d bytes\n", doc.Name, len(doc.Text()))
	return nil
}

func (app *Application) cmdScratch(_ context.Context, _ []string, rest string, out io.Writer) error {
	text, err := unquoteText(rest)
	if err != nil {
		return err
	}
	doc := app.editor.NewDocument(text)
	fmt.Fprintf(out, "%s\t%d bytes\n", doc.Name, len(doc.Text()))
	return nil
}

// unquoteText accepts either a quoted Go string or raw text.
func unquoteText(s string) (string, error) {
	if s == "" || (s[0] != '"' && s[0] != '`') {
		return s, nil
	}
	return strconv.Unquote(s)
}

func (app *Application) cmdSelect(_ context.Context, args []string, _ string, _ io.Writer) error {
	if len(args) == 0 {
		return usageError("select", commands["select"].usage)
	}
	sels := make([]cursor.Selection, 0, len(args))
	for _, arg := range args {
		sel, err := parseSelection(arg)
		if err != nil {
			return err
		}
		sels = append(sels, sel)
	}
	app.editor.Select(sels...)
	return nil
}

// parseSelection parses "anchor:head" or a single cursor offset.
func parseSelection(s string) (cursor.Selection, error) {
	a, h, found := strings.Cut(s, ":")
	anchor, err := strconv.Atoi(a)
	if err != nil || anchor < 0 {
		return cursor.Selection{}, fmt.Errorf("invalid selection %q", s)
	}
	if !found {
		return cursor.NewCursorSelection(anchor), nil
	}
	head, err := strconv.Atoi(h)
	if err != nil || head < 0 {
		return cursor.Selection{}, fmt.Errorf("invalid selection %q", s)
	}
	return cursor.NewSelection(anchor, head), nil
}

func (app *Application) cmdShow(_ context.Context, _ []string, _ string, out io.Writer) error {
	_, doc := app.editor.Current()
	fmt.Fprintf(out, "%s\t%q\n", doc.Name, doc.Text())
	for i, sel := range app.editor.Selections() {
		fmt.Fprintf(out, "%d\t%d:%d\t%q\n", i+1, sel.Anchor, sel.Head, doc.Text()[sel.Start():sel.End()])
	}
	return nil
}

func (app *Application) cmdWrite(_ context.Context, args []string, _ string, _ io.Writer) error {
	if len(args) == 0 {
		return usageError("write", commands["write"].usage)
	}
	reg, err := parseRegister(args[0])
	if err != nil {
		return err
	}
	return app.editor.Registers.Write(reg, app.editor, args[1:])
}

func (app *Application) cmdPush(_ context.Context, args []string, _ string, _ io.Writer) error {
	if len(args) != 2 {
		return usageError("push", commands["push"].usage)
	}
	reg, err := parseRegister(args[0])
	if err != nil {
		return err
	}
	return app.editor.Registers.Push(reg, app.editor, args[1])
}

func (app *Application) cmdRead(_ context.Context, args []string, rest string, out io.Writer) error {
	reg, _, err := requiredRegister("read", args, rest)
	if err != nil {
		return err
	}
	values, ok := app.editor.Registers.Read(reg, app.editor)
	if !ok {
		return fmt.Errorf("%w: '%c'", ErrNoSuchRegister, reg)
	}
	i := 0
	for v := range values.All() {
		i++
		fmt.Fprintf(out, "%d\t%q\n", i, v)
	}
	return nil
}

func (app *Application) cmdFirst(_ context.Context, args []string, rest string, out io.Writer) error {
	return app.printEnd("first", args, rest, out, app.editor.Registers.First)
}

func (app *Application) cmdLast(_ context.Context, args []string, rest string, out io.Writer) error {
	return app.printEnd("last", args, rest, out, app.editor.Registers.Last)
}

func (app *Application) printEnd(name string, args []string, rest string, out io.Writer, get func(rune, register.Editor) (string, bool)) error {
	reg, _, err := requiredRegister(name, args, rest)
	if err != nil {
		return err
	}
	if _, ok := app.editor.Registers.Get(reg); !ok {
		return fmt.Errorf("%w: '%c'", ErrNoSuchRegister, reg)
	}
	v, ok := get(reg, app.editor)
	if !ok {
		fmt.Fprintln(out, "<empty>")
		return nil
	}
	fmt.Fprintf(out, "%q\n", v)
	return nil
}

func (app *Application) cmdList(_ context.Context, _ []string, _ string, out io.Writer) error {
	for _, p := range app.editor.Registers.SortedPreviews() {
		fmt.Fprintf(out, "%c\t%s\n", p.Name, p.Text)
	}
	return nil
}

func (app *Application) cmdClear(_ context.Context, _ []string, _ string, _ io.Writer) error {
	app.editor.Registers.Clear()
	return nil
}

func (app *Application) cmdRemove(_ context.Context, args []string, rest string, _ io.Writer) error {
	reg, _, err := requiredRegister("remove", args, rest)
	if err != nil {
		return err
	}
	if register.IsReserved(reg) {
		return fmt.Errorf("%w: '%c'", ErrReservedRegister, reg)
	}
	if _, ok := app.editor.Registers.Remove(reg); !ok {
		return fmt.Errorf("%w: '%c'", ErrNoSuchRegister, reg)
	}
	return nil
}

func (app *Application) cmdYank(_ context.Context, args []string, _ string, out io.Writer) error {
	reg, err := optionalRegister("yank", commands["yank"].usage, args)
	if err != nil {
		return err
	}
	n, err := app.editor.Yank(reg)
	if err != nil {
		return err
	}
	if n == 1 {
		fmt.Fprintf(out, "yanked 1 selection to '%c'\n", reg)
	} else {
		fmt.Fprintf(out, "yanked %d selections to '%c'\n", n, reg)
	}
	return nil
}

func (app *Application) cmdPaste(_ context.Context, args []string, _ string, _ io.Writer) error {
	reg, err := optionalRegister("paste", commands["paste"].usage, args)
	if err != nil {
		return err
	}
	return app.editor.Paste(reg, true)
}

func (app *Application) cmdPasteBefore(_ context.Context, args []string, _ string, _ io.Writer) error {
	reg, err := optionalRegister("paste-before", commands["paste-before"].usage, args)
	if err != nil {
		return err
	}
	return app.editor.Paste(reg, false)
}

func (app *Application) cmdReplace(_ context.Context, args []string, _ string, _ io.Writer) error {
	reg, err := optionalRegister("replace", commands["replace"].usage, args)
	if err != nil {
		return err
	}
	return app.editor.ReplaceWithYanked(reg)
}

func (app *Application) cmdDelete(_ context.Context, args []string, _ string, _ io.Writer) error {
	reg, err := optionalRegister("delete", commands["delete"].usage, args)
	if err != nil {
		return err
	}
	return app.editor.Delete(reg)
}

func (app *Application) cmdInsert(_ context.Context, args []string, _ string, _ io.Writer) error {
	if len(args) != 1 {
		return usageError("insert", commands["insert"].usage)
	}
	reg, err := parseRegister(args[0])
	if err != nil {
		return err
	}
	return app.editor.InsertRegister(reg)
}

func (app *Application) cmdHistory(_ context.Context, args []string, rest string, _ io.Writer) error {
	reg, entry, err := requiredRegister("history", args, rest)
	if err != nil {
		return err
	}
	return app.editor.RecordHistory(reg, entry)
}

func (app *Application) cmdLua(ctx context.Context, _ []string, rest string, out io.Writer) error {
	if rest == "" {
		return usageError("lua", commands["lua"].usage)
	}
	results, err := app.host.Eval(ctx, rest)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintln(out, r)
	}
	return nil
}

func (app *Application) cmdClipboard(_ context.Context, _ []string, _ string, out io.Writer) error {
	fmt.Fprintln(out, app.editor.Registers.ClipboardProvider().Name())
	return nil
}

func (app *Application) cmdHelp(_ context.Context, _ []string, _ string, out io.Writer) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(out, "%-13s %-18s %s\n", name, cmd.usage, cmd.help)
	}
	return nil
}

func (app *Application) cmdQuit(_ context.Context, _ []string, _ string, _ io.Writer) error {
	return ErrQuit
}

package api

import (
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyreg/internal/register"
)

// Context provides access to editor state for API modules.
type Context struct {
	// Registers is the register store.
	Registers *register.Registry

	// Editor supplies the active document to computed registers.
	Editor register.Editor
}

// RegisterModule implements the ks.reg API module.
type RegisterModule struct {
	ctx *Context
}

// NewRegisterModule creates a new register module.
func NewRegisterModule(ctx *Context) *RegisterModule {
	return &RegisterModule{ctx: ctx}
}

// Name returns the module name.
func (m *RegisterModule) Name() string {
	return "reg"
}

// Register registers the module into the Lua state.
func (m *RegisterModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "get", L.NewFunction(m.get))
	L.SetField(mod, "read", L.NewFunction(m.read))
	L.SetField(mod, "write", L.NewFunction(m.write))
	L.SetField(mod, "push", L.NewFunction(m.push))
	L.SetField(mod, "first", L.NewFunction(m.first))
	L.SetField(mod, "last", L.NewFunction(m.last))
	L.SetField(mod, "list", L.NewFunction(m.list))
	L.SetField(mod, "clear", L.NewFunction(m.clear))
	L.SetField(mod, "remove", L.NewFunction(m.remove))

	L.SetGlobal("_ks_reg", mod)
	return nil
}

// checkName reads a one-character register name from argument n.
func checkName(L *lua.LState, n int) rune {
	s := L.CheckString(n)
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		L.ArgError(n, "register name must be a single character")
		return 0
	}
	return r
}

// get(name) -> bool
// Reports whether the register exists.
func (m *RegisterModule) get(L *lua.LState) int {
	name := checkName(L, 1)
	_, ok := m.ctx.Registers.Get(name)
	L.Push(lua.LBool(ok))
	return 1
}

// read(name) -> {values} | nil
// Returns the register's values, most recent first for history registers.
func (m *RegisterModule) read(L *lua.LState) int {
	name := checkName(L, 1)
	values, ok := m.ctx.Registers.Read(name, m.ctx.Editor)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}

	tbl := L.CreateTable(values.Len(), 0)
	for v := range values.All() {
		tbl.Append(lua.LString(v))
	}
	L.Push(tbl)
	return 1
}

// write(name, {values})
// Replaces the register's values.
func (m *RegisterModule) write(L *lua.LState) int {
	name := checkName(L, 1)
	tbl := L.CheckTable(2)

	values := make([]string, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		v := tbl.RawGetInt(i)
		if !lua.LVCanConvToString(v) {
			L.ArgError(2, "values must be strings")
			return 0
		}
		values = append(values, lua.LVAsString(v))
	}

	if err := m.ctx.Registers.Write(name, m.ctx.Editor, values); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// push(name, value)
// Adds a value to the register.
func (m *RegisterModule) push(L *lua.LState) int {
	name := checkName(L, 1)
	value := L.CheckString(2)

	if err := m.ctx.Registers.Push(name, m.ctx.Editor, value); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// first(name) -> string | nil
func (m *RegisterModule) first(L *lua.LState) int {
	name := checkName(L, 1)
	if v, ok := m.ctx.Registers.First(name, m.ctx.Editor); ok {
		L.Push(lua.LString(v))
	} else {
		L.Push(lua.LNil)
	}
	return 1
}

// last(name) -> string | nil
func (m *RegisterModule) last(L *lua.LState) int {
	name := checkName(L, 1)
	if v, ok := m.ctx.Registers.Last(name, m.ctx.Editor); ok {
		L.Push(lua.LString(v))
	} else {
		L.Push(lua.LNil)
	}
	return 1
}

// list() -> {name = preview}
func (m *RegisterModule) list(L *lua.LState) int {
	tbl := L.NewTable()
	for name, preview := range m.ctx.Registers.Previews() {
		L.SetField(tbl, string(name), lua.LString(preview))
	}
	L.Push(tbl)
	return 1
}

// clear()
// Removes every register except the reserved ones.
func (m *RegisterModule) clear(L *lua.LState) int {
	m.ctx.Registers.Clear()
	return 0
}

// remove(name) -> bool
func (m *RegisterModule) remove(L *lua.LState) int {
	name := checkName(L, 1)
	_, ok := m.ctx.Registers.Remove(name)
	L.Push(lua.LBool(ok))
	return 1
}

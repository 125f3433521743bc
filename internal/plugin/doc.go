// Package plugin runs user Lua scripts against the editor.
//
// A Host owns one sandboxed gopher-lua state with only the base, table,
// string and math libraries opened. The api package's modules are
// injected as the global ks table. Scripts listed in the configuration
// are loaded at startup; ad-hoc chunks are evaluated with Eval.
//
// gopher-lua states are not goroutine-safe; a Host serializes its calls.
package plugin

package api

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyreg/internal/clipboard"
	"github.com/dshills/keyreg/internal/editor"
	"github.com/dshills/keyreg/internal/register"
)

func setupRegisterTest(t *testing.T) (*lua.LState, *Context) {
	t.Helper()

	ed := editor.New(editor.WithRegistry(register.New(clipboard.NewMemory())))
	ctx := &Context{Registers: ed.Registers, Editor: ed}

	r := NewRegistry()
	if err := r.Register(NewRegisterModule(ctx)); err != nil {
		t.Fatalf("Register error = %v", err)
	}

	L := lua.NewState()
	t.Cleanup(func() { L.Close() })

	if err := r.InjectAll(L); err != nil {
		t.Fatalf("InjectAll error = %v", err)
	}
	return L, ctx
}

func tableStrings(t *testing.T, v lua.LValue) []string {
	t.Helper()
	tbl, ok := v.(*lua.LTable)
	if !ok {
		t.Fatalf("expected table, got %s", v.Type())
	}
	var out []string
	for i := 1; i <= tbl.Len(); i++ {
		out = append(out, tbl.RawGetInt(i).String())
	}
	return out
}

func TestRegisterModuleName(t *testing.T) {
	mod := NewRegisterModule(&Context{})
	if mod.Name() != "reg" {
		t.Errorf("Name() = %q, want %q", mod.Name(), "reg")
	}
}

func TestRegisterWriteRead(t *testing.T) {
	L, ctx := setupRegisterTest(t)

	err := L.DoString(`
		ks.reg.write("a", {"one", "two", 3})
		result = ks.reg.read("a")
	`)
	if err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	got := tableStrings(t, L.GetGlobal("result"))
	want := []string{"one", "two", "3"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("read('a') = %v, want %v", got, want)
	}

	if v, _ := ctx.Registers.First('a', ctx.Editor); v != "one" {
		t.Errorf("Go side sees %q, want %q", v, "one")
	}
}

func TestRegisterReadMissing(t *testing.T) {
	L, _ := setupRegisterTest(t)

	if err := L.DoString(`result = ks.reg.read("z")`); err != nil {
		t.Fatalf("DoString error = %v", err)
	}
	if L.GetGlobal("result") != lua.LNil {
		t.Errorf("read('z') = %v, want nil", L.GetGlobal("result"))
	}
}

func TestRegisterPushFirstLast(t *testing.T) {
	L, _ := setupRegisterTest(t)

	err := L.DoString(`
		ks.reg.push("/", "older")
		ks.reg.push("/", "newer")
		first = ks.reg.first("/")
		last = ks.reg.last("/")
		none = ks.reg.first("q")
	`)
	if err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	if got := L.GetGlobal("first").String(); got != "newer" {
		t.Errorf("first('/') = %q, want %q", got, "newer")
	}
	if got := L.GetGlobal("last").String(); got != "older" {
		t.Errorf("last('/') = %q, want %q", got, "older")
	}
	if L.GetGlobal("none") != lua.LNil {
		t.Error("first('q') should be nil")
	}
}

func TestRegisterComputed(t *testing.T) {
	L, _ := setupRegisterTest(t)

	err := L.DoString(`
		indices = ks.reg.read("#")
		path = ks.reg.first("%")
	`)
	if err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	if got := tableStrings(t, L.GetGlobal("indices")); len(got) != 1 || got[0] != "1" {
		t.Errorf("read('#') = %v, want [1]", got)
	}
	if got := L.GetGlobal("path").String(); got != register.ScratchName {
		t.Errorf("first('%%') = %q, want %q", got, register.ScratchName)
	}
}

func TestRegisterErrors(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr string
	}{
		{"read only", `ks.reg.write("#", {"x"})`, "the '#' register is not writable"},
		{"push read only", `ks.reg.push(".", "x")`, "the '.' register is not writable"},
		{"long name", `ks.reg.read("ab")`, "single character"},
		{"empty name", `ks.reg.get("")`, "single character"},
		{"non-string value", `ks.reg.write("a", {{}})`, "values must be strings"},
		{"missing table", `ks.reg.write("a")`, "table expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			L, _ := setupRegisterTest(t)
			err := L.DoString(tt.code)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestRegisterListClearRemove(t *testing.T) {
	L, ctx := setupRegisterTest(t)

	err := L.DoString(`
		ks.reg.write("a", {"alpha"})
		ks.reg.write("b", {"beta"})
		local l = ks.reg.list()
		preview_a = l["a"]
		preview_star = l["*"]
		removed = ks.reg.remove("a")
		removed_reserved = ks.reg.remove("*")
		has_a = ks.reg.get("a")
		ks.reg.clear()
		has_b = ks.reg.get("b")
		has_hash = ks.reg.get("#")
	`)
	if err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	checks := map[string]string{
		"preview_a":        "alpha",
		"preview_star":     "<system clipboard>",
		"removed":          "true",
		"removed_reserved": "false",
		"has_a":            "false",
		"has_b":            "false",
		"has_hash":         "true",
	}
	for global, want := range checks {
		if got := L.GetGlobal(global).String(); got != want {
			t.Errorf("%s = %q, want %q", global, got, want)
		}
	}

	if ctx.Registers.Len() != 6 {
		t.Errorf("Len() = %d after clear, want 6", ctx.Registers.Len())
	}
}

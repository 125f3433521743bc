package plugin

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dshills/keyreg/internal/editor"
	"github.com/dshills/keyreg/internal/plugin/api"
)

func newTestHost(t *testing.T, opts ...HostOption) (*Host, *editor.Editor) {
	t.Helper()

	ed := editor.New()
	reg := api.NewRegistry()
	if err := reg.Register(api.NewRegisterModule(&api.Context{Registers: ed.Registers, Editor: ed})); err != nil {
		t.Fatal(err)
	}

	h, err := NewHost(reg, opts...)
	if err != nil {
		t.Fatalf("NewHost() error = %v", err)
	}
	t.Cleanup(h.Close)
	return h, ed
}

func TestHost_EvalExpression(t *testing.T) {
	h, _ := newTestHost(t)

	got, err := h.Eval(context.Background(), "1 + 2, 'x'")
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if want := []string{"3", "x"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Eval() = %v, want %v", got, want)
	}
}

func TestHost_EvalStatements(t *testing.T) {
	h, ed := newTestHost(t)

	got, err := h.Eval(context.Background(), `ks.reg.write("a", {"from lua"})`)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Eval() = %v, want no results", got)
	}
	if v, _ := ed.Registers.First('a', ed); v != "from lua" {
		t.Errorf("register 'a' = %q, want %q", v, "from lua")
	}

	got, err = h.Eval(context.Background(), `local n = 0 for i = 1, 3 do n = n + i end return n`)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if want := []string{"6"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Eval() = %v, want %v", got, want)
	}
}

func TestHost_EvalErrors(t *testing.T) {
	h, _ := newTestHost(t)

	_, err := h.Eval(context.Background(), `ks.reg.write("#", {"x"})`)
	var serr *ScriptError
	if !errors.As(err, &serr) {
		t.Fatalf("expected ScriptError, got %v", err)
	}
	if !strings.Contains(err.Error(), "not writable") {
		t.Errorf("error %q does not carry the register error", err.Error())
	}

	if _, err := h.Eval(context.Background(), "this is not lua"); !errors.As(err, &serr) {
		t.Errorf("expected ScriptError for syntax error, got %v", err)
	}

	// The state is still usable.
	if got, err := h.Eval(context.Background(), "'ok'"); err != nil || got[0] != "ok" {
		t.Errorf("Eval() after error = %v, %v", got, err)
	}
}

func TestHost_Sandbox(t *testing.T) {
	h, _ := newTestHost(t)

	for _, global := range []string{"io", "os", "debug", "package", "dofile", "loadfile"} {
		got, err := h.Eval(context.Background(), "type("+global+")")
		if err != nil {
			t.Fatalf("Eval() error = %v", err)
		}
		if got[0] != "nil" {
			t.Errorf("%s is %s, want nil", global, got[0])
		}
	}
	for _, global := range []string{"string", "table", "math"} {
		got, _ := h.Eval(context.Background(), "type("+global+")")
		if got[0] != "table" {
			t.Errorf("%s is %s, want table", global, got[0])
		}
	}
}

func TestHost_Print(t *testing.T) {
	var out bytes.Buffer
	h, _ := newTestHost(t, WithOutput(&out))

	if _, err := h.Eval(context.Background(), `print("a", 1, nil)`); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "a\t1\tnil\n" {
		t.Errorf("print wrote %q", got)
	}
}

func TestHost_Timeout(t *testing.T) {
	h, _ := newTestHost(t, WithExecutionTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := h.Eval(context.Background(), "while true do end")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > 2*time.Second {
		t.Errorf("timeout took %v", time.Since(start))
	}
}

func TestHost_LoadScripts(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.lua")
	bad := filepath.Join(dir, "bad.lua")
	missing := filepath.Join(dir, "missing.lua")

	if err := os.WriteFile(good, []byte(`ks.reg.push(":", "loaded")`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`error("broken")`), 0o644); err != nil {
		t.Fatal(err)
	}

	h, ed := newTestHost(t)
	err := h.LoadScripts(context.Background(), []string{bad, missing, good})
	if err == nil {
		t.Fatal("expected errors from bad and missing scripts")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q does not mention the script failure", err.Error())
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %q does not wrap the missing file", err.Error())
	}

	if v, _ := ed.Registers.First(':', ed); v != "loaded" {
		t.Errorf("good script did not run: ':' = %q", v)
	}
}

func TestHost_Closed(t *testing.T) {
	h, _ := newTestHost(t)
	h.Close()
	h.Close()

	if _, err := h.Eval(context.Background(), "1"); !errors.Is(err, ErrHostClosed) {
		t.Errorf("expected ErrHostClosed, got %v", err)
	}
}

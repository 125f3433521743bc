package loader

import (
	"errors"
	"io/fs"
	"reflect"
	"strings"
	"testing"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[logging]
level = "debug"

[clipboard]
provider = "command"
timeout_ms = 250

[clipboard.command]
copy = ["xclip", "-selection", "clipboard"]
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	logging := config["logging"].(map[string]any)
	if logging["level"] != "debug" {
		t.Errorf("expected level 'debug', got %v", logging["level"])
	}
	clip := config["clipboard"].(map[string]any)
	if clip["timeout_ms"] != int64(250) {
		t.Errorf("expected timeout_ms 250, got %v (%T)", clip["timeout_ms"], clip["timeout_ms"])
	}
	cmd := clip["command"].(map[string]any)
	want := []any{"xclip", "-selection", "clipboard"}
	if !reflect.DeepEqual(cmd["copy"], want) {
		t.Errorf("expected copy %v, got %v", want, cmd["copy"])
	}
}

func TestTOMLLoader_LoadMissingFile(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml").Load()
	if err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}
	if config != nil {
		t.Errorf("expected nil config, got %v", config)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[logging]\nlevel = \n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("expected path '/bad.toml', got %q", perr.Path)
	}
	if perr.Line == 0 {
		t.Error("expected the error position to be reported")
	}
	if !strings.Contains(err.Error(), "/bad.toml") {
		t.Errorf("expected message to name the file, got %q", err.Error())
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"logging":   map[string]any{"level": "info", "format": "text"},
		"clipboard": map[string]any{"provider": "auto"},
	}
	src := map[string]any{
		"logging":   map[string]any{"level": "debug"},
		"clipboard": "replaced",
		"plugins":   map[string]any{"scripts": []any{"a.lua"}},
	}

	got := DeepMerge(dst, src)
	want := map[string]any{
		"logging":   map[string]any{"level": "debug", "format": "text"},
		"clipboard": "replaced",
		"plugins":   map[string]any{"scripts": []any{"a.lua"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge() = %v, want %v", got, want)
	}

	if m := DeepMerge(nil, nil); m == nil || len(m) != 0 {
		t.Errorf("DeepMerge(nil, nil) = %v, want empty map", m)
	}
}

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoader("KEYREG_")
	l.environ = func() []string {
		return []string{
			"HOME=/home/gopher",
			"KEYREG_LOG_LEVEL=warn",
			"KEYREG_CLIPBOARD_PROVIDER=memory",
			"KEYREG_CLIPBOARD_TIMEOUT_MS=500",
			`KEYREG_CLIPBOARD_COPY=["wl-copy","--type","text/plain"]`,
			`KEYREG_PLUGINS_SCRIPTS=["init.lua"]`,
			"KEYREG_CONFIG=/etc/keyreg.toml",
			"KEYREG_LOGGING_FILE=",
		}
	}

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := map[string]any{
		"logging": map[string]any{"level": "warn", "file": ""},
		"clipboard": map[string]any{
			"provider":   "memory",
			"timeout_ms": int64(500),
			"command":    map[string]any{"copy": []any{"wl-copy", "--type", "text/plain"}},
		},
		"plugins": map[string]any{"scripts": []any{"init.lua"}},
	}
	if !reflect.DeepEqual(config, want) {
		t.Errorf("Load() = %v, want %v", config, want)
	}
}

func TestEnvLoader_LoadWithKinds(t *testing.T) {
	l := NewEnvLoader("KEYREG_", WithKinds(map[string]Kind{
		"logging.file":           KindString,
		"clipboard.timeout_ms":   KindInt,
		"clipboard.command.copy": KindStringList,
		"plugins.scripts":        KindStringList,
	}))
	l.environ = func() []string {
		return []string{
			"KEYREG_LOG_FILE=2024",
			"KEYREG_CLIPBOARD_TIMEOUT_MS=250",
			"KEYREG_CLIPBOARD_COPY=pbcopy",
			"KEYREG_PLUGINS_SCRIPTS=",
			"KEYREG_LOG_LEVEL=debug",
		}
	}

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := map[string]any{
		"logging": map[string]any{"file": "2024", "level": "debug"},
		"clipboard": map[string]any{
			"timeout_ms": int64(250),
			"command":    map[string]any{"copy": []string{"pbcopy"}},
		},
		"plugins": map[string]any{"scripts": []string{}},
	}
	if !reflect.DeepEqual(config, want) {
		t.Errorf("Load() = %v, want %v", config, want)
	}
}

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		want  any
	}{
		{"2024", KindString, "2024"},
		{"true", KindString, "true"},
		{"", KindString, ""},
		{"42", KindInt, int64(42)},
		{" 7 ", KindInt, int64(7)},
		{"soon", KindInt, "soon"},
		{"on", KindBool, true},
		{"0", KindBool, false},
		{"maybe", KindBool, "maybe"},
		{"", KindStringList, []string{}},
		{"pbcopy", KindStringList, []string{"pbcopy"}},
		{"xsel --clipboard --input", KindStringList, []string{"xsel", "--clipboard", "--input"}},
		{`["wl-copy", "--type", "text/plain"]`, KindStringList, []string{"wl-copy", "--type", "text/plain"}},
		{"[unclosed", KindStringList, []string{"[unclosed"}},
	}

	for _, tt := range tests {
		if got := coerceValue(tt.input, tt.kind); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("coerceValue(%q, %v) = %#v, want %#v", tt.input, tt.kind, got, tt.want)
		}
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := NewEnvLoader("KEYREG_")
	l.AddMapping("KEYREG_CLIPBOARD", "clipboard.provider")
	l.environ = func() []string { return []string{"KEYREG_CLIPBOARD=terminal"} }

	config, _ := l.Load()
	clip, ok := config["clipboard"].(map[string]any)
	if !ok || clip["provider"] != "terminal" {
		t.Errorf("expected clipboard.provider 'terminal', got %v", config)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"", ""},
		{"42", int64(42)},
		{"0", int64(0)},
		{"true", true},
		{"Off", false},
		{`["a","b"]`, []any{"a", "b"}},
		{`{"k":"v"}`, map[string]any{"k": "v"}},
		{"[not json", "[not json"},
		{"xclip", "xclip"},
	}

	for _, tt := range tests {
		if got := parseValue(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.input, got, got, tt.want, tt.want)
		}
	}
}

package loader

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables.
//
// KEYREG_SECTION_SOME_KEY sets section.some_key. Variables listed in the
// mapping are placed at their mapped path instead.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	kinds   map[string]Kind
	environ func() []string
}

// Kind is the type of the setting a variable targets.
type Kind int

const (
	// KindString keeps the value as written.
	KindString Kind = iota + 1
	// KindInt parses a decimal integer.
	KindInt
	// KindBool parses true/false, yes/no and on/off.
	KindBool
	// KindStringList parses a JSON array or splits on whitespace.
	KindStringList
)

// EnvOption configures an EnvLoader.
type EnvOption func(*EnvLoader)

// WithKinds declares the type of each dotted setting path. Values for
// declared paths are converted to that type; other values are guessed.
func WithKinds(kinds map[string]Kind) EnvOption {
	return func(l *EnvLoader) { l.kinds = kinds }
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "KEYREG_").
func NewEnvLoader(prefix string, opts ...EnvOption) *EnvLoader {
	l := &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// defaultEnvMapping covers variables whose path does not follow from the
// name.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":               "logging.level",
		prefix + "LOG_FORMAT":              "logging.format",
		prefix + "LOG_FILE":                "logging.file",
		prefix + "CLIPBOARD_COPY":          "clipboard.command.copy",
		prefix + "CLIPBOARD_PASTE":         "clipboard.command.paste",
		prefix + "CLIPBOARD_PRIMARY_COPY":  "clipboard.command.primary_copy",
		prefix + "CLIPBOARD_PRIMARY_PASTE": "clipboard.command.primary_paste",
	}
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load reads the prefixed environment variables into a configuration map.
// Empty values are kept; they override lower layers.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		if kind, ok := l.kinds[path]; ok {
			setByPath(config, path, coerceValue(value, kind))
		} else {
			setByPath(config, path, parseValue(value))
		}
	}
	return config, nil
}

// envToPath converts KEYREG_CLIPBOARD_TIMEOUT_MS to clipboard.timeout_ms.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}

// parseValue converts a variable value to an int, bool, JSON array or
// object, falling back to the string itself.
func parseValue(s string) any {
	if s == "" {
		return s
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}
	return s
}

// coerceValue converts s to kind. A value that does not parse is kept as
// a string so decoding reports it against the field.
func coerceValue(s string, kind Kind) any {
	switch kind {
	case KindInt:
		if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return i
		}
	case KindBool:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "on", "1":
			return true
		case "false", "no", "off", "0":
			return false
		}
	case KindStringList:
		if strings.HasPrefix(strings.TrimSpace(s), "[") {
			var list []string
			if err := json.Unmarshal([]byte(s), &list); err == nil {
				return list
			}
		}
		return strings.Fields(s)
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

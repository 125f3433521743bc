// Package config loads keyreg's configuration.
//
// Settings are layered: built-in defaults, then the TOML file, then
// KEYREG_ environment variables. The merged result is decoded into a
// typed Config and validated.
//
// The file format:
//
//	[logging]
//	level = "info"        # debug|info|warn|error
//	format = "text"       # text|json
//	file = ""             # empty = stderr
//
//	[clipboard]
//	provider = "auto"     # auto|command|terminal|memory
//	timeout_ms = 1000
//
//	[clipboard.command]
//	copy = ["xclip", "-selection", "clipboard"]
//	paste = ["xclip", "-selection", "clipboard", "-o"]
//
//	[plugins]
//	scripts = ["~/.config/keyreg/init.lua"]
//
// The watcher subpackage reports changes to the file so it can be
// reloaded while the editor runs.
package config

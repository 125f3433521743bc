// Package app wires keyreg together and runs its command loop.
//
// New loads the configuration, builds the logger, the clipboard provider,
// the editor with its register store and the Lua host. Run then reads one
// command per line and executes it on the calling goroutine. Configuration
// reloads from the file watcher are delivered to the same goroutine over a
// channel, so registers and the clipboard provider are never touched
// concurrently.
package app

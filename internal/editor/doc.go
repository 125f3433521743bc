// Package editor holds the documents and views of an editing session and
// the register-driven editing commands (yank, paste, replace, delete).
//
// An Editor satisfies register.Editor: the registry's computed registers
// read the focused view's document and selections through it.
package editor

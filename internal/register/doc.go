// Package register implements the editor's named text registers.
//
// A register is a single-character slot holding an ordered sequence of
// values. Registers back yank and paste, macro storage, search and command
// history, and exchange with the operating system clipboard.
//
// # Register Kinds
//
// The set of register kinds is closed:
//
//   - Static registers keep the values written to them in memory. Every
//     register created by a write to an unused name is static. The most
//     recently pushed value is read first.
//   - Computed registers are read-only and derive their values from the
//     editor each time they are read: '#' yields the 1-based index of every
//     selection, '.' the text of every selection, '%' the path of the active
//     document. The discard register '_' accepts writes and drops them.
//   - Clipboard registers '*' (system clipboard) and '+' (primary
//     selection) write through to a clipboard.Provider and remember the
//     values they last wrote, so a multi-value yank survives a round trip
//     through a clipboard that only stores one string.
//
// # Reserved Names
//
// The computed and clipboard registers always exist. Registry.Clear and
// Registry.Remove leave them untouched.
//
// # Reading
//
// Read returns a Values sequence whose length is known up front. Values are
// produced lazily from a snapshot taken when Read was called, so the
// sequence stays valid after the registry or the editor changes.
//
// # Thread Safety
//
// Registry is not safe for concurrent use. The editor owns it and only
// touches it from the goroutine that runs commands.
package register

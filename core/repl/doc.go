// Package repl provides the optional remote-evaluation listener of the
// development server: a localhost TCP endpoint external tooling can query
// for process state.
//
// On start the bound port is written as plain text to a well-known marker
// file (.devserve-repl-port by default) so tools can discover the
// listener; Stop removes the file again. Callers that want the marker
// cleaned up on process exit should invoke Stop from their shutdown path.
package repl

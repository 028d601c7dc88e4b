// Package cli provides the interactive taskkeeper command-line client.
//
// It wires configuration, the local session database, API services and an
// interactive REPL. On start the saved session, if any, is restored so the
// user stays logged in between runs.
//
// Key features:
//   - Register / Login / Logout, current user (me)
//   - Add, list and show tasks
//   - Mark tasks done or not done, edit and remove them
//
// Tasks are addressed by full id or by any unique id prefix, as printed by
// the list command.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

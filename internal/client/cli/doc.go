// Package cli provides the interactive contactkeeper command-line client.
//
// It wires configuration, the local session file, the API services and a
// read-eval-print loop. A session saved by an earlier run is restored on
// start, and a background watcher shows whether the server is reachable.
//
// Commands:
//   - signup / login / logout
//   - me: show the current profile
//   - add: create a contact
//   - list [page] [limit]: page through contacts, newest first
//   - search [name=..] [email=..] [phone=..] [page=..] [limit=..]
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

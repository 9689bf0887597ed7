// Package cli provides the interactive ehrdesk console.
//
// It wires configuration, local session storage, the REST and wallet
// adapters, the authentication state machine and the resource services into
// a REPL. Startup restores a stored session; a background watcher prints
// every session state change.
//
// Key features:
//   - connect / reconnect / logout with a wallet signer
//   - doctors, patients, appointments and medical records: list, show, add,
//     edit, delete
//   - appointment cancel / complete
//   - dashboard counts
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, WatchSession and runREPL for details.
package cli

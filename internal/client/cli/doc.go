// Package cli provides the interactive AuthKeeper command-line client.
//
// It wires configuration, the local session database, the HTTP client and an
// interactive REPL. Commands: signup, login, me, logout, ping, help and
// exit. The session (access token and email) is kept in the local database
// so it survives restarts; the refresh cookie lives in the HTTP client's
// cookie jar for the lifetime of the process.
//
// A background watcher pings the server and switches the prompt between
// online and offline mode.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

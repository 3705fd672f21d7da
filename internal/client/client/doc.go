// Package client contains client-side building blocks for AuthKeeper.
//
// # Overview
//
// The package provides:
//  1. An API contract (see the Client interface) for the authentication
//     backend: Signup, Login, Me, Logout and Ping.
//  2. An HTTP/JSON implementation (see HTTPClient). It attaches the stored
//     access token as a bearer token, keeps the HTTP-only refresh cookie in
//     a cookie jar, and on a 401 refreshes the access token once and resends
//     the request once.
//  3. Access token storage (see TokenStore): MemoryTokenStore, and
//     MetadataTokenStore backed by the local SQLite database that
//     InitDatabase opens and migrates.
//
// # Error Handling
//
// Responses map to sentinel errors that callers can match with errors.Is:
// ErrUnauthorized (401), ErrBadRequest (400), ErrUnavailable (5xx and
// transport failures). The server's message is kept in the error text.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Concurrent requests rejected with
// the same stale token share one refresh. All operations accept
// context.Context and every request is bounded by the client timeout.
package client

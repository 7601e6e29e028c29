// Package api contains the client-side transport for the OnlyVentilateur
// platform.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering
//     authentication, entity retrieval, like toggling, and subscription
//     management.
//  2. A concrete REST implementation (see HTTPClient) that injects the
//     bearer credential from a TokenSource, tags requests for log
//     correlation, and normalizes wire payloads into models values
//     (numeric strings coerced, absent optionals defaulted).
//
// # Error Handling
//
// Transport-level failures surface as ErrUnavailable. HTTP rejections
// surface as *Error carrying the server's message; errors.Is matches them
// against ErrUnauthorized and ErrNotFound for the well-known statuses.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation/timeouts.
package api

// Package cli provides the interactive OnlyVentilateur command-line client.
//
// It wires configuration, the durable session store, the HTTP API client,
// and the per-screen view-models into an interactive REPL. Typical flow:
// restore a persisted session, then execute user commands against the
// feed, the creator directory, single posts, and the caller's profile.
//
// Key features:
//   - Login / Signup / Logout with a durable session
//   - Browse the feed with client-side pagination
//   - Like posts and subscribe to creators with optimistic toggles
//   - Search the creator directory
//   - Edit the caller's profile
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

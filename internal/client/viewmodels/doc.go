// Package viewmodels contains the per-screen façades of the client. Each
// view-model owns its copies of fetched lists, composes the api client,
// the session store, and the optimistic mutation controller, and exposes
// only derived state plus handler methods. The presentation layer is a
// pure consumer: it performs no network or persistence operations of its
// own.
//
// All view-models are safe for concurrent use. Loads accept a
// context.Context; a view-model's Close invalidates any fetch still in
// flight so a late response cannot mutate state after the screen is gone.
package viewmodels

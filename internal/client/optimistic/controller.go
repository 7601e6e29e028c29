// Package optimistic implements the speculative-update pattern shared by
// the like, subscribe, and profile-save flows: apply a local state change
// before the network round trip, then reconcile with the server's
// authoritative answer, or roll back to the exact pre-speculation value
// on failure.
package optimistic

import (
	"context"
	"errors"
	"sync"
)

// ErrPending is returned when a mutation for the same target is already in
// flight. Overlapping mutations against one target could corrupt the
// rollback baseline, so they are rejected rather than queued.
var ErrPending = errors.New("mutation already in flight for target")

// Mutation describes one optimistic update over a state slice S.
//
// Current reads the present value and Apply writes one back; both operate
// on the caller's own state (typically under the caller's lock).
//
// Speculate computes the value shown to the user before the request
// completes. A nil Speculate skips the speculative step (profile save).
//
// Commit performs the remote operation and returns the server's
// authoritative state. Reconcile folds that answer into local state on
// success; when Reconcile is nil the speculative value simply stands
// (subscribe/unsubscribe, which get no authoritative echo back).
type Mutation[S any] struct {
	Current   func() S
	Apply     func(S)
	Speculate func(prev S) S
	Commit    func(ctx context.Context) (S, error)
	Reconcile func(server S) S
}

// Controller serializes optimistic mutations per target id. It holds no
// domain state of its own; all reads and writes go through the Mutation's
// accessors.
type Controller struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewController() *Controller {
	return &Controller{inflight: make(map[string]struct{})}
}

func (c *Controller) begin(target string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[target]; busy {
		return false
	}
	c.inflight[target] = struct{}{}
	return true
}

func (c *Controller) end(target string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, target)
}

// Do runs one mutation against target:
//
//  1. capture the pre-speculation value,
//  2. apply the speculative value synchronously,
//  3. issue the remote operation,
//  4. on success reconcile with the server's returned state,
//  5. on failure restore the captured value exactly.
//
// The rollback re-applies the captured baseline instead of inverting the
// speculation, so it stays correct even if the speculative step was
// derived from a value that has since proven stale.
func Do[S any](ctx context.Context, c *Controller, target string, m Mutation[S]) error {
	if !c.begin(target) {
		return ErrPending
	}
	defer c.end(target)

	prev := m.Current()
	if m.Speculate != nil {
		m.Apply(m.Speculate(prev))
	}

	server, err := m.Commit(ctx)
	if err != nil {
		m.Apply(prev)
		return err
	}

	if m.Reconcile != nil {
		m.Apply(m.Reconcile(server))
	}
	return nil
}

// Package fetch provides generation markers for in-flight reads. A fetch
// keyed by a changing identifier (navigating between creator profiles, for
// example) must not let a slow, superseded response overwrite the state of
// the identifier that replaced it. The underlying request is not aborted;
// its result is simply ignored on arrival.
package fetch

import "sync"

// Guard issues generation tokens. Starting a new fetch invalidates every
// token issued before it; closing the guard invalidates all of them.
type Guard struct {
	mu  sync.Mutex
	gen uint64
}

func NewGuard() *Guard {
	return &Guard{}
}

// Begin marks the start of a fetch and returns its token.
func (g *Guard) Begin() Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen++
	return Token{guard: g, gen: g.gen}
}

// Close invalidates all outstanding tokens. Used when the owning screen's
// lifetime ends.
func (g *Guard) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen++
}

// Token identifies one fetch attempt.
type Token struct {
	guard *Guard
	gen   uint64
}

// Live reports whether this fetch is still the latest one. A false result
// means the response must be discarded at the response-handling boundary.
func (t Token) Live() bool {
	if t.guard == nil {
		return false
	}
	t.guard.mu.Lock()
	defer t.guard.mu.Unlock()
	return t.guard.gen == t.gen
}

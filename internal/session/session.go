// Package session provides the single-flight guard that keeps detection
// passes from overlapping.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Guard admits one pass at a time. The zero value is ready to use.
type Guard struct {
	mu     sync.Mutex
	active *Pass
}

// Pass is an admitted run from detection through actuation.
type Pass struct {
	ID      string
	Started time.Time

	guard *Guard
	once  sync.Once
}

// TryBegin starts a pass unless one is already in flight. Callers must defer
// End on the returned pass.
func (g *Guard) TryBegin() (*Pass, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active != nil {
		return nil, false
	}
	p := &Pass{ID: uuid.NewString(), Started: time.Now(), guard: g}
	g.active = p
	return p, true
}

// Busy reports whether a pass is in flight.
func (g *Guard) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active != nil
}

// Active returns the pass in flight, or nil.
func (g *Guard) Active() *Pass {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// End releases the guard. Calling it again is a no-op, as is calling it on a
// nil pass.
func (p *Pass) End() {
	if p == nil {
		return
	}
	p.once.Do(func() {
		g := p.guard
		g.mu.Lock()
		if g.active == p {
			g.active = nil
		}
		g.mu.Unlock()
	})
}

// Elapsed is the time since the pass began.
func (p *Pass) Elapsed() time.Duration { return time.Since(p.Started) }

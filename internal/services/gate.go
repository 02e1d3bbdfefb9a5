package services

import "sync"

// DefaultPIN is the shared secret used when none is configured.
const DefaultPIN = "2026"

// Gate is a UX lock in front of destructive actions (add, delete).
//
// It is a single exact-match secret with no hashing or session model and
// must not be treated as authentication.
type Gate struct {
	mu     sync.RWMutex
	pin    string
	locked bool
}

// NewGate returns a Gate with the given PIN and initial state.
// An empty pin falls back to DefaultPIN.
func NewGate(pin string, locked bool) *Gate {
	if pin == "" {
		pin = DefaultPIN
	}
	return &Gate{pin: pin, locked: locked}
}

// Lock engages the gate.
func (g *Gate) Lock() {
	g.mu.Lock()
	g.locked = true
	g.mu.Unlock()
}

// Unlock releases the gate when pin matches. On mismatch the state is kept
// and ErrInvalidPIN is returned.
func (g *Gate) Unlock(pin string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if pin != g.pin {
		return ErrInvalidPIN
	}
	g.locked = false
	return nil
}

// Locked reports the current state.
func (g *Gate) Locked() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.locked
}

// Check returns ErrLocked while the gate is engaged.
func (g *Gate) Check() error {
	if g.Locked() {
		return ErrLocked
	}
	return nil
}

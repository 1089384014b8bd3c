package nakama

import "sync"

// gameLocks serialises handlers per game id so two near-simultaneous actions
// on the same game resolve one after the other instead of both failing the
// storage version check. Entries are reference counted and dropped when idle.
type gameLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{entries: make(map[string]*lockEntry)}
}

// lock acquires the lock for the id and returns its release func.
func (g *gameLocks) lock(id string) func() {
	g.mu.Lock()
	e, ok := g.entries[id]
	if !ok {
		e = &lockEntry{}
		g.entries[id] = e
	}
	e.refs++
	g.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		g.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(g.entries, id)
		}
		g.mu.Unlock()
	}
}

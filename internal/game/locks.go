package game

import "sync"

// gameLocks serializes command processing per game id. Commands for
// different games run concurrently; commands for the same game queue.
type gameLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newGameLocks() *gameLocks {
	return &gameLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for the given game and returns its unlock
// function. Entries are never evicted; a finished game's mutex is a few
// dozen bytes.
func (g *gameLocks) lock(gameID string) func() {
	g.mu.Lock()
	m, ok := g.locks[gameID]
	if !ok {
		m = &sync.Mutex{}
		g.locks[gameID] = m
	}
	g.mu.Unlock()

	m.Lock()
	return m.Unlock
}

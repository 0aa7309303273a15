package store

import (
	"sort"
	"sync"

	"mankomania-server/internal/session"
)

type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]*session.Game
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: map[string]*session.Game{},
	}
}

func (m *MemoryStore) GetGame(id string) (*session.Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	return g, ok
}

// GetOrCreate returns the game for id, creating it if needed. Concurrent
// callers for the same id all receive the same game.
func (m *MemoryStore) GetOrCreate(id string) (*session.Game, bool) {
	if g, ok := m.GetGame(id); ok {
		return g, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.games[id]; ok {
		return g, false
	}
	g := session.NewGame(id)
	m.games[id] = g
	return g, true
}

func (m *MemoryStore) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

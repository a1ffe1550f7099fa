package game

import "sync"

// Manager tracks the Game instance of every live room, keyed by room code.
// Lifetime mirrors the room: created on room creation, removed when the
// registry deletes the room.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*Game
}

func NewManager() *Manager {
	return &Manager{
		games: make(map[string]*Game),
	}
}

func (m *Manager) Add(code string, g *Game) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[code] = g
}

func (m *Manager) Get(code string) (*Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, exists := m.games[code]
	return g, exists
}

func (m *Manager) Remove(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, code)
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

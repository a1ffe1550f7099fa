package room

import (
	"math/rand"
	"sync"
)

// RoomInfo is the public directory projection of a room. The password
// never appears here.
type RoomInfo struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Private    bool   `json:"private"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Status     Status `json:"status"`
}

// Registry owns room lifecycle: creation, lookup, membership changes and
// deletion-on-empty.
type Registry struct {
	mu         sync.RWMutex
	rooms      map[string]*Room
	rand       *rand.Rand
	maxPlayers int
}

func NewRegistry(maxPlayers int, seed int64) *Registry {
	if maxPlayers <= 0 {
		maxPlayers = 8
	}
	return &Registry{
		rooms:      make(map[string]*Room),
		rand:       rand.New(rand.NewSource(seed)),
		maxPlayers: maxPlayers,
	}
}

// Ambiguous glyphs (0/O, 1/I) are left out of codes.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const codeLength = 6

// CreateRoom allocates a room under a fresh code.
func (m *Registry) CreateRoom(name string, private bool, password string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := m.generateCode()
	r := NewRoom(code, name, private, password, m.maxPlayers)
	m.rooms[code] = r
	return r
}

// generateCode is collision-checked against live rooms. Caller holds the
// lock.
func (m *Registry) generateCode() string {
	buf := make([]byte, codeLength)
	for {
		for i := range buf {
			buf[i] = codeAlphabet[m.rand.Intn(len(codeAlphabet))]
		}
		code := string(buf)
		if _, exists := m.rooms[code]; !exists {
			return code
		}
	}
}

func (m *Registry) Get(code string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, exists := m.rooms[code]
	return r, exists
}

func (m *Registry) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// ListPublic returns directory entries for non-private rooms only.
func (m *Registry) ListPublic() []RoomInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]RoomInfo, 0, len(m.rooms))
	for _, r := range m.rooms {
		if r.Private {
			continue
		}
		out = append(out, RoomInfo{
			Code:       r.Code,
			Name:       r.Name,
			Private:    false,
			Players:    r.MemberCount(),
			MaxPlayers: r.MaxPlayers,
			Status:     r.Status(),
		})
	}
	return out
}

// AddPlayer joins a player to a room. Rejoining with a known identity is
// idempotent and bypasses the full/in-progress checks. The first join
// makes that player host.
func (m *Registry) AddPlayer(code string, p *Player) (*Room, error) {
	m.mu.RLock()
	r, exists := m.rooms[code]
	m.mu.RUnlock()
	if !exists {
		return nil, ErrRoomNotFound
	}

	if r.IsMember(p.ID) {
		return r, nil
	}
	if r.MemberCount() >= r.MaxPlayers {
		return nil, ErrRoomFull
	}
	if r.Status() == StatusPlaying {
		return nil, ErrGameInProgress
	}

	if !r.addMember(p) {
		// Raced with a rejoin of the same identity.
		return r, nil
	}
	return r, nil
}

// RemovePlayer drops the player and deletes the room when it empties.
// The returned flag tells the caller to tear down associated game state.
func (m *Registry) RemovePlayer(code, playerID string) (*Room, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, exists := m.rooms[code]
	if !exists {
		return nil, false, ErrRoomNotFound
	}

	_, empty := r.removeMember(playerID)
	if empty {
		delete(m.rooms, code)
		return r, true, nil
	}
	return r, false, nil
}

// VerifyPassword is trivially true for public rooms and rooms without a
// password.
func (m *Registry) VerifyPassword(code, attempt string) bool {
	m.mu.RLock()
	r, exists := m.rooms[code]
	m.mu.RUnlock()
	if !exists {
		return false
	}
	if !r.Private || r.Password == "" {
		return true
	}
	return r.Password == attempt
}

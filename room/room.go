package room

import (
	"sync"
	"time"
)

// Status is the coarse business state of a room.
type Status string

const (
	StatusWaiting Status = "WAITING"
	StatusPlaying Status = "PLAYING"
)

// Room is a coded multiplayer session container. Member order is join
// order and doubles as turn order.
type Room struct {
	Code       string
	Name       string
	Private    bool
	Password   string
	HostID     string
	MaxPlayers int
	CreatedAt  time.Time

	mu      sync.RWMutex
	players []*Player
	status  Status
}

func NewRoom(code, name string, private bool, password string, maxPlayers int) *Room {
	return &Room{
		Code:       code,
		Name:       name,
		Private:    private,
		Password:   password,
		MaxPlayers: maxPlayers,
		CreatedAt:  time.Now(),
		status:     StatusWaiting,
	}
}

func (r *Room) SetStatus(status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
}

func (r *Room) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Members returns a copy of the member list in turn order.
func (r *Room) Members() []*Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Player, len(r.players))
	copy(out, r.players)
	return out
}

func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// MemberAt resolves a turn-order index against the live member list.
// Callers must never cache the returned pointer across departures.
func (r *Room) MemberAt(index int) (*Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 || index >= len(r.players) {
		return nil, false
	}
	return r.players[index], true
}

func (r *Room) Member(playerID string) (*Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.players {
		if p.ID == playerID {
			return p, true
		}
	}
	return nil, false
}

func (r *Room) IsMember(playerID string) bool {
	_, ok := r.Member(playerID)
	return ok
}

// addMember appends the player and assigns the host on first join.
// Returns false when the player is already a member (rejoin).
func (r *Room) addMember(p *Player) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.players {
		if existing.ID == p.ID {
			return false
		}
	}
	r.players = append(r.players, p)
	if len(r.players) == 1 {
		r.HostID = p.ID
	}
	return true
}

// removeMember drops the player, promoting the next member by join order
// when the host leaves. Returns whether the player was found and whether
// the room is now empty.
func (r *Room) removeMember(playerID string) (found, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.players {
		if p.ID == playerID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return false, len(r.players) == 0
	}
	if r.HostID == playerID && len(r.players) > 0 {
		r.HostID = r.players[0].ID
	}
	return true, len(r.players) == 0
}

// --- game-owned member state ---

func (r *Room) ResetScores() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		p.Score = 0
	}
}

func (r *Room) ResetGuesses() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		p.HasGuessed = false
	}
}

func (r *Room) AddScore(playerID string, points int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.ID == playerID {
			p.Score += points
			return
		}
	}
}

func (r *Room) MarkGuessed(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.ID == playerID {
			p.HasGuessed = true
			return
		}
	}
}

func (r *Room) HasGuessed(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.players {
		if p.ID == playerID {
			return p.HasGuessed
		}
	}
	return false
}

// CountGuessed counts members with a correct guess this turn, excluding
// the drawer.
func (r *Room) CountGuessed(excludeID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.players {
		if p.ID != excludeID && p.HasGuessed {
			n++
		}
	}
	return n
}

// AllGuessed reports whether every member other than the drawer has
// guessed correctly. Vacuously true when the drawer is the only member.
func (r *Room) AllGuessed(excludeID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.players {
		if p.ID != excludeID && !p.HasGuessed {
			return false
		}
	}
	return true
}

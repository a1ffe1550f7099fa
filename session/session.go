// session/session.go
package session

import (
	"sync"
	"time"

	"github.com/wfunc/drawparty/network"
)

// Session binds a connection to a player identity and, once joined, to a
// room code. PlayerID doubles as the opaque identity the game layer sees.
type Session struct {
	ID         string
	Conn       network.Connection
	PlayerID   string
	Name       string
	Avatar     string
	RoomCode   string
	CreatedAt  time.Time
	LastActive time.Time
	mutex      sync.RWMutex
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		PlayerID:   id,
		Conn:       conn,
		CreatedAt:  now,
		LastActive: now,
	}
}

func (s *Session) Send(msgID uint16, data []byte) error {
	s.mutex.Lock()
	s.LastActive = time.Now()
	s.mutex.Unlock()
	return s.Conn.Send(msgID, data)
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) SetRoom(code string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.RoomCode = code
}

func (s *Session) Room() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.RoomCode
}

func (s *Session) SetIdentity(name, avatar string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Name = name
	s.Avatar = avatar
}

func (s *Session) Touch() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.LastActive = time.Now()
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Manager indexes live sessions.
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}

// GetByRoom returns every session currently bound to the room code.
func (m *Manager) GetByRoom(code string) []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Session
	for _, session := range m.sessions {
		if session.Room() == code {
			result = append(result, session)
		}
	}
	return result
}

// GetByPlayer resolves a player identity inside a room to its session.
func (m *Manager) GetByPlayer(code, playerID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, session := range m.sessions {
		if session.Room() == code && session.PlayerID == playerID {
			return session, true
		}
	}
	return nil, false
}

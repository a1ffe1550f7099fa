// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/wfunc/drawparty/session"
)

var ErrPlayerNotConnected = errors.New("player has no live session in room")

// Broadcaster fans messages out to room members. SendToPlayer exists for
// privacy-sensitive payloads (word candidates) that must reach exactly one
// member; BroadcastExcept covers canvas deltas, which skip the drawer.
type Broadcaster interface {
	BroadcastToRoom(code string, msgID uint16, data []byte) error
	BroadcastExcept(code, playerID string, msgID uint16, data []byte) error
	SendToPlayer(code, playerID string, msgID uint16, data []byte) error
}

// RoomBroadcaster resolves room membership through the session manager:
// a session bound to a room code receives that room's traffic.
type RoomBroadcaster struct {
	sessionManager *session.Manager
}

func NewRoomBroadcaster(sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{sessionManager: sessionManager}
}

func (b *RoomBroadcaster) BroadcastToRoom(code string, msgID uint16, data []byte) error {
	for _, s := range b.sessionManager.GetByRoom(code) {
		if err := s.Send(msgID, data); err != nil {
			// A dead connection is cleaned up by its own read loop.
			continue
		}
	}
	return nil
}

func (b *RoomBroadcaster) BroadcastExcept(code, playerID string, msgID uint16, data []byte) error {
	for _, s := range b.sessionManager.GetByRoom(code) {
		if s.PlayerID == playerID {
			continue
		}
		if err := s.Send(msgID, data); err != nil {
			continue
		}
	}
	return nil
}

func (b *RoomBroadcaster) SendToPlayer(code, playerID string, msgID uint16, data []byte) error {
	s, exists := b.sessionManager.GetByPlayer(code, playerID)
	if !exists {
		return ErrPlayerNotConnected
	}
	return s.Send(msgID, data)
}

package session

import (
	"net"
	"testing"
	"time"

	"github.com/wfunc/drawparty/network"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct{}

func (m *MockConnection) Send(msgID uint16, data []byte) error { return nil }
func (m *MockConnection) Close() error                         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func TestNewSession_PlayerIDDefaultsToSessionID(t *testing.T) {
	sess := NewSession("session1", &MockConnection{})
	if sess.PlayerID != "session1" {
		t.Errorf("Expected player ID to default to session ID, got %q", sess.PlayerID)
	}
}

func TestManager_Add_Get_Remove(t *testing.T) {
	manager := NewManager()
	sess := NewSession("session1", &MockConnection{})

	manager.Add(sess)
	if manager.Count() != 1 {
		t.Fatalf("Expected session count 1, got %d", manager.Count())
	}

	retrieved, exists := manager.Get("session1")
	if !exists {
		t.Fatal("Get should find the added session")
	}
	if retrieved != sess {
		t.Fatal("Get should return the same session instance")
	}

	manager.Remove("session1")
	if manager.Count() != 0 {
		t.Fatalf("Expected session count 0 after removal, got %d", manager.Count())
	}
	if _, exists := manager.Get("session1"); exists {
		t.Fatal("Get should not find the removed session")
	}
}

func TestManager_GetByRoom(t *testing.T) {
	manager := NewManager()

	sess1 := NewSession("session1", &MockConnection{})
	sess1.SetRoom("ROOMA")
	sess2 := NewSession("session2", &MockConnection{})
	sess2.SetRoom("ROOMB")
	sess3 := NewSession("session3", &MockConnection{})
	sess3.SetRoom("ROOMA")

	manager.Add(sess1)
	manager.Add(sess2)
	manager.Add(sess3)

	if got := len(manager.GetByRoom("ROOMA")); got != 2 {
		t.Errorf("Expected 2 sessions in ROOMA, got %d", got)
	}
	if got := len(manager.GetByRoom("ROOMB")); got != 1 {
		t.Errorf("Expected 1 session in ROOMB, got %d", got)
	}
	if got := len(manager.GetByRoom("EMPTY")); got != 0 {
		t.Errorf("Expected 0 sessions in EMPTY, got %d", got)
	}
}

func TestManager_GetByPlayer(t *testing.T) {
	manager := NewManager()

	sess := NewSession("session1", &MockConnection{})
	sess.SetRoom("ROOMA")
	manager.Add(sess)

	found, exists := manager.GetByPlayer("ROOMA", "session1")
	if !exists {
		t.Fatal("GetByPlayer should resolve the session")
	}
	if found != sess {
		t.Error("GetByPlayer should return the same session instance")
	}

	if _, exists := manager.GetByPlayer("ROOMB", "session1"); exists {
		t.Error("GetByPlayer should not match across rooms")
	}
}

func TestSession_RoomBinding(t *testing.T) {
	sess := NewSession("session1", &MockConnection{})
	if sess.Room() != "" {
		t.Errorf("New session should have no room, got %q", sess.Room())
	}
	sess.SetRoom("ROOMA")
	if sess.Room() != "ROOMA" {
		t.Errorf("Expected ROOMA, got %q", sess.Room())
	}
}

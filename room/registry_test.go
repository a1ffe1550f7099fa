package room

import (
	"testing"
)

func newTestPlayer(id, name string) *Player {
	return &Player{ID: id, Name: name}
}

func TestRegistry_CreateAndGetRoom(t *testing.T) {
	registry := NewRegistry(8, 1)

	r := registry.CreateRoom("Test Room", false, "")
	if r == nil {
		t.Fatal("CreateRoom should not return nil")
	}
	if len(r.Code) != codeLength {
		t.Errorf("Expected a %d-char code, got %q", codeLength, r.Code)
	}
	if r.Status() != StatusWaiting {
		t.Errorf("Expected new room status WAITING, got %s", r.Status())
	}

	retrieved, exists := registry.Get(r.Code)
	if !exists {
		t.Fatal("Get should find the created room")
	}
	if retrieved != r {
		t.Error("Get should return the same room instance")
	}
}

func TestRegistry_CodesAreUnique(t *testing.T) {
	registry := NewRegistry(8, 2)

	codes := make(map[string]bool)
	for i := 0; i < 200; i++ {
		r := registry.CreateRoom("Room", false, "")
		if codes[r.Code] {
			t.Fatalf("Duplicate room code %q", r.Code)
		}
		codes[r.Code] = true
	}
}

func TestRegistry_AddPlayer_FirstJoinBecomesHost(t *testing.T) {
	registry := NewRegistry(8, 3)
	r := registry.CreateRoom("Room", false, "")

	p1 := newTestPlayer("p1", "Alice")
	if _, err := registry.AddPlayer(r.Code, p1); err != nil {
		t.Fatalf("AddPlayer failed: %v", err)
	}
	if r.HostID != "p1" {
		t.Errorf("Expected first player to become host, got host %q", r.HostID)
	}

	p2 := newTestPlayer("p2", "Bob")
	if _, err := registry.AddPlayer(r.Code, p2); err != nil {
		t.Fatalf("AddPlayer failed: %v", err)
	}
	if r.HostID != "p1" {
		t.Errorf("Host should not change on later joins, got %q", r.HostID)
	}
	if r.MemberCount() != 2 {
		t.Errorf("Expected 2 members, got %d", r.MemberCount())
	}
}

func TestRegistry_AddPlayer_Errors(t *testing.T) {
	registry := NewRegistry(2, 4)

	if _, err := registry.AddPlayer("NOSUCH", newTestPlayer("p1", "Alice")); err != ErrRoomNotFound {
		t.Errorf("Expected ErrRoomNotFound, got %v", err)
	}

	r := registry.CreateRoom("Room", false, "")
	registry.AddPlayer(r.Code, newTestPlayer("p1", "Alice"))
	registry.AddPlayer(r.Code, newTestPlayer("p2", "Bob"))

	if _, err := registry.AddPlayer(r.Code, newTestPlayer("p3", "Carol")); err != ErrRoomFull {
		t.Errorf("Expected ErrRoomFull, got %v", err)
	}

	r2 := registry.CreateRoom("Busy", false, "")
	registry.AddPlayer(r2.Code, newTestPlayer("p4", "Dan"))
	r2.SetStatus(StatusPlaying)

	if _, err := registry.AddPlayer(r2.Code, newTestPlayer("p5", "Eve")); err != ErrGameInProgress {
		t.Errorf("Expected ErrGameInProgress, got %v", err)
	}
}

func TestRegistry_AddPlayer_RejoinIsIdempotent(t *testing.T) {
	registry := NewRegistry(8, 5)
	r := registry.CreateRoom("Room", false, "")

	p1 := newTestPlayer("p1", "Alice")
	registry.AddPlayer(r.Code, p1)
	r.SetStatus(StatusPlaying)

	// Same identity may rejoin even mid-game.
	if _, err := registry.AddPlayer(r.Code, newTestPlayer("p1", "Alice")); err != nil {
		t.Errorf("Rejoin should succeed, got %v", err)
	}
	if r.MemberCount() != 1 {
		t.Errorf("Rejoin should not duplicate membership, count=%d", r.MemberCount())
	}
}

func TestRegistry_RemovePlayer_PromotesNextHost(t *testing.T) {
	registry := NewRegistry(8, 6)
	r := registry.CreateRoom("Room", false, "")
	registry.AddPlayer(r.Code, newTestPlayer("p1", "Alice"))
	registry.AddPlayer(r.Code, newTestPlayer("p2", "Bob"))
	registry.AddPlayer(r.Code, newTestPlayer("p3", "Carol"))

	_, deleted, err := registry.RemovePlayer(r.Code, "p1")
	if err != nil {
		t.Fatalf("RemovePlayer failed: %v", err)
	}
	if deleted {
		t.Fatal("Room should not be deleted while members remain")
	}
	if r.HostID != "p2" {
		t.Errorf("Expected next member by order to become host, got %q", r.HostID)
	}
}

func TestRegistry_RemovePlayer_LastMemberDeletesRoom(t *testing.T) {
	registry := NewRegistry(8, 7)
	r := registry.CreateRoom("Room", false, "")
	registry.AddPlayer(r.Code, newTestPlayer("p1", "Alice"))

	_, deleted, err := registry.RemovePlayer(r.Code, "p1")
	if err != nil {
		t.Fatalf("RemovePlayer failed: %v", err)
	}
	if !deleted {
		t.Fatal("Removing the last member should delete the room")
	}
	if _, exists := registry.Get(r.Code); exists {
		t.Error("Deleted room should not be retrievable")
	}
}

func TestRegistry_VerifyPassword(t *testing.T) {
	registry := NewRegistry(8, 8)

	private := registry.CreateRoom("Secret", true, "abc")
	if registry.VerifyPassword(private.Code, "wrong") {
		t.Error("Wrong password should be rejected")
	}
	if !registry.VerifyPassword(private.Code, "abc") {
		t.Error("Correct password should be accepted")
	}

	public := registry.CreateRoom("Open", false, "")
	if !registry.VerifyPassword(public.Code, "") {
		t.Error("Public room should accept an empty password")
	}
	if !registry.VerifyPassword(public.Code, "anything") {
		t.Error("Public room should accept any password")
	}

	if registry.VerifyPassword("NOSUCH", "abc") {
		t.Error("Unknown room should not verify")
	}
}

func TestRegistry_ListPublic_ExcludesPrivateRooms(t *testing.T) {
	registry := NewRegistry(8, 9)
	pub := registry.CreateRoom("Open", false, "")
	registry.CreateRoom("Secret", true, "abc")
	registry.AddPlayer(pub.Code, newTestPlayer("p1", "Alice"))

	infos := registry.ListPublic()
	if len(infos) != 1 {
		t.Fatalf("Expected 1 public room, got %d", len(infos))
	}
	if infos[0].Code != pub.Code {
		t.Errorf("Expected public room %q, got %q", pub.Code, infos[0].Code)
	}
	if infos[0].Players != 1 {
		t.Errorf("Expected member count 1, got %d", infos[0].Players)
	}
}

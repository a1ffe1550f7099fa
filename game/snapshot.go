package game

import (
	"time"

	"github.com/wfunc/drawparty/room"
)

// Snapshot is the broadcastable projection of room plus non-secret game
// state. The secret word and the drawer's candidates never appear here;
// the word is exposed only masked during drawing and in clear once the
// turn has ended.
type Snapshot struct {
	Room        room.RoomInfo `json:"room"`
	HostID      string        `json:"hostId"`
	Players     []room.Player `json:"players"`
	Phase       Phase         `json:"phase"`
	Round       int           `json:"round"`
	TotalRounds int           `json:"totalRounds"`
	DrawerID    string        `json:"drawerId,omitempty"`
	MaskedWord  string        `json:"maskedWord,omitempty"`
	Remaining   int           `json:"remaining"`
	Chat        []ChatMessage `json:"chat"`
	Canvas      []byte        `json:"canvas,omitempty"`
}

// snapshotLocked builds the broadcast view. Caller holds g.mu.
func (g *Game) snapshotLocked() *Snapshot {
	members := g.room.Members()
	players := make([]room.Player, 0, len(members))
	for _, p := range members {
		players = append(players, *p)
	}

	snap := &Snapshot{
		Room: room.RoomInfo{
			Code:       g.room.Code,
			Name:       g.room.Name,
			Private:    g.room.Private,
			Players:    len(players),
			MaxPlayers: g.room.MaxPlayers,
			Status:     g.room.Status(),
		},
		HostID:      g.room.HostID,
		Players:     players,
		Phase:       g.phase,
		Round:       g.round,
		TotalRounds: g.opts.TotalRounds,
		Remaining:   g.remaining,
		Chat:        append([]ChatMessage(nil), g.chat...),
		Canvas:      g.canvas,
	}

	// The drawer is identified by ID, not by index, so a reveal snapshot
	// still names the player who drew even after they left the room.
	if g.drawerID != "" && g.turnPhaseLocked() {
		snap.DrawerID = g.drawerID
	}

	switch g.phase {
	case PhaseDrawing:
		elapsed := time.Duration(g.opts.TurnSeconds-g.remaining) * time.Second
		snap.MaskedWord = MaskWord(g.word, elapsed)
	case PhaseTurnEnd:
		snap.MaskedWord = g.word
	}

	return snap
}

// turnPhaseLocked reports whether the drawer index is meaningful right now.
func (g *Game) turnPhaseLocked() bool {
	switch g.phase {
	case PhaseTurnStart, PhaseWordSelection, PhaseDrawing, PhaseTurnEnd:
		return true
	}
	return false
}

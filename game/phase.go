package game

// Phase is the authoritative game phase of a room. Progression is linear
// per turn and per round:
//
//	Lobby → RoundStart → TurnStart → WordSelection → Drawing → TurnEnd
//	→ (TurnStart | RoundEnd) → (RoundStart | GameOver)
type Phase string

const (
	PhaseLobby         Phase = "ROOM_LOBBY"
	PhaseRoundStart    Phase = "ROUND_START"
	PhaseTurnStart     Phase = "TURN_START"
	PhaseWordSelection Phase = "WORD_SELECTION"
	PhaseDrawing       Phase = "DRAWING"
	PhaseTurnEnd       Phase = "TURN_END"
	PhaseRoundEnd      Phase = "ROUND_END"
	PhaseGameOver      Phase = "GAME_OVER"
)

func (p Phase) String() string {
	return string(p)
}

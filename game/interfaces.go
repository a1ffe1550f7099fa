package game

import (
	"time"

	"github.com/wfunc/drawparty/wordpool"
)

// Scheduler drives delayed phase advancement. One pending task per room;
// arming a new one supersedes whatever was pending. Implemented by
// schedule.RoomScheduler; defined here to keep the game transport- and
// timer-agnostic and swappable in tests.
type Scheduler interface {
	After(code string, delay time.Duration, fn func())
	EverySecond(code string, fn func())
	CancelRoom(code string)
}

// Notifier receives the outputs of the state machine. WordCandidates must
// reach only the drawer's connection. Implementations are called with the
// game lock held and must not call back into the game.
type Notifier interface {
	StateChanged(code string, snap *Snapshot)
	WordCandidates(code, playerID string, words []wordpool.Word)
	TimerTick(code string, remaining int)
	CanvasUpdated(code, drawerID string, payload []byte)
	GameEnded(code string, snap *Snapshot)
}

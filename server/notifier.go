package server

import (
	"encoding/json"

	"github.com/wfunc/drawparty/broadcast"
	"github.com/wfunc/drawparty/game"
	"github.com/wfunc/drawparty/logger"
	"github.com/wfunc/drawparty/network"
	"github.com/wfunc/drawparty/services"
	"github.com/wfunc/drawparty/wordpool"
)

// gameNotifier bridges state machine emissions onto the wire. Word
// candidates go to the drawer's connection only; canvas deltas skip the
// drawer. Called with the game lock held, so it never calls back into the
// game; archiving runs on its own goroutine.
type gameNotifier struct {
	broadcaster broadcast.Broadcaster
	records     *services.RecordService
}

func newGameNotifier(b broadcast.Broadcaster, records *services.RecordService) *gameNotifier {
	return &gameNotifier{broadcaster: b, records: records}
}

func (n *gameNotifier) StateChanged(code string, snap *game.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		logger.Log.Errorf("Failed to marshal snapshot for room %s: %v", code, err)
		return
	}
	n.broadcaster.BroadcastToRoom(code, network.MsgTypeRoomState, data)
}

func (n *gameNotifier) WordCandidates(code, playerID string, words []wordpool.Word) {
	data, err := json.Marshal(words)
	if err != nil {
		logger.Log.Errorf("Failed to marshal candidates for room %s: %v", code, err)
		return
	}
	if err := n.broadcaster.SendToPlayer(code, playerID, network.MsgTypeWordCandidates, data); err != nil {
		logger.Log.Warnf("Could not deliver candidates to drawer %s in room %s: %v", playerID, code, err)
	}
}

func (n *gameNotifier) TimerTick(code string, remaining int) {
	data, _ := json.Marshal(TimerTickPayload{Remaining: remaining})
	n.broadcaster.BroadcastToRoom(code, network.MsgTypeTimerTick, data)
}

func (n *gameNotifier) CanvasUpdated(code, drawerID string, payload []byte) {
	data, err := json.Marshal(CanvasDeltaPayload{DrawerID: drawerID, Canvas: payload})
	if err != nil {
		return
	}
	n.broadcaster.BroadcastExcept(code, drawerID, network.MsgTypeCanvasDelta, data)
}

func (n *gameNotifier) GameEnded(code string, snap *game.Snapshot) {
	data, err := json.Marshal(snap)
	if err == nil {
		n.broadcaster.BroadcastToRoom(code, network.MsgTypeGameEnded, data)
	}
	go n.records.ArchiveGame(snap)
}

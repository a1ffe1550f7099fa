package game

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wfunc/drawparty/room"
	"github.com/wfunc/drawparty/wordpool"
)

// Scoring: first correct guesser earns 500, each later one 100 less,
// floored at 200. The drawer earns a flat 300 when everyone guessed.
const (
	guessBasePoints  = 500
	guessDecayPoints = 100
	guessFloorPoints = 200
	drawerBonus      = 300
)

// Options carries the timing and sizing knobs of one game.
type Options struct {
	TotalRounds       int
	TurnSeconds       int
	CandidatesPerTurn int
	RoundStartDelay   time.Duration
	TurnEndDelay      time.Duration
	RoundEndDelay     time.Duration
	EarlyEndDelay     time.Duration
}

func DefaultOptions() Options {
	return Options{
		TotalRounds:       3,
		TurnSeconds:       90,
		CandidatesPerTurn: 3,
		RoundStartDelay:   3 * time.Second,
		TurnEndDelay:      6 * time.Second,
		RoundEndDelay:     8 * time.Second,
		EarlyEndDelay:     2 * time.Second,
	}
}

// Game is the authoritative per-room state machine. It is the only writer
// of game state; every mutation, whether an intent or a timer callback,
// runs under the game mutex and revalidates the current phase first.
type Game struct {
	mu     sync.Mutex
	room   *room.Room
	words  wordpool.Provider
	sched  Scheduler
	notify Notifier
	opts   Options

	phase       Phase
	round       int
	drawerIndex int
	drawerID    string
	word        string
	candidates  []wordpool.Word
	remaining   int
	chat        []ChatMessage
	canvas      []byte
	used        []string
}

func New(r *room.Room, words wordpool.Provider, sched Scheduler, notify Notifier, opts Options) *Game {
	return &Game{
		room:   r,
		words:  words,
		sched:  sched,
		notify: notify,
		opts:   opts,
		phase:  PhaseLobby,
	}
}

func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Game) Snapshot() *Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

// Start begins a game from the lobby. Host only, two players minimum.
func (g *Game) Start(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseLobby {
		return room.ErrGameInProgress
	}
	if playerID != g.room.HostID {
		return ErrNotHost
	}
	if g.room.MemberCount() < 2 {
		return ErrInsufficientPlayers
	}

	g.room.ResetScores()
	g.room.ResetGuesses()
	g.room.SetStatus(room.StatusPlaying)
	g.used = nil
	g.round = 1
	g.startRoundLocked()
	return nil
}

// startRoundLocked announces the round and arms the delay to the first
// turn.
func (g *Game) startRoundLocked() {
	g.phase = PhaseRoundStart
	g.chat = nil
	g.appendLocked(newSystemMessage(fmt.Sprintf("Round %d of %d", g.round, g.opts.TotalRounds)))
	g.notifyStateLocked()

	g.after(g.opts.RoundStartDelay, PhaseRoundStart, func() {
		g.startTurnLocked(0)
	})
}

// startTurnLocked resets per-turn state, fetches word candidates and moves
// straight into word selection. An out-of-range drawer index means the
// member list shrank underneath us; the round ends instead.
func (g *Game) startTurnLocked(index int) {
	drawer, ok := g.room.MemberAt(index)
	if !ok {
		g.endRoundLocked()
		return
	}

	g.drawerIndex = index
	g.drawerID = drawer.ID
	g.phase = PhaseTurnStart
	g.room.ResetGuesses()
	g.word = ""
	g.canvas = nil
	g.chat = nil
	g.remaining = 0

	g.candidates = g.words.Candidates(g.round, g.opts.CandidatesPerTurn, g.used)
	// Offered candidates count as used right away so future turns steer
	// clear of them even when they go unpicked.
	for _, w := range g.candidates {
		g.used = append(g.used, w.Token)
	}

	g.phase = PhaseWordSelection
	g.appendLocked(newSystemMessage(fmt.Sprintf("%s is choosing a word", drawer.Name)))
	g.notifyStateLocked()
	g.notify.WordCandidates(g.room.Code, drawer.ID, append([]wordpool.Word(nil), g.candidates...))
}

// SelectWord is the drawer's word choice. Anyone else gets ErrNotYourTurn;
// a word outside the offered candidates is rejected, never trusted.
func (g *Game) SelectWord(playerID, word string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseWordSelection {
		return ErrWrongPhase
	}
	if playerID != g.drawerID {
		return ErrNotYourTurn
	}

	chosen := ""
	for _, c := range g.candidates {
		if strings.EqualFold(c.Token, strings.TrimSpace(word)) {
			chosen = c.Token
			break
		}
	}
	if chosen == "" {
		return ErrInvalidWord
	}

	g.word = chosen
	g.candidates = nil
	g.remaining = g.opts.TurnSeconds
	g.phase = PhaseDrawing
	g.notifyStateLocked()

	g.sched.EverySecond(g.room.Code, g.tick)
	return nil
}

// tick is the per-second drawing countdown.
func (g *Game) tick() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseDrawing {
		return
	}
	g.remaining--
	g.notify.TimerTick(g.room.Code, g.remaining)
	if g.remaining <= 0 {
		g.endTurnLocked()
	}
}

// Draw records a canvas update. Only the current drawer may draw; anyone
// else is silently ignored.
func (g *Game) Draw(playerID string, payload []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseDrawing {
		return
	}
	if playerID != g.drawerID {
		return
	}

	g.canvas = payload
	g.notify.CanvasUpdated(g.room.Code, playerID, payload)
}

// Message arbitrates chat input. During drawing, text from a member who
// has not yet guessed is evaluated as a guess; the drawer and members who
// already guessed chat freely. Outside the drawing phase everything
// degrades to plain chat, keeping out-of-order client delivery harmless.
func (g *Game) Message(playerID, text string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sender, ok := g.room.Member(playerID)
	if !ok {
		return
	}

	if g.phase != PhaseDrawing {
		g.appendLocked(newChatMessage(sender.ID, sender.Name, text))
		g.notifyStateLocked()
		return
	}

	if playerID == g.drawerID || g.room.HasGuessed(playerID) {
		g.appendLocked(newChatMessage(sender.ID, sender.Name, text))
		g.notifyStateLocked()
		return
	}

	if !strings.EqualFold(strings.TrimSpace(text), g.word) {
		// Wrong guess, shown as a normal message.
		g.appendLocked(newChatMessage(sender.ID, sender.Name, text))
		g.notifyStateLocked()
		return
	}

	g.scoreCorrectGuessLocked(sender)
}

// scoreCorrectGuessLocked pays out by rank among this turn's correct
// guessers and triggers the early turn end once everyone has guessed.
// The drawer is excluded by ID so the math stays right even after the
// drawer has left the room.
func (g *Game) scoreCorrectGuessLocked(sender *room.Player) {
	rank := g.room.CountGuessed(g.drawerID)
	points := guessBasePoints - guessDecayPoints*rank
	if points < guessFloorPoints {
		points = guessFloorPoints
	}

	g.room.MarkGuessed(sender.ID)
	g.room.AddScore(sender.ID, points)

	msg := newSystemMessage(fmt.Sprintf("%s guessed the word! (+%d)", sender.Name, points))
	msg.PlayerID = sender.ID
	msg.IsCorrectGuess = true
	g.appendLocked(msg)

	if g.room.AllGuessed(g.drawerID) {
		// A drawer who left mid-turn forfeits the bonus.
		if drawer, ok := g.room.Member(g.drawerID); ok {
			g.room.AddScore(drawer.ID, drawerBonus)
			g.appendLocked(newSystemMessage(fmt.Sprintf("Everyone guessed the word! %s +%d", drawer.Name, drawerBonus)))
		}
		g.after(g.opts.EarlyEndDelay, PhaseDrawing, g.endTurnLocked)
	}

	g.notifyStateLocked()
}

// endTurnLocked is the single convergence point for the timeout and the
// all-guessed paths. The phase check makes a second invocation a no-op.
func (g *Game) endTurnLocked() {
	if g.phase != PhaseDrawing {
		return
	}

	g.phase = PhaseTurnEnd
	g.appendLocked(newSystemMessage(fmt.Sprintf("The word was %q", g.word)))
	g.notifyStateLocked()

	g.after(g.opts.TurnEndDelay, PhaseTurnEnd, func() {
		next := g.drawerIndex + 1
		if next >= g.room.MemberCount() {
			g.endRoundLocked()
			return
		}
		g.startTurnLocked(next)
	})
}

func (g *Game) endRoundLocked() {
	if g.round >= g.opts.TotalRounds {
		g.gameOverLocked()
		return
	}

	g.phase = PhaseRoundEnd
	g.appendLocked(newSystemMessage(fmt.Sprintf("Round %d finished", g.round)))
	g.notifyStateLocked()

	g.after(g.opts.RoundEndDelay, PhaseRoundEnd, func() {
		g.round++
		g.startRoundLocked()
	})
}

func (g *Game) gameOverLocked() {
	g.phase = PhaseGameOver
	g.sched.CancelRoom(g.room.Code)
	g.appendLocked(newSystemMessage("Game over!"))
	snap := g.snapshotLocked()
	g.notify.StateChanged(g.room.Code, snap)
	g.notify.GameEnded(g.room.Code, snap)
}

// Restart reinitializes game state for the existing room and membership.
// Any member may request it.
func (g *Game) Restart(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.room.IsMember(playerID) {
		return ErrNotYourTurn
	}

	g.sched.CancelRoom(g.room.Code)
	g.phase = PhaseLobby
	g.round = 0
	g.drawerIndex = 0
	g.drawerID = ""
	g.word = ""
	g.candidates = nil
	g.remaining = 0
	g.chat = nil
	g.canvas = nil
	g.used = nil
	g.room.ResetScores()
	g.room.ResetGuesses()
	g.room.SetStatus(room.StatusWaiting)
	g.notifyStateLocked()
	return nil
}

// SystemMessage appends an announcement (room creation, joins) to the log.
func (g *Game) SystemMessage(text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.appendLocked(newSystemMessage(text))
	g.notifyStateLocked()
}

// MemberLeft announces a departure and re-evaluates the turn: the
// departed member may have been the last one still guessing, leaving
// nothing for the turn clock to wait on.
func (g *Game) MemberLeft(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.appendLocked(newSystemMessage(fmt.Sprintf("%s left the room", name)))
	if g.phase == PhaseDrawing && g.room.AllGuessed(g.drawerID) {
		g.after(g.opts.EarlyEndDelay, PhaseDrawing, g.endTurnLocked)
	}
	g.notifyStateLocked()
}

// after arms a phase-guarded delayed transition. The callback re-checks
// the expected phase under the lock: a stale timer racing a transition
// that already happened by another path is a no-op.
func (g *Game) after(delay time.Duration, want Phase, fn func()) {
	g.sched.After(g.room.Code, delay, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.phase != want {
			return
		}
		fn()
	})
}

func (g *Game) appendLocked(msg ChatMessage) {
	g.chat = append(g.chat, msg)
}

func (g *Game) notifyStateLocked() {
	g.notify.StateChanged(g.room.Code, g.snapshotLocked())
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/rpc"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wfunc/drawparty/broadcast"
	"github.com/wfunc/drawparty/config"
	"github.com/wfunc/drawparty/game"
	"github.com/wfunc/drawparty/logger"
	"github.com/wfunc/drawparty/monitor"
	"github.com/wfunc/drawparty/network"
	"github.com/wfunc/drawparty/persistence"
	"github.com/wfunc/drawparty/room"
	drawparty_rpc "github.com/wfunc/drawparty/rpc"
	"github.com/wfunc/drawparty/schedule"
	"github.com/wfunc/drawparty/services"
	"github.com/wfunc/drawparty/session"
	"github.com/wfunc/drawparty/timer"
	"github.com/wfunc/drawparty/wordpool"
)

// GameServer is the session/transport gateway: it owns the connection ↔
// player ↔ room mapping, turns frames into state machine operations and
// pushes the resulting broadcasts back out.
type GameServer struct {
	addr     string
	upgrader websocket.Upgrader

	registry *room.Registry
	games    *game.Manager
	sessions *session.Manager

	broadcaster broadcast.Broadcaster
	notifier    game.Notifier
	timers      *timer.Manager
	sched       *schedule.RoomScheduler
	words       wordpool.Provider
	records     *services.RecordService
	monitor     *monitor.Monitor
	rpcServer   *drawparty_rpc.Server

	gameOpts     game.Options
	shutdownChan chan struct{}
}

func NewGameServer(cfg *config.Config, db persistence.Database) *GameServer {
	timers := timer.NewManager()

	s := &GameServer{
		addr:         cfg.Server.HTTPAddress,
		registry:     room.NewRegistry(cfg.Game.MaxPlayers, time.Now().UnixNano()),
		games:        game.NewManager(),
		sessions:     session.NewManager(),
		timers:       timers,
		sched:        schedule.NewRoomScheduler(timers),
		words:        wordpool.NewStaticPool(time.Now().UnixNano()),
		records:      services.NewRecordService(db),
		monitor:      monitor.NewMonitor("drawparty"),
		gameOpts:     gameOptions(cfg.Game),
		shutdownChan: make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.broadcaster = broadcast.NewRoomBroadcaster(s.sessions)
	s.notifier = newGameNotifier(s.broadcaster, s.records)

	rpcServer, err := drawparty_rpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer
	rpc.Register(drawparty_rpc.NewAdminService(s.registry, s.sessions, s.records))

	s.monitor.StartServer(cfg.Server.MetricsAddress)

	return s
}

func gameOptions(cfg config.GameConfig) game.Options {
	opts := game.DefaultOptions()
	if cfg.TotalRounds > 0 {
		opts.TotalRounds = cfg.TotalRounds
	}
	if cfg.TurnSeconds > 0 {
		opts.TurnSeconds = cfg.TurnSeconds
	}
	if cfg.CandidatesPerTurn > 0 {
		opts.CandidatesPerTurn = cfg.CandidatesPerTurn
	}
	if cfg.RoundStartDelay > 0 {
		opts.RoundStartDelay = time.Duration(cfg.RoundStartDelay) * time.Second
	}
	if cfg.TurnEndDelay > 0 {
		opts.TurnEndDelay = time.Duration(cfg.TurnEndDelay) * time.Second
	}
	if cfg.RoundEndDelay > 0 {
		opts.RoundEndDelay = time.Duration(cfg.RoundEndDelay) * time.Second
	}
	if cfg.EarlyEndDelay > 0 {
		opts.EarlyEndDelay = time.Duration(cfg.EarlyEndDelay) * time.Second
	}
	return opts
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/rooms", s.handleRoomDirectory)
	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
	s.timers.Stop()
}

// handleRoomDirectory serves the public room listing. Private rooms are
// omitted entirely; they are reachable only by direct code.
func (s *GameServer) handleRoomDirectory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListRoomsResponse{Rooms: s.registry.ListPublic()})
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessions.Add(sess)
	s.monitor.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		// Ungraceful disconnects run the same removal path as an explicit
		// leave, exactly once per connection.
		s.leaveRoom(sess)
		s.sessions.Remove(sess.GetID())
		s.monitor.DecOnlinePlayers()
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	start := time.Now()
	s.monitor.IncIntentsReceived()

	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.Touch()
	case network.MsgTypeCreateRoom:
		s.handleCreateRoom(sess, packet)
	case network.MsgTypeJoinRoom:
		s.handleJoinRoom(sess, packet)
	case network.MsgTypeLeaveRoom:
		s.leaveRoom(sess)
	case network.MsgTypeListRooms:
		s.handleListRooms(sess)
	case network.MsgTypeStartGame:
		s.handleStartGame(sess)
	case network.MsgTypeSelectWord:
		s.handleSelectWord(sess, packet)
	case network.MsgTypeDrawUpdate:
		s.handleDrawUpdate(sess, packet)
	case network.MsgTypeGuess, network.MsgTypeChat:
		s.handleText(sess, packet)
	case network.MsgTypeRestartGame:
		s.handleRestartGame(sess)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}

	s.monitor.ObserveIntentLatency(time.Since(start))
}

func (s *GameServer) handleCreateRoom(sess *session.Session, packet *network.Packet) {
	var req CreateRoomRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, errInvalidPayload)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.sendError(sess, fmt.Errorf("%w: room name must not be empty", errInvalidPayload))
		return
	}

	// Creating a room implies leaving the current one.
	s.leaveRoom(sess)

	sess.SetIdentity(req.PlayerName, req.Avatar)
	r := s.registry.CreateRoom(strings.TrimSpace(req.Name), req.Private, req.Password)
	g := game.New(r, s.words, s.sched, s.notifier, s.gameOpts)
	s.games.Add(r.Code, g)

	player := &room.Player{ID: sess.PlayerID, Name: req.PlayerName, Avatar: req.Avatar}
	if _, err := s.registry.AddPlayer(r.Code, player); err != nil {
		s.sendError(sess, err)
		return
	}
	sess.SetRoom(r.Code)
	s.monitor.SetActiveRooms(s.registry.Count())

	logger.Log.Infof("Session %s created room %s", sess.GetID(), r.Code)

	data, _ := json.Marshal(CreateRoomResponse{Code: r.Code})
	sess.Send(network.MsgTypeCreateRoom, data)
	g.SystemMessage(fmt.Sprintf("%s created the room", req.PlayerName))
}

func (s *GameServer) handleJoinRoom(sess *session.Session, packet *network.Packet) {
	var req JoinRoomRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, errInvalidPayload)
		return
	}

	if !s.registry.VerifyPassword(req.Code, req.Password) {
		if _, exists := s.registry.Get(req.Code); !exists {
			s.sendError(sess, room.ErrRoomNotFound)
			return
		}
		s.sendError(sess, room.ErrIncorrectPassword)
		return
	}

	s.leaveRoom(sess)

	sess.SetIdentity(req.PlayerName, req.Avatar)
	player := &room.Player{ID: sess.PlayerID, Name: req.PlayerName, Avatar: req.Avatar}
	r, err := s.registry.AddPlayer(req.Code, player)
	if err != nil {
		s.sendError(sess, err)
		return
	}
	sess.SetRoom(r.Code)

	logger.Log.Infof("Session %s joined room %s", sess.GetID(), r.Code)

	if g, exists := s.games.Get(r.Code); exists {
		g.SystemMessage(fmt.Sprintf("%s joined the room", req.PlayerName))
	}
}

// leaveRoom tears the session out of its room, if any. Safe to call more
// than once; only the first call acts.
func (s *GameServer) leaveRoom(sess *session.Session) {
	code := sess.Room()
	if code == "" {
		return
	}
	sess.SetRoom("")

	_, deleted, err := s.registry.RemovePlayer(code, sess.PlayerID)
	if err != nil {
		return
	}
	if deleted {
		s.sched.CancelRoom(code)
		s.games.Remove(code)
		s.monitor.SetActiveRooms(s.registry.Count())
		logger.Log.Infof("Room %s deleted after last member left", code)
		return
	}
	if g, exists := s.games.Get(code); exists {
		g.MemberLeft(sess.Name)
	}
}

func (s *GameServer) handleListRooms(sess *session.Session) {
	data, _ := json.Marshal(ListRoomsResponse{Rooms: s.registry.ListPublic()})
	sess.Send(network.MsgTypeListRooms, data)
}

func (s *GameServer) handleStartGame(sess *session.Session) {
	g, exists := s.sessionGame(sess)
	if !exists {
		s.sendError(sess, room.ErrRoomNotFound)
		return
	}
	if err := g.Start(sess.PlayerID); err != nil {
		s.sendError(sess, err)
		return
	}
	s.monitor.IncGamesStarted()
}

func (s *GameServer) handleSelectWord(sess *session.Session, packet *network.Packet) {
	var req SelectWordRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, errInvalidPayload)
		return
	}
	g, exists := s.sessionGame(sess)
	if !exists {
		s.sendError(sess, room.ErrRoomNotFound)
		return
	}
	if err := g.SelectWord(sess.PlayerID, req.Word); err != nil {
		s.sendError(sess, err)
	}
}

func (s *GameServer) handleDrawUpdate(sess *session.Session, packet *network.Packet) {
	var req DrawRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		return
	}
	if g, exists := s.sessionGame(sess); exists {
		g.Draw(sess.PlayerID, req.Canvas)
	}
}

// handleText covers both the guess and chat intents; the state machine
// arbitrates which one a message actually is.
func (s *GameServer) handleText(sess *session.Session, packet *network.Packet) {
	var req TextRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		return
	}
	if g, exists := s.sessionGame(sess); exists {
		if packet.MsgID == network.MsgTypeGuess {
			s.monitor.IncGuessesEvaluated()
		}
		g.Message(sess.PlayerID, req.Text)
	}
}

func (s *GameServer) handleRestartGame(sess *session.Session) {
	g, exists := s.sessionGame(sess)
	if !exists {
		s.sendError(sess, room.ErrRoomNotFound)
		return
	}
	if err := g.Restart(sess.PlayerID); err != nil {
		s.sendError(sess, err)
	}
}

func (s *GameServer) sessionGame(sess *session.Session) (*game.Game, bool) {
	code := sess.Room()
	if code == "" {
		return nil, false
	}
	return s.games.Get(code)
}

func (s *GameServer) sendError(sess *session.Session, err error) {
	data, _ := json.Marshal(ErrorResponse{Code: errorCode(err), Message: err.Error()})
	sess.Send(network.MsgTypeError, data)
}

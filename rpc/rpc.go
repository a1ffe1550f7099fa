package rpc

import (
	"net"
	"net/rpc"

	"github.com/wfunc/drawparty/logger"
	"github.com/wfunc/drawparty/models"
	"github.com/wfunc/drawparty/room"
	"github.com/wfunc/drawparty/services"
	"github.com/wfunc/drawparty/session"
)

// Server manages the RPC listener for the admin surface.
type Server struct {
	listener net.Listener
	address  string
}

func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// AdminService exposes operational introspection over net/rpc: live room
// listing, coarse server stats and the game archive.
type AdminService struct {
	rooms    *room.Registry
	sessions *session.Manager
	records  *services.RecordService
}

func NewAdminService(rooms *room.Registry, sessions *session.Manager, records *services.RecordService) *AdminService {
	return &AdminService{rooms: rooms, sessions: sessions, records: records}
}

type ListRoomsArgs struct{}

type ListRoomsReply struct {
	Rooms []room.RoomInfo
}

func (a *AdminService) ListRooms(args *ListRoomsArgs, reply *ListRoomsReply) error {
	reply.Rooms = a.rooms.ListPublic()
	return nil
}

type StatsArgs struct{}

type StatsReply struct {
	Rooms            int
	Sessions         int
	ArchivingEnabled bool
}

func (a *AdminService) Stats(args *StatsArgs, reply *StatsReply) error {
	reply.Rooms = a.rooms.Count()
	reply.Sessions = a.sessions.Count()
	reply.ArchivingEnabled = a.records.Enabled()
	return nil
}

type RecentGamesArgs struct {
	Limit int
}

type RecentGamesReply struct {
	Games []models.GameRecord
}

func (a *AdminService) RecentGames(args *RecentGamesArgs, reply *RecentGamesReply) error {
	limit := args.Limit
	if limit <= 0 {
		limit = 20
	}
	games, err := a.records.RecentGames(limit)
	if err != nil {
		return err
	}
	reply.Games = games
	return nil
}

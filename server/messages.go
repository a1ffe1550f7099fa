package server

import (
	"errors"

	"github.com/wfunc/drawparty/game"
	"github.com/wfunc/drawparty/room"
)

// Client -> server payloads. Anything outside these schemas is rejected
// with a structured error, never a crash.

type CreateRoomRequest struct {
	Name       string `json:"name"`
	Private    bool   `json:"private"`
	Password   string `json:"password,omitempty"`
	PlayerName string `json:"playerName"`
	Avatar     string `json:"avatar,omitempty"`
}

type JoinRoomRequest struct {
	Code       string `json:"code"`
	Password   string `json:"password,omitempty"`
	PlayerName string `json:"playerName"`
	Avatar     string `json:"avatar,omitempty"`
}

type SelectWordRequest struct {
	Word string `json:"word"`
}

type TextRequest struct {
	Text string `json:"text"`
}

type DrawRequest struct {
	Canvas []byte `json:"canvas"`
}

// Server -> client payloads.

type CreateRoomResponse struct {
	Code string `json:"code"`
}

type ListRoomsResponse struct {
	Rooms []room.RoomInfo `json:"rooms"`
}

type TimerTickPayload struct {
	Remaining int `json:"remaining"`
}

type CanvasDeltaPayload struct {
	DrawerID string `json:"drawerId"`
	Canvas   []byte `json:"canvas"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var errInvalidPayload = errors.New("malformed intent payload")

// errorCode maps domain errors onto stable wire codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return "ROOM_NOT_FOUND"
	case errors.Is(err, room.ErrRoomFull):
		return "ROOM_FULL"
	case errors.Is(err, room.ErrGameInProgress):
		return "GAME_IN_PROGRESS"
	case errors.Is(err, room.ErrIncorrectPassword):
		return "INCORRECT_PASSWORD"
	case errors.Is(err, game.ErrNotHost):
		return "NOT_HOST"
	case errors.Is(err, game.ErrInsufficientPlayers):
		return "INSUFFICIENT_PLAYERS"
	case errors.Is(err, game.ErrNotYourTurn):
		return "NOT_YOUR_TURN"
	case errors.Is(err, game.ErrInvalidWord):
		return "INVALID_WORD"
	case errors.Is(err, game.ErrWrongPhase):
		return "WRONG_PHASE"
	case errors.Is(err, errInvalidPayload):
		return "INVALID_PAYLOAD"
	default:
		return "INTERNAL"
	}
}

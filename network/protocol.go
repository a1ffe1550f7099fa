package network

// Wire protocol message IDs. Every frame is 2 bytes of message ID, 2
// bytes of payload length, then a JSON payload.
const (
	MsgTypeHeartbeat = 1

	// Client -> server intents
	MsgTypeCreateRoom  = 101
	MsgTypeJoinRoom    = 102
	MsgTypeLeaveRoom   = 103
	MsgTypeListRooms   = 104
	MsgTypeStartGame   = 201
	MsgTypeSelectWord  = 202
	MsgTypeDrawUpdate  = 203
	MsgTypeGuess       = 204
	MsgTypeChat        = 205
	MsgTypeRestartGame = 206

	// Server -> client broadcasts
	MsgTypeRoomState      = 301
	MsgTypeWordCandidates = 302
	MsgTypeTimerTick      = 303
	MsgTypeCanvasDelta    = 304
	MsgTypeGameEnded      = 305

	MsgTypeError = 400
)

package game

import "errors"

var (
	ErrNotHost             = errors.New("only the host can start the game")
	ErrInsufficientPlayers = errors.New("at least two players are required")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrInvalidWord         = errors.New("word is not among the offered candidates")
	ErrWrongPhase          = errors.New("operation not valid in the current phase")
)

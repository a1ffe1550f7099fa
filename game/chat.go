package game

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one entry of the per-game chat/event log. A message with
// an empty PlayerID originates from the system.
type ChatMessage struct {
	ID             string    `json:"id"`
	PlayerID       string    `json:"playerId,omitempty"`
	PlayerName     string    `json:"playerName,omitempty"`
	Text           string    `json:"text"`
	IsSystem       bool      `json:"isSystem"`
	IsCorrectGuess bool      `json:"isCorrectGuess"`
	Timestamp      time.Time `json:"timestamp"`
}

func newChatMessage(playerID, playerName, text string) ChatMessage {
	return ChatMessage{
		ID:         uuid.New().String(),
		PlayerID:   playerID,
		PlayerName: playerName,
		Text:       text,
		Timestamp:  time.Now(),
	}
}

func newSystemMessage(text string) ChatMessage {
	msg := newChatMessage("", "", text)
	msg.IsSystem = true
	return msg
}

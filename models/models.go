// models/models.go
package models

import (
	"time"
)

// ScoreEntry is one row of a final scoreboard, ordered by rank.
type ScoreEntry struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"`
}

// GameRecord is the archive entry written when a game reaches its end.
// The live server never reads these back; they feed the admin surface and
// offline stats only.
type GameRecord struct {
	RoomCode  string       `json:"room_code"`
	RoomName  string       `json:"room_name"`
	Rounds    int          `json:"rounds"`
	Scores    []ScoreEntry `json:"scores"`
	Winner    string       `json:"winner"`
	CreatedAt time.Time    `json:"created_at"`
}

// PlayerTotals aggregates a display name's results across games.
type PlayerTotals struct {
	Name        string `json:"name"`
	GamesPlayed int    `json:"games_played"`
	GamesWon    int    `json:"games_won"`
	TotalPoints int    `json:"total_points"`
}

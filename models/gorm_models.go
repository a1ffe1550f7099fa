// models/gorm_models.go
package models

import (
	"gorm.io/gorm"
)

// GormGameRecord mirrors GameRecord for the gorm-backed store.
type GormGameRecord struct {
	gorm.Model
	RoomCode string       `gorm:"index;not null"`
	RoomName string       `gorm:"not null"`
	Rounds   int          `gorm:"default:0"`
	Scores   []ScoreEntry `gorm:"type:jsonb;serializer:json"`
	Winner   string       `gorm:"index"`
}

// GormPlayerTotals keys aggregate results by display name. Names are the
// only identity that survives sessions, so totals are best-effort.
type GormPlayerTotals struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null"`
	GamesPlayed int    `gorm:"default:0"`
	GamesWon    int    `gorm:"default:0"`
	TotalPoints int    `gorm:"default:0"`
}

// persistence/interface.go
package persistence

import (
	"fmt"

	"github.com/wfunc/drawparty/models"
)

// Database is the archive store behind the record service. Both the gorm
// and the raw database/sql implementations satisfy it.
type Database interface {
	SaveGameRecord(rec *models.GameRecord) error
	RecentGameRecords(limit int) ([]models.GameRecord, error)
	UpdatePlayerTotals(name string, points int, won bool) error
	TopPlayers(limit int) ([]models.PlayerTotals, error)
	Close() error
}

var ErrRecordNotFound = fmt.Errorf("record not found")

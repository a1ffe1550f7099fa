// persistence/gorm_postgresql.go
package persistence

import (
	"errors"
	"fmt"

	"github.com/wfunc/drawparty/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPostgreSQL is the gorm-backed archive store.
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.GormGameRecord{}, &models.GormPlayerTotals{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

func (g *GormPostgreSQL) SaveGameRecord(rec *models.GameRecord) error {
	row := models.GormGameRecord{
		RoomCode: rec.RoomCode,
		RoomName: rec.RoomName,
		Rounds:   rec.Rounds,
		Scores:   rec.Scores,
		Winner:   rec.Winner,
	}
	return g.db.Create(&row).Error
}

func (g *GormPostgreSQL) RecentGameRecords(limit int) ([]models.GameRecord, error) {
	var rows []models.GormGameRecord
	if err := g.db.Order("created_at desc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.GameRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.GameRecord{
			RoomCode:  row.RoomCode,
			RoomName:  row.RoomName,
			Rounds:    row.Rounds,
			Scores:    row.Scores,
			Winner:    row.Winner,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

// UpdatePlayerTotals upserts the aggregate row for the name inside one
// transaction.
func (g *GormPostgreSQL) UpdatePlayerTotals(name string, points int, won bool) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		var totals models.GormPlayerTotals
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", name).First(&totals).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			totals = models.GormPlayerTotals{Name: name}
		} else if err != nil {
			return err
		}

		totals.GamesPlayed++
		totals.TotalPoints += points
		if won {
			totals.GamesWon++
		}
		return tx.Save(&totals).Error
	})
}

func (g *GormPostgreSQL) TopPlayers(limit int) ([]models.PlayerTotals, error) {
	var rows []models.GormPlayerTotals
	if err := g.db.Order("total_points desc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.PlayerTotals, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.PlayerTotals{
			Name:        row.Name,
			GamesPlayed: row.GamesPlayed,
			GamesWon:    row.GamesWon,
			TotalPoints: row.TotalPoints,
		})
	}
	return out, nil
}

func (g *GormPostgreSQL) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// services/record_service.go
package services

import (
	"sort"

	"github.com/wfunc/drawparty/game"
	"github.com/wfunc/drawparty/logger"
	"github.com/wfunc/drawparty/models"
	"github.com/wfunc/drawparty/persistence"
)

// RecordService archives finished games. It is strictly best-effort: a
// nil database disables archiving entirely and storage errors are logged
// and swallowed, never surfaced to the game loop.
type RecordService struct {
	db persistence.Database
}

func NewRecordService(db persistence.Database) *RecordService {
	return &RecordService{db: db}
}

func (s *RecordService) Enabled() bool {
	return s.db != nil
}

// ArchiveGame writes the final scoreboard of a finished game.
func (s *RecordService) ArchiveGame(snap *game.Snapshot) {
	if s.db == nil || snap == nil {
		return
	}

	scores := make([]models.ScoreEntry, 0, len(snap.Players))
	for _, p := range snap.Players {
		scores = append(scores, models.ScoreEntry{
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    p.Score,
		})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}

	rec := &models.GameRecord{
		RoomCode: snap.Room.Code,
		RoomName: snap.Room.Name,
		Rounds:   snap.TotalRounds,
		Scores:   scores,
	}
	if len(scores) > 0 {
		rec.Winner = scores[0].Name
	}

	if err := s.db.SaveGameRecord(rec); err != nil {
		logger.Log.Errorf("Failed to archive game for room %s: %v", snap.Room.Code, err)
		return
	}

	for _, entry := range scores {
		won := entry.Rank == 1
		if err := s.db.UpdatePlayerTotals(entry.Name, entry.Score, won); err != nil {
			logger.Log.Errorf("Failed to update totals for %s: %v", entry.Name, err)
		}
	}
}

func (s *RecordService) RecentGames(limit int) ([]models.GameRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	return s.db.RecentGameRecords(limit)
}

func (s *RecordService) TopPlayers(limit int) ([]models.PlayerTotals, error) {
	if s.db == nil {
		return nil, nil
	}
	return s.db.TopPlayers(limit)
}

// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wfunc/drawparty/models"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgreSQL is the raw database/sql archive store, for deployments that
// prefer not to carry the ORM.
type PostgreSQL struct {
	db *sql.DB
}

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS game_records (
            id SERIAL PRIMARY KEY,
            room_code VARCHAR(16) NOT NULL,
            room_name VARCHAR(255) NOT NULL,
            rounds INT NOT NULL DEFAULT 0,
            scores JSONB NOT NULL,
            winner VARCHAR(255),
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS player_totals (
            id SERIAL PRIMARY KEY,
            name VARCHAR(255) UNIQUE NOT NULL,
            games_played INT NOT NULL DEFAULT 0,
            games_won INT NOT NULL DEFAULT 0,
            total_points INT NOT NULL DEFAULT 0,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_game_records_room_code ON game_records(room_code);
        CREATE INDEX IF NOT EXISTS idx_game_records_created_at ON game_records(created_at);
        CREATE INDEX IF NOT EXISTS idx_player_totals_points ON player_totals(total_points);
    `)

	return err
}

func (p *PostgreSQL) SaveGameRecord(rec *models.GameRecord) error {
	scores, err := json.Marshal(rec.Scores)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = p.db.ExecContext(ctx, `
        INSERT INTO game_records (room_code, room_name, rounds, scores, winner)
        VALUES ($1, $2, $3, $4, $5)
    `, rec.RoomCode, rec.RoomName, rec.Rounds, scores, rec.Winner)
	return err
}

func (p *PostgreSQL) RecentGameRecords(limit int) ([]models.GameRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := p.db.QueryContext(ctx, `
        SELECT room_code, room_name, rounds, scores, winner, created_at
        FROM game_records ORDER BY created_at DESC LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.GameRecord
	for rows.Next() {
		var rec models.GameRecord
		var scores []byte
		if err := rows.Scan(&rec.RoomCode, &rec.RoomName, &rec.Rounds, &scores, &rec.Winner, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(scores, &rec.Scores); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (p *PostgreSQL) UpdatePlayerTotals(name string, points int, won bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wonInc := 0
	if won {
		wonInc = 1
	}

	_, err := p.db.ExecContext(ctx, `
        INSERT INTO player_totals (name, games_played, games_won, total_points)
        VALUES ($1, 1, $2, $3)
        ON CONFLICT (name) DO UPDATE SET
            games_played = player_totals.games_played + 1,
            games_won = player_totals.games_won + $2,
            total_points = player_totals.total_points + $3,
            updated_at = CURRENT_TIMESTAMP
    `, name, wonInc, points)
	return err
}

func (p *PostgreSQL) TopPlayers(limit int) ([]models.PlayerTotals, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := p.db.QueryContext(ctx, `
        SELECT name, games_played, games_won, total_points
        FROM player_totals ORDER BY total_points DESC LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PlayerTotals
	for rows.Next() {
		var t models.PlayerTotals
		if err := rows.Scan(&t.Name, &t.GamesPlayed, &t.GamesWon, &t.TotalPoints); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/benbeisheim/shashki-backend/internal/model"
	_ "github.com/lib/pq"
)

// GameResult is the archived summary of a finished game.
type GameResult struct {
	GameID    string
	Outcome   model.Outcome
	Tally     model.CaptureTally
	Plies     int
	StartedAt time.Time
	EndedAt   time.Time
}

const createResultsTable = `CREATE TABLE IF NOT EXISTS shashki_games (
    game_id        TEXT PRIMARY KEY,
    outcome        TEXT NOT NULL,
    white_captures INTEGER NOT NULL,
    black_captures INTEGER NOT NULL,
    plies          INTEGER NOT NULL,
    started_at     TIMESTAMPTZ NOT NULL,
    ended_at       TIMESTAMPTZ NOT NULL,
    duration_ms    BIGINT NOT NULL
)`

type ResultRepository struct {
	db *sql.DB
}

func NewResultRepository(databaseURL string) (*ResultRepository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, createResultsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create results table: %w", err)
	}
	return &ResultRepository{db: db}, nil
}

func (r *ResultRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveResult upserts a finished game.
func (r *ResultRepository) SaveResult(ctx context.Context, res GameResult) error {
	if r == nil || r.db == nil {
		return nil
	}
	duration := res.EndedAt.Sub(res.StartedAt).Milliseconds()
	if duration < 0 {
		duration = 0
	}
	q := `INSERT INTO shashki_games (
        game_id, outcome, white_captures, black_captures, plies,
        started_at, ended_at, duration_ms
      ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
      ON CONFLICT (game_id) DO UPDATE SET
        outcome=EXCLUDED.outcome,
        white_captures=EXCLUDED.white_captures,
        black_captures=EXCLUDED.black_captures,
        plies=EXCLUDED.plies,
        started_at=EXCLUDED.started_at,
        ended_at=EXCLUDED.ended_at,
        duration_ms=EXCLUDED.duration_ms`
	_, err := r.db.ExecContext(ctx, q,
		res.GameID, string(res.Outcome),
		res.Tally.White, res.Tally.Black, res.Plies,
		res.StartedAt, res.EndedAt, duration,
	)
	return err
}

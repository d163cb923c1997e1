package history

import (
	"context"
	"database/sql"
	"time"
)

// Game is one row of the games history table. Timestamps are RFC3339 in
// UTC; FinishedAt is empty while the game is still running.
type Game struct {
	ID         string `json:"id"`
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty,omitempty"`
	Players    string `json:"players,omitempty"`
	Status     string `json:"status"`
	Attempts   int    `json:"attempts"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

// Store records started and finished games. Writes are best effort; the
// caller logs and drops errors rather than failing gameplay.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Insert(ctx context.Context, id, mode, difficulty, players string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games(id, mode, difficulty, players, status, attempts, started_at)
		 VALUES(?,?,?,?,?,0,?)`,
		id, mode, difficulty, players, "playing", time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) Finish(ctx context.Context, id, status string, attempts int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE games SET status=?, attempts=?, finished_at=? WHERE id=?`,
		status, attempts, time.Now().UTC().Format(time.RFC3339), id,
	)
	return err
}

func (s *Store) Recent(ctx context.Context, limit int) ([]Game, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, difficulty, players, status, attempts, started_at, COALESCE(finished_at,'')
		 FROM games ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Game{}
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.ID, &g.Mode, &g.Difficulty, &g.Players, &g.Status, &g.Attempts, &g.StartedAt, &g.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

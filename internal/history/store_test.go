package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE games (
  id          TEXT PRIMARY KEY,
  mode        TEXT NOT NULL,
  difficulty  TEXT NOT NULL DEFAULT '',
  players     TEXT NOT NULL DEFAULT '',
  status      TEXT NOT NULL DEFAULT 'playing',
  attempts    INTEGER NOT NULL DEFAULT 0,
  started_at  TEXT NOT NULL,
  finished_at TEXT
);`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return NewStore(db)
}

func TestInsertAndFinish(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, "g1", "single", "easy", ""))
	require.NoError(t, s.Insert(ctx, "g2", "multi", "", "alice vs bob"))

	games, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, games, 2)
	for _, g := range games {
		require.Equal(t, "playing", g.Status)
		require.Zero(t, g.Attempts)
		require.NotEmpty(t, g.StartedAt)
		require.Empty(t, g.FinishedAt)
	}

	require.NoError(t, s.Finish(ctx, "g1", "win", 4))

	games, err = s.Recent(ctx, 10)
	require.NoError(t, err)
	byID := map[string]Game{}
	for _, g := range games {
		byID[g.ID] = g
	}
	require.Equal(t, "win", byID["g1"].Status)
	require.Equal(t, 4, byID["g1"].Attempts)
	require.NotEmpty(t, byID["g1"].FinishedAt)
	require.Equal(t, "playing", byID["g2"].Status)
}

func TestRecentHonorsTheLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.Insert(ctx, id, "single", "medium", ""))
	}
	games, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, games, 2)
}

func TestFinishUnknownGameIsANoop(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Finish(context.Background(), "missing", "lose", 6))
	games, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, games)
}

package scores

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"guessmaster/internal/game"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	return fs, dir
}

func TestNewFileStoreSeedsEmptyTables(t *testing.T) {
	_, dir := newTestStore(t)
	for _, name := range []string{"singleplayer_scores.json", "multiplayer_scores.json"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		require.JSONEq(t, "{}", string(data))
	}
}

func TestSinglePutKeepsTheMinimum(t *testing.T) {
	fs, _ := newTestStore(t)

	require.NoError(t, fs.Put(game.ModeSingle, "easy", 5))
	require.NoError(t, fs.Put(game.ModeSingle, "easy", 7)) // worse, ignored
	require.Equal(t, map[string]int{"easy": 5}, fs.Load(game.ModeSingle))

	require.NoError(t, fs.Put(game.ModeSingle, "easy", 3)) // better, kept
	require.Equal(t, map[string]int{"easy": 3}, fs.Load(game.ModeSingle))

	// Equal score is not an improvement.
	require.NoError(t, fs.Put(game.ModeSingle, "easy", 3))
	require.Equal(t, map[string]int{"easy": 3}, fs.Load(game.ModeSingle))
}

func TestMultiPutOverwrites(t *testing.T) {
	fs, _ := newTestStore(t)

	require.NoError(t, fs.Put(game.ModeMulti, "alice", 3))
	require.NoError(t, fs.Put(game.ModeMulti, "alice", 8)) // last write wins
	require.Equal(t, map[string]int{"alice": 8}, fs.Load(game.ModeMulti))
}

func TestModesAreIndependentTables(t *testing.T) {
	fs, _ := newTestStore(t)

	require.NoError(t, fs.Put(game.ModeSingle, "medium", 4))
	require.NoError(t, fs.Put(game.ModeMulti, "medium", 6))
	require.Equal(t, map[string]int{"medium": 4}, fs.Load(game.ModeSingle))
	require.Equal(t, map[string]int{"medium": 6}, fs.Load(game.ModeMulti))
}

func TestLoadDegradesToEmpty(t *testing.T) {
	fs, dir := newTestStore(t)

	t.Run("missing file", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(dir, "singleplayer_scores.json")))
		require.Empty(t, fs.Load(game.ModeSingle))
	})

	t.Run("corrupt file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "multiplayer_scores.json"), []byte("not json{"), 0o644))
		require.Empty(t, fs.Load(game.ModeMulti))
	})

	t.Run("corrupt file is recoverable by the next put", func(t *testing.T) {
		require.NoError(t, fs.Put(game.ModeMulti, "bob", 4))
		require.Equal(t, map[string]int{"bob": 4}, fs.Load(game.ModeMulti))
	})
}

func TestWriteReplacesAtomically(t *testing.T) {
	fs, dir := newTestStore(t)
	require.NoError(t, fs.Put(game.ModeSingle, "hard", 2))

	// No temp file may survive a completed write.
	_, err := os.Stat(filepath.Join(dir, "singleplayer_scores.json.tmp"))
	require.True(t, os.IsNotExist(err))

	// The durable file holds exactly the flat table.
	data, err := os.ReadFile(filepath.Join(dir, "singleplayer_scores.json"))
	require.NoError(t, err)
	var table map[string]int
	require.NoError(t, json.Unmarshal(data, &table))
	require.Equal(t, map[string]int{"hard": 2}, table)
}

func TestConcurrentPutsLoseNoUpdates(t *testing.T) {
	fs, _ := newTestStore(t)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			key := []string{"easy", "medium", "hard", "custom"}[n%4]
			_ = fs.Put(game.ModeSingle, key, 6-n%4)
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	table := fs.Load(game.ModeSingle)
	require.Len(t, table, 4)
	for key, attempts := range table {
		require.Positivef(t, attempts, "key %s", key)
	}
}

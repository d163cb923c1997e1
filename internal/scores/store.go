// internal/scores/store.go
//
// Durable best-score tables, one flat JSON file per mode.
// Responsibilities:
//   - Load a mode's key→best-attempts table; unreadable or malformed
//     content degrades to an empty table, never to an error.
//   - Record scores: singleplayer keeps the minimum attempts per key,
//     multiplayer overwrites the key unconditionally (last write wins, as
//     shipped; see DESIGN.md before unifying the two).
//   - Replace-on-write: the full table is written to a temp file and
//     renamed over the durable one, so readers never see a partial write.

package scores

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"guessmaster/internal/game"
)

// Store is the persistence surface the registry and front ends consume.
type Store interface {
	// Load returns the mode's score table. Missing or corrupt tables read
	// as empty.
	Load(mode game.Mode) map[string]int

	// Put records a score under key. Singleplayer keeps the stored minimum;
	// multiplayer overwrites.
	Put(mode game.Mode, key string, attempts int) error
}

// Per-mode table filenames under the store directory.
var fileNames = map[game.Mode]string{
	game.ModeSingle: "singleplayer_scores.json",
	game.ModeMulti:  "multiplayer_scores.json",
}

// FileStore implements Store on top of two JSON files.
type FileStore struct {
	mu  sync.Mutex // serializes the read-mutate-write cycle
	dir string
}

// NewFileStore creates the store directory if needed and seeds empty
// tables for files that do not exist yet.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create score directory %s: %w", dir, err)
	}
	fs := &FileStore{dir: dir}
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
				return nil, fmt.Errorf("seed score file %s: %w", path, err)
			}
		}
	}
	return fs, nil
}

// Load reads the mode's table. Scores are best-effort: any read or parse
// failure is logged and an empty table returned.
func (fs *FileStore) Load(mode game.Mode) map[string]int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.load(mode)
}

// load is Load without the lock; callers hold fs.mu.
func (fs *FileStore) load(mode game.Mode) map[string]int {
	data, err := os.ReadFile(fs.path(mode))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("mode", string(mode)).Msg("read scores failed, using empty table")
		}
		return map[string]int{}
	}
	scores := map[string]int{}
	if err := json.Unmarshal(data, &scores); err != nil {
		log.Warn().Err(err).Str("mode", string(mode)).Msg("scores file corrupt, using empty table")
		return map[string]int{}
	}
	return scores
}

// Put records attempts under key. The whole read-mutate-write sequence
// runs under the store lock so two concurrent updates cannot lose a write.
func (fs *FileStore) Put(mode game.Mode, key string, attempts int) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	scores := fs.load(mode)
	if mode == game.ModeSingle {
		if best, ok := scores[key]; ok && best <= attempts {
			return nil // existing personal best stands
		}
	}
	scores[key] = attempts
	return fs.write(mode, scores)
}

// write replaces the durable table atomically: marshal, write a temp file
// in the same directory, rename over the target.
func (fs *FileStore) write(mode game.Mode, scores map[string]int) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	path := fs.path(mode)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write scores temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace scores file: %w", err)
	}
	return nil
}

func (fs *FileStore) path(mode game.Mode) string {
	return filepath.Join(fs.dir, fileNames[mode])
}

// internal/game/types.go
//
// Core type definitions for the GuessMaster game model.
// Defines:
//   - Mode: single player vs two-player.
//   - Difficulty: the range preset used for singleplayer games.
//   - Range: inclusive integer bounds for targets and guesses.
//   - Session: state for one in-progress game, tagged by Mode.

package game

import "time"

// Mode discriminates the two game variants.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeMulti  Mode = "multi"
)

// Difficulty selects the singleplayer range preset.
// It doubles as the score-table key for singleplayer records.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyCustom Difficulty = "custom"
)

// Status tracks the two-phase multiplayer flow.
// A multiplayer session starts waiting for the setter to pick a target
// and transitions to in_progress exactly once.
type Status string

const (
	StatusWaitingForNumber Status = "waiting_for_number"
	StatusInProgress       Status = "in_progress"
)

// Range holds inclusive integer bounds for valid targets and guesses.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether n falls within the range.
func (r Range) Contains(n int) bool { return n >= r.Min && n <= r.Max }

// Span returns the number of integers in the range.
func (r Range) Span() int { return r.Max - r.Min + 1 }

// SingleState holds the singleplayer-only part of a session.
type SingleState struct {
	Difficulty Difficulty
}

// MultiState holds the multiplayer-only part of a session.
type MultiState struct {
	Status  Status
	Players [2]string
	Scores  map[string]int
	Round   int
}

// Session holds the state of a single game. The common header is shared
// by both modes; exactly one of Single/Multi is non-nil, selected by Mode.
type Session struct {
	ID          string
	Mode        Mode
	Range       Range
	Target      int
	TargetSet   bool // false for multiplayer until the setter phase completes
	Attempts    int
	MaxAttempts int
	StartTime   time.Time

	Single *SingleState
	Multi  *MultiState
}

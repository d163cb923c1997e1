// internal/game/rules.go
//
// Game rules shared by every front end.
// Responsibilities:
//   - Fixed difficulty table and per-mode attempt budgets.
//   - Custom-range and player-name validation.
//   - Guess application: validate, count the attempt, decide the outcome.
//
// Notes:
//   - Validation failures are *ValidationError so callers can map them to a
//     caller-fault response without string matching.
//   - ApplyGuess mutates the session; the caller owns removal of finished
//     sessions from whatever table holds them.

package game

import (
	"errors"
	"fmt"
)

const (
	// MaxAttemptsSingle and MaxAttemptsMulti are per-mode guess budgets.
	MaxAttemptsSingle = 6
	MaxAttemptsMulti  = 8

	// CustomRangeCap bounds user-supplied custom ranges.
	CustomRangeCap = 1_000_000
)

// Ranges maps the preset difficulties to their guessing bounds.
var Ranges = map[Difficulty]Range{
	DifficultyEasy:   {Min: 1, Max: 50},
	DifficultyMedium: {Min: 1, Max: 100},
	DifficultyHard:   {Min: 1, Max: 500},
}

// MultiRange is the fixed range for every multiplayer game.
var MultiRange = Range{Min: 1, Max: 100}

// ValidationError marks a caller mistake: bad difficulty, bad range,
// bad name, or an out-of-range number.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Invalidf builds a ValidationError from a format string.
func Invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ResolveRange maps a difficulty to its guessing range. For
// DifficultyCustom the supplied range is validated and returned; custom
// must be non-nil in that case and is ignored otherwise.
func ResolveRange(d Difficulty, custom *Range) (Range, error) {
	if d == DifficultyCustom {
		if custom == nil {
			return Range{}, Invalidf("invalid custom range format")
		}
		if err := ValidateCustomRange(*custom); err != nil {
			return Range{}, err
		}
		return *custom, nil
	}
	if r, ok := Ranges[d]; ok {
		return r, nil
	}
	return Range{}, Invalidf("invalid difficulty level: %s", d)
}

// ValidateCustomRange enforces the custom-range bounds:
// min >= 1, max > min, max <= CustomRangeCap.
func ValidateCustomRange(r Range) error {
	if r.Min < 1 {
		return Invalidf("minimum value must be at least 1")
	}
	if r.Max <= r.Min {
		return Invalidf("maximum value must be greater than minimum value")
	}
	if r.Max > CustomRangeCap {
		return Invalidf("maximum value cannot exceed %d", CustomRangeCap)
	}
	return nil
}

// ValidatePlayers enforces multiplayer name rules: both non-empty, distinct.
func ValidatePlayers(player1, player2 string) error {
	if player1 == "" || player2 == "" {
		return Invalidf("both player names are required")
	}
	if player1 == player2 {
		return Invalidf("players must have different names")
	}
	return nil
}

// Outcome is the result category of a processed guess.
type Outcome string

const (
	OutcomeWin      Outcome = "win"
	OutcomeLose     Outcome = "lose"
	OutcomeContinue Outcome = "continue"
)

// Hint tells the guesser which direction to move after a miss.
type Hint string

const (
	HintHigher Hint = "higher"
	HintLower  Hint = "lower"
)

// GuessResult reports the outcome of one accepted guess.
// Attempts is always the count consumed so far; Hint and Remaining are
// meaningful for OutcomeContinue, Target is revealed on win and lose.
type GuessResult struct {
	Outcome   Outcome
	Hint      Hint
	Attempts  int
	Remaining int
	Target    int
}

// ApplyGuess validates and applies one guess to the session.
//
// Validation happens before the attempt is counted: an out-of-range guess
// fails without consuming an attempt. Exactly one of win/lose/continue is
// returned per accepted guess; win and lose are terminal and the caller
// must drop the session.
func (s *Session) ApplyGuess(guess int) (*GuessResult, error) {
	if !s.Range.Contains(guess) {
		return nil, Invalidf("guess must be between %d and %d", s.Range.Min, s.Range.Max)
	}
	s.Attempts++

	switch {
	case guess == s.Target:
		return &GuessResult{Outcome: OutcomeWin, Attempts: s.Attempts, Target: s.Target}, nil
	case s.Attempts >= s.MaxAttempts:
		return &GuessResult{Outcome: OutcomeLose, Attempts: s.Attempts, Target: s.Target}, nil
	default:
		hint := HintHigher
		if guess > s.Target {
			hint = HintLower
		}
		return &GuessResult{
			Outcome:   OutcomeContinue,
			Hint:      hint,
			Attempts:  s.Attempts,
			Remaining: s.MaxAttempts - s.Attempts,
		}, nil
	}
}

// internal/registry/registry.go
//
// Session registry: the owner of every live game session.
// Responsibilities:
//   - Mint session ids and insert new single/multiplayer sessions.
//   - Validate and apply every state transition: target-setting, guesses,
//     explicit end, and idle-timeout expiry.
//   - Persist singleplayer best scores on win (best effort, never fatal).
//   - Sweep expired sessions on a fixed interval for the registry's lifetime.
//
// Concurrency: one mutex serializes every mutating operation on the session
// table, including the background sweep. Sessions are small and operations
// are O(1), so the coarse lock keeps the invariants simple: no operation can
// observe a session after its removal has been committed, and a removed id
// is never matched again.

package registry

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"guessmaster/internal/game"
)

// ScoreStore is the durable best-score sink consumed on singleplayer wins.
type ScoreStore interface {
	Put(mode game.Mode, key string, attempts int) error
}

// Config carries the registry's timing knobs. Zero values fall back to the
// defaults below.
type Config struct {
	SessionTimeout time.Duration // idle time before a session expires
	SweepInterval  time.Duration // how often the background sweep runs
}

const (
	defaultSessionTimeout = 30 * time.Minute
	defaultSweepInterval  = 5 * time.Minute
)

// Registry holds all live sessions behind a single lock.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*game.Session
	scores   ScoreStore
	cfg      Config

	closeOnce sync.Once
	done      chan struct{}
}

// Created is returned from the create operations. It never carries the
// target.
type Created struct {
	ID          string
	Range       game.Range
	MaxAttempts int
}

// New constructs a registry and starts its background expiry sweep.
// The sweep runs until Close; scores may be nil when no persistence is
// wanted (wins then skip the score write).
func New(scores ScoreStore, cfg Config) *Registry {
	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = defaultSessionTimeout
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}
	r := &Registry{
		sessions: make(map[string]*game.Session),
		scores:   scores,
		cfg:      cfg,
		done:     make(chan struct{}),
	}
	go r.sweepLoop()
	return r
}

// Close stops the background sweep. Safe to call more than once.
func (r *Registry) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}

// CreateSingle starts a singleplayer session. For DifficultyCustom the
// supplied range is validated; the presets ignore it. The target is drawn
// uniformly from the resolved range and never leaves the registry.
func (r *Registry) CreateSingle(difficulty game.Difficulty, custom *game.Range) (Created, error) {
	rng, err := game.ResolveRange(difficulty, custom)
	if err != nil {
		return Created{}, err
	}

	s := &game.Session{
		ID:          uuid.NewString(),
		Mode:        game.ModeSingle,
		Range:       rng,
		Target:      rng.Min + rand.IntN(rng.Span()),
		TargetSet:   true,
		MaxAttempts: game.MaxAttemptsSingle,
		StartTime:   time.Now(),
		Single:      &game.SingleState{Difficulty: difficulty},
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	log.Debug().Str("gameId", s.ID).Str("difficulty", string(difficulty)).Msg("singleplayer session created")
	return Created{ID: s.ID, Range: rng, MaxAttempts: s.MaxAttempts}, nil
}

// CreateMulti starts a multiplayer session in the waiting_for_number phase
// with the fixed 1..100 range and no target.
func (r *Registry) CreateMulti(player1, player2 string) (Created, error) {
	if err := game.ValidatePlayers(player1, player2); err != nil {
		return Created{}, err
	}

	s := &game.Session{
		ID:          uuid.NewString(),
		Mode:        game.ModeMulti,
		Range:       game.MultiRange,
		MaxAttempts: game.MaxAttemptsMulti,
		StartTime:   time.Now(),
		Multi: &game.MultiState{
			Status:  game.StatusWaitingForNumber,
			Players: [2]string{player1, player2},
			Scores:  map[string]int{player1: 0, player2: 0},
			Round:   1,
		},
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	log.Debug().Str("gameId", s.ID).Msg("multiplayer session created")
	return Created{ID: s.ID, Range: s.Range, MaxAttempts: s.MaxAttempts}, nil
}

// SetTarget stores the multiplayer target and opens the guessing phase.
// Fails on a missing session, outside the waiting_for_number phase, or an
// out-of-range number; the phase only ever transitions forward, once.
func (r *Registry) SetTarget(id string, number int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if s.Mode != game.ModeMulti || s.Multi.Status != game.StatusWaitingForNumber {
		return ErrTargetAlreadySet
	}
	if !s.Range.Contains(number) {
		return game.Invalidf("number must be between %d and %d", s.Range.Min, s.Range.Max)
	}

	s.Target = number
	s.TargetSet = true
	s.Multi.Status = game.StatusInProgress
	s.Attempts = 0
	return nil
}

// Guess validates the session and applies one guess.
//
// An idle-expired session is removed before anything else and reported as
// expired: a stale session never processes a guess. Range validation
// happens before the attempt is counted. Win and lose remove the session;
// a singleplayer win records (difficulty, attempts) in the score store
// first, with store failures logged and absorbed so the outcome still
// reaches the caller.
func (r *Registry) Guess(id string, guess int) (*game.GuessResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Since(s.StartTime) > r.cfg.SessionTimeout {
		delete(r.sessions, id)
		return nil, ErrSessionExpired
	}
	if !s.TargetSet {
		return nil, ErrTargetNotSet
	}

	res, err := s.ApplyGuess(guess)
	if err != nil {
		return nil, err
	}

	switch res.Outcome {
	case game.OutcomeWin:
		if s.Mode == game.ModeSingle && r.scores != nil {
			if err := r.scores.Put(game.ModeSingle, string(s.Single.Difficulty), res.Attempts); err != nil {
				log.Warn().Err(err).Str("gameId", id).Msg("save score failed")
			}
		}
		delete(r.sessions, id)
	case game.OutcomeLose:
		delete(r.sessions, id)
	}
	return res, nil
}

// End removes a session. A missing id is a no-op, not an error.
func (r *Registry) End(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; ok {
		delete(r.sessions, id)
		log.Debug().Str("gameId", id).Msg("game session ended")
	}
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// SweepExpired removes every session whose idle time exceeds the timeout
// and reports how many were removed. It runs under the same lock as every
// other mutating operation.
func (r *Registry) SweepExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if time.Since(s.StartTime) > r.cfg.SessionTimeout {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// sweepLoop re-arms the expiry sweep on a fixed interval until Close.
func (r *Registry) sweepLoop() {
	t := time.NewTicker(r.cfg.SweepInterval)
	defer t.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-t.C:
			if n := r.SweepExpired(); n > 0 {
				log.Info().Int("removed", n).Msg("expired game sessions swept")
			}
		}
	}
}

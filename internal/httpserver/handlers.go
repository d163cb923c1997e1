// internal/httpserver/handlers.go
//
// Game endpoint handlers. Request/response payload types live next to the
// handler that owns them, mirroring the route list in server.go.

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"guessmaster/internal/game"
	"guessmaster/internal/registry"
)

// ---------------------------- start-game ------------------------------------

type startGameReq struct {
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty"`
	Range      []int  `json:"range"`
	Player1    string `json:"player1"`
	Player2    string `json:"player2"`
}

type startGameRes struct {
	GameID      string     `json:"gameId"`
	Range       game.Range `json:"range"`
	MaxAttempts int        `json:"maxAttempts"`
}

// handleStartGame creates a session of either mode, binds it to the caller
// via the session cookie, and records a history row best effort.
func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid request data"})
		return
	}

	var difficulty, players string

	switch game.Mode(req.Mode) {
	case game.ModeSingle:
		if req.Difficulty == "" {
			writeJSON(w, http.StatusBadRequest, errBody{Error: "difficulty level required"})
			return
		}
		var custom *game.Range
		if game.Difficulty(req.Difficulty) == game.DifficultyCustom {
			if len(req.Range) != 2 {
				writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid custom range"})
				return
			}
			custom = &game.Range{Min: req.Range[0], Max: req.Range[1]}
		}
		c, err := s.registry.CreateSingle(game.Difficulty(req.Difficulty), custom)
		if err != nil {
			writeError(w, err)
			return
		}
		difficulty = req.Difficulty
		s.finishStart(w, r, c.ID, req.Mode, difficulty, players, startGameRes{GameID: c.ID, Range: c.Range, MaxAttempts: c.MaxAttempts})
	case game.ModeMulti:
		c, err := s.registry.CreateMulti(req.Player1, req.Player2)
		if err != nil {
			writeError(w, err)
			return
		}
		players = req.Player1 + " vs " + req.Player2
		s.finishStart(w, r, c.ID, req.Mode, difficulty, players, startGameRes{GameID: c.ID, Range: c.Range, MaxAttempts: c.MaxAttempts})
	default:
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid game mode"})
	}
}

// finishStart is the shared tail of handleStartGame: cookie, history, body.
func (s *Server) finishStart(w http.ResponseWriter, r *http.Request, id, mode, difficulty, players string, res startGameRes) {
	s.setSessionCookie(w, id)
	if s.history != nil {
		if err := s.history.Insert(r.Context(), id, mode, difficulty, players); err != nil {
			log.Warn().Err(err).Str("gameId", id).Msg("insert game history row")
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// ------------------------------- guess --------------------------------------

type guessReq struct {
	Guess *json.Number `json:"guess"`
}

type guessRes struct {
	Result    string `json:"result"`
	Hint      string `json:"hint,omitempty"`
	Attempts  int    `json:"attempts,omitempty"`
	Remaining int    `json:"remaining,omitempty"`
	Target    int    `json:"target,omitempty"`
	Message   string `json:"message,omitempty"`
}

// handleGuess applies one guess to the caller's session. Win and lose
// clear the cookie and finish the history row; a gone session also clears
// the cookie so the front end re-creates cleanly.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	gid := s.sessionID(r)
	if gid == "" {
		writeJSON(w, statusSessionGone, errBody{Error: "no active game session"})
		return
	}

	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Guess == nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid guess data"})
		return
	}
	n, err := req.Guess.Int64()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "guess must be an integer"})
		return
	}

	res, err := s.registry.Guess(gid, int(n))
	if err != nil {
		if registry.IsSessionGone(err) {
			s.clearSessionCookie(w)
		}
		writeError(w, err)
		return
	}

	body := guessRes{Result: string(res.Outcome)}
	switch res.Outcome {
	case game.OutcomeWin:
		body.Attempts = res.Attempts
		body.Target = res.Target
		body.Message = fmt.Sprintf("Correct! The number was %d", res.Target)
	case game.OutcomeLose:
		body.Target = res.Target
		body.Message = fmt.Sprintf("Game Over! The number was %d", res.Target)
	case game.OutcomeContinue:
		body.Hint = string(res.Hint)
		body.Attempts = res.Attempts
		body.Remaining = res.Remaining
	}

	if res.Outcome != game.OutcomeContinue {
		s.clearSessionCookie(w)
		if s.history != nil {
			if err := s.history.Finish(r.Context(), gid, string(res.Outcome), res.Attempts); err != nil {
				log.Warn().Err(err).Str("gameId", gid).Msg("finish game history row")
			}
		}
	}
	writeJSON(w, http.StatusOK, body)
}

// ----------------------------- set-target -----------------------------------

type setTargetReq struct {
	Number *json.Number `json:"number"`
}

func (s *Server) handleSetTarget(w http.ResponseWriter, r *http.Request) {
	gid := s.sessionID(r)
	if gid == "" {
		writeJSON(w, statusSessionGone, errBody{Error: "no active game session"})
		return
	}

	var req setTargetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Number == nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "target number is required"})
		return
	}
	n, err := req.Number.Int64()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "target must be an integer"})
		return
	}

	if err := s.registry.SetTarget(gid, int(n)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ------------------------------ end-game ------------------------------------

/// handleEndGame removes the caller's session. Idempotent: no session, no
// error.
func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	if gid := s.sessionID(r); gid != "" {
		s.registry.End(gid)
	}
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ------------------------------- scores -------------------------------------

func (s *Server) handleGetScores(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = string(game.ModeSingle)
	}
	if mode != string(game.ModeSingle) && mode != string(game.ModeMulti) {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid score mode"})
		return
	}
	writeJSON(w, http.StatusOK, s.scores.Load(game.Mode(mode)))
}

type saveScoresReq struct {
	Mode   string         `json:"mode"`
	Scores map[string]int `json:"scores"`
}

// handleSaveScores is the explicit multiplayer submission path: the front
// end resolved the rounds itself and posts per-player attempt counts.
// Multiplayer entries overwrite (last write wins).
func (s *Server) handleSaveScores(w http.ResponseWriter, r *http.Request) {
	var req saveScoresReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Mode == "" || req.Scores == nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid score data"})
		return
	}
	if req.Mode != string(game.ModeMulti) {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid score mode"})
		return
	}
	for player, attempts := range req.Scores {
		if err := s.scores.Put(game.ModeMulti, player, attempts); err != nil {
			log.Warn().Err(err).Str("player", player).Msg("save multiplayer score")
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ------------------------------- history ------------------------------------

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	games, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("query game history")
		writeJSON(w, http.StatusInternalServerError, errBody{Error: "db_error"})
		return
	}
	writeJSON(w, http.StatusOK, games)
}

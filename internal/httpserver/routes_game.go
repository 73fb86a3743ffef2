// internal/httpserver/routes_game.go
//
// Game routes. Each handler performs exactly one engine operation and answers
// with the resulting game view, so a client can redraw the board from any
// response.

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle-engine/internal/game"
)

// gameView is the JSON shape of a game.
type gameView struct {
	GameID  string       `json:"gameId"`
	Rows    int          `json:"rows"`
	Letters int          `json:"letters"`
	Row     int          `json:"row"`
	Guess   string       `json:"guess"`
	Status  game.Status  `json:"status"`
	History []game.Round `json:"history"`
	Answer  string       `json:"answer,omitempty"` // only once the game is over
}

func viewOf(s game.Snapshot) gameView {
	return gameView{
		GameID:  s.ID,
		Rows:    s.Rows,
		Letters: s.Letters,
		Row:     s.Row,
		Guess:   s.Guess,
		Status:  s.Status,
		History: s.History,
		Answer:  s.Target,
	}
}

type newGameRes struct {
	gameView
	Token string `json:"token"`
}

// handleNewGame starts a game from the configured word source.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	g, err := game.Start(r.Context(), s.source, s.gameOpts...)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, err := s.signGameToken(g.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	hlog.FromRequest(r).Info().Str("gameId", g.ID).Msg("game started")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newGameRes{gameView: viewOf(g.Snapshot()), Token: tok})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(viewOf(gameFrom(r).Snapshot()))
}

type letterReq struct {
	Letter string `json:"letter"`
}

// handleLetter appends one letter to the current guess.
func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if utf8.RuneCountInString(req.Letter) != 1 {
		writeGameError(w, r, fmt.Errorf("%w: want one letter, got %q", game.ErrInvalidInput, req.Letter))
		return
	}
	ch, _ := utf8.DecodeRuneInString(req.Letter)

	g := gameFrom(r)
	if err := g.AppendLetter(ch); err != nil {
		writeGameError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(g.Snapshot()))
}

func (s *Server) handleBackspace(w http.ResponseWriter, r *http.Request) {
	g := gameFrom(r)
	if err := g.RemoveLastLetter(); err != nil {
		writeGameError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(g.Snapshot()))
}

type submitRes struct {
	gameView
	Submitted bool             `json:"submitted"`
	Result    game.RoundResult `json:"result,omitempty"`
}

// handleSubmit submits the current guess. An incomplete guess answers 200 with
// submitted=false; a rejected word answers 422 and leaves the guess in place.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	g := gameFrom(r)
	out, err := g.SubmitGuess(r.Context(), s.validator)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	if out.Status.Done() {
		hlog.FromRequest(r).Info().Str("gameId", g.ID).Stringer("status", out.Status).Msg("game finished")
	}
	_ = json.NewEncoder(w).Encode(submitRes{
		gameView:  viewOf(g.Snapshot()),
		Submitted: out.Submitted,
		Result:    out.Result,
	})
}

// handleAbandon discards the game.
func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	g := gameFrom(r)
	if err := s.store.Delete(r.Context(), g.ID); err != nil {
		writeGameError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

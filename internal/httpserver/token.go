// internal/httpserver/token.go
//
// Per-game bearer tokens. POST /game/new returns an HS256 JWT whose "gid"
// claim names the game; every /game/{id} route requires it, so a game is only
// ever driven by the client that created it.

package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/wordle-engine/internal/game"
)

// TokenTTL is how long a game token stays valid. The session store evicts
// games after the same period.
const TokenTTL = 24 * time.Hour

type ctxGameKey struct{}

// signGameToken creates a token bound to gameID.
func (s *Server) signGameToken(gameID string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid": gameID,
		"iat": now.Unix(),
		"exp": now.Add(TokenTTL).Unix(),
	})
	return t.SignedString(s.secret)
}

// requireGameToken checks the bearer token against {id} and loads the game
// into the request context.
func (s *Server) requireGameToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearer(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		id := chi.URLParam(r, "id")
		if gid, _ := claims["gid"].(string); gid == "" || gid != id {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		g, err := s.store.Get(r.Context(), id)
		if err != nil {
			writeGameError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), ctxGameKey{}, g)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func gameFrom(r *http.Request) *game.Game {
	g, _ := r.Context().Value(ctxGameKey{}).(*game.Game)
	return g
}

// bearer extracts "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

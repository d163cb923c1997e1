// internal/httpserver/cookie.go
//
// Session cookie helpers. The caller's game id travels in an HttpOnly
// cookie holding an HS256 JWT; a missing, malformed, or tampered cookie is
// simply "no session". The cookie outlives the server-side idle timeout on
// purpose: expiry is the registry's decision, not the transport's.

package httpserver

import (
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionCookieName = "guessmaster_session"

// cookie validity; generous on purpose, see file comment.
const sessionCookieTTL = 24 * time.Hour

// setSessionCookie signs the game id into the session cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, gameID string) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid": gameID,
		"iat": now.Unix(),
		"exp": now.Add(sessionCookieTTL).Unix(),
	})
	signed, err := t.SignedString(s.secret)
	if err != nil {
		// Signing only fails on a broken key; the game itself still works,
		// the caller just has no cookie to come back with.
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   os.Getenv("NODE_ENV") == "production",
		SameSite: http.SameSiteLaxMode,
		Expires:  now.Add(sessionCookieTTL),
	})
}

// clearSessionCookie deletes the session cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// sessionID extracts and verifies the game id from the session cookie.
// Any failure yields "".
func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !t.Valid {
		return ""
	}
	gid, _ := claims["gid"].(string)
	return gid
}

package http

import (
	"errors"
	"net/http"

	"scbank/internal/session"
)

// resolveSession authenticates the request's bearer token. On failure it
// writes the error response and returns ok=false.
func (s *Server) resolveSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing session token")
		return nil, false
	}
	sess, err := s.sessions.Resolve(token)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidToken):
			writeError(w, http.StatusUnauthorized, "invalid session token")
		case errors.Is(err, session.ErrSessionExpired):
			writeError(w, http.StatusUnauthorized, "session expired")
		default:
			writeError(w, http.StatusInternalServerError, "session lookup failed")
		}
		return nil, false
	}
	return sess, true
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/nearme-publisher/internal/errors"
	"github.com/jrsteele09/nearme-publisher/publish"
	"github.com/jrsteele09/nearme-publisher/sessions"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the verified session
const ContextKeySession ContextKey = "session"

// SessionFromContext returns the session RequireSession stored on the request.
func SessionFromContext(ctx context.Context) (sessions.Session, bool) {
	s, ok := ctx.Value(ContextKeySession).(sessions.Session)
	return s, ok
}

// sessionFromRequest reads the session cookie. A missing, tampered or expired
// cookie is the anonymous session, never an error.
func (s *Server) sessionFromRequest(r *http.Request) (sessions.Session, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return sessions.Session{}, false
	}
	return s.codec.SessionFromToken(cookie.Value)
}

// RequireSession is middleware for API routes that must not run anonymously.
// Requests without a valid session cookie get a 401 in the API result shape.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session, ok := s.sessionFromRequest(r)
			if !ok {
				writeJSON(w, http.StatusUnauthorized, publish.Failure(publish.StageAuthenticate, errors.ErrUnauthenticated.Error(), errors.ErrUnauthenticated))
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			next(w, r.WithContext(ctx))
		}
	}
}

package server

import (
	"net/http"

	"github.com/jrsteele09/nearme-publisher/auth"
	"github.com/rs/zerolog/log"
)

// LoginHandler starts the OAuth flow at the hosting provider.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := auth.NewState()
		if err != nil {
			log.Err(err).Msg("Login: failed to generate state")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.SetStateCookie(w, r, state)
		log.Info().Str("event", "login_started").Msg("login started")
		http.Redirect(w, r, s.provider.AuthCodeURL(state), http.StatusFound)
	}
}

// AuthCallbackHandler completes the OAuth flow and stores the signed session
// in the browser.
func (s *Server) AuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if errParam := query.Get("error"); errParam != "" {
			log.Warn().Str("error", errParam).Str("error_description", query.Get("error_description")).Msg("Auth: provider returned an error")
			redirectWithError(w, r, RouteIndex, "Login was not completed")
			return
		}

		stateCookie, err := r.Cookie(stateCookieName)
		if err != nil || !auth.ValidState(stateCookie.Value, query.Get("state")) {
			log.Warn().Msg("Auth: invalid state")
			redirectWithError(w, r, RouteIndex, "Login expired, please try again")
			return
		}
		clearCookie(w, stateCookieName, RouteAuthCallback)

		session, err := s.provider.Login(r.Context(), query.Get("code"))
		if err != nil {
			log.Err(err).Msg("Auth: login failed")
			redirectWithError(w, r, RouteIndex, "Login failed")
			return
		}

		token, err := s.codec.Sign(session)
		if err != nil {
			log.Err(err).Msg("Auth: failed to sign session")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.SetSessionCookie(w, r, token)

		log.Info().
			Str("event", "login_complete").
			Str("uid", session.Profile.UID).
			Str("username", session.Profile.Username).
			Msg("login complete")
		http.Redirect(w, r, RouteIndex, http.StatusFound)
	}
}

// LogoutHandler drops the session cookie. There is nothing to revoke server side.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session, ok := s.sessionFromRequest(r); ok {
			log.Info().Str("event", "logout").Str("username", session.Profile.Username).Msg("logout")
		}
		clearCookie(w, sessionCookieName, "/")
		http.Redirect(w, r, RouteIndex, http.StatusFound)
	}
}

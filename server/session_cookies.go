package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/designmatch/web-client/session"
)

const (
	// sessionCookieName is the name of the cookie tying a browser to its
	// server-side session
	sessionCookieName = "dm_session_id"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const contextKeySession ContextKey = "session"

func withSession(ctx context.Context, sess session.Session) context.Context {
	return context.WithValue(ctx, contextKeySession, sess)
}

func sessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(contextKeySession).(session.Session)
	return sess, ok
}

func (s *Server) SetSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	isSecure := getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   s.config.GetSessionMaxAge(),
	})
}

// resolveSession returns the hydrated session for the request, creating a
// fresh anonymous one (and setting its cookie) when none exists. Handlers
// behind RequireLogin get the already-resolved session from the context
// instead of a second hydration round trip.
func (s *Server) resolveSession(w http.ResponseWriter, r *http.Request) session.Session {
	if sess, ok := sessionFromContext(r.Context()); ok {
		return sess
	}

	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if sess, err := s.sessions.Get(cookie.Value); err == nil {
			s.sessions.Hydrate(r.Context(), &sess)
			return sess
		}
	}

	sess, err := s.sessions.Begin()
	if err != nil {
		log.Error().Err(err).Msg("failed to begin session")
		return session.Session{}
	}
	s.SetSessionCookie(w, r, sess.ID)
	return sess
}

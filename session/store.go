package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/designmatch/web-client/backend"
	"github.com/designmatch/web-client/internal/errors"
)

// API is the slice of the backend client the store needs.
type API interface {
	UserDetails(ctx context.Context, token string) (backend.UserDetails, error)
	Register(ctx context.Context, req backend.RegisterRequest) (string, error)
	Login(ctx context.Context, req backend.LoginRequest) (string, error)
	Logout(ctx context.Context, token string) error
}

// Store owns session lifecycle: creation, hydration from a bearer token,
// login/registration, token replacement after onboarding, and logout.
type Store struct {
	api  API
	repo Repo
}

// NewStore creates a session store over the given backend API and repo.
func NewStore(api API, repo Repo) *Store {
	return &Store{api: api, repo: repo}
}

// Begin creates a fresh anonymous session and persists it.
func (s *Store) Begin() (Session, error) {
	sess := Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	if err := s.repo.Upsert(sess.ID, sess); err != nil {
		return Session{}, errors.Wrapf(err, "[session Begin] failed to persist session")
	}
	return sess, nil
}

// Get returns the session for a cookie session ID.
func (s *Store) Get(sessionID string) (Session, error) {
	sess, err := s.repo.Get(sessionID)
	if err != nil {
		return Session{}, errors.ErrSessionNotFound
	}
	return sess, nil
}

// Hydrate validates the session's token with one authenticated details
// fetch. Success marks the session logged in with the backend record
// merged with decoded token claims; any failure leaves it anonymous and
// is swallowed (logged only) — the app discovers invalid tokens
// opportunistically, not through a global interceptor.
func (s *Store) Hydrate(ctx context.Context, sess *Session) {
	defer s.persist(sess)

	if sess.Token == "" {
		sess.LoggedIn = false
		return
	}

	details, err := s.api.UserDetails(ctx, sess.Token)
	if err != nil {
		log.Debug().Err(err).Str("session_id", sess.ID).Msg("session hydration failed, staying anonymous")
		sess.LoggedIn = false
		sess.User = backend.UserDetails{}
		return
	}

	sess.User = details
	sess.LoggedIn = true
	s.mergeClaims(sess)
}

// Register creates an account, stores the issued token and hydrates the
// session. Unlike hydration, failures here are surfaced to the caller.
func (s *Store) Register(ctx context.Context, sess *Session, req backend.RegisterRequest) error {
	token, err := s.api.Register(ctx, req)
	if err != nil {
		return err
	}
	return s.adopt(ctx, sess, token)
}

// Login exchanges credentials for a token and hydrates the session.
func (s *Store) Login(ctx context.Context, sess *Session, req backend.LoginRequest) error {
	token, err := s.api.Login(ctx, req)
	if err != nil {
		return err
	}
	return s.adopt(ctx, sess, token)
}

// ReplaceToken swaps the session's bearer token in place and re-derives
// the claims — used after onboarding, which issues a new token carrying
// the vendor flag. The session store stays the source of truth; no page
// reload is needed.
func (s *Store) ReplaceToken(sess *Session, token string) {
	sess.Token = token
	s.mergeClaims(sess)
	if sess.Claims.IsVendor {
		sess.User.IsVendor = true
		if sess.Claims.VendorID != 0 {
			sess.User.VendorID = sess.Claims.VendorID
		}
	}
	s.persist(sess)
}

// Logout invalidates the session with the backend, then clears local
// state regardless of the outcome — the network call is fire-and-forget.
func (s *Store) Logout(ctx context.Context, sess *Session) {
	if sess.Token != "" {
		if err := s.api.Logout(ctx, sess.Token); err != nil {
			log.Warn().Err(err).Str("session_id", sess.ID).Msg("backend logout failed, clearing local session anyway")
		}
	}
	sess.clear()
	s.persist(sess)
}

// End removes the session entirely.
func (s *Store) End(sess *Session) {
	if err := s.repo.Delete(sess.ID); err != nil {
		log.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to delete session")
	}
}

func (s *Store) adopt(ctx context.Context, sess *Session, token string) error {
	sess.Token = token

	details, err := s.api.UserDetails(ctx, token)
	if err != nil {
		s.persist(sess)
		return errors.Wrapf(err, "[session adopt] failed to fetch user details")
	}

	sess.User = details
	sess.LoggedIn = true
	s.mergeClaims(sess)
	s.persist(sess)
	return nil
}

func (s *Store) mergeClaims(sess *Session) {
	claims, err := DecodeClaims(sess.Token)
	if err != nil {
		log.Debug().Err(err).Msg("could not decode token claims")
		return
	}
	sess.Claims = claims
	if sess.User.Email == "" {
		sess.User.Email = claims.Email
	}
}

func (s *Store) persist(sess *Session) {
	if err := s.repo.Upsert(sess.ID, *sess); err != nil {
		log.Error().Err(err).Str("session_id", sess.ID).Msg("failed to persist session")
	}
}

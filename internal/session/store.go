// Package session owns the client's authenticated identity. The Store is
// the sole writer of the two persisted slots and the only mutation surface
// for session state; everything else reads derived values from it.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jobdeck/jobboard-client/internal/core/domain"
	"github.com/jobdeck/jobboard-client/internal/core/ports"
	"github.com/jobdeck/jobboard-client/internal/metrics"
)

// Store holds the current session and keeps it in sync with the two
// persisted slots. Safe for concurrent use.
type Store struct {
	storage SlotStorage
	log     zerolog.Logger

	mu      sync.RWMutex
	current *domain.Session
}

// NewStore returns a Store with no session installed. Call Restore at
// process start to rehydrate a persisted one.
func NewStore(storage SlotStorage, log zerolog.Logger) *Store {
	return &Store{storage: storage, log: log}
}

// EncodeCredential derives the Basic payload resent on every request. The
// backend expects the raw email:password pair on each call; there is no
// issued token to refresh or expire.
func EncodeCredential(email, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(email + ":" + password))
}

// Restore rehydrates the session from the persisted slots. If either slot is
// missing, or the user slot does not parse, both slots are cleared and the
// session stays anonymous. Restore never fails; corruption self-heals
// silently. Calling it again with unchanged slots yields the same session.
func (s *Store) Restore() {
	token, okToken := s.storage.Get(SlotToken)
	userRaw, okUser := s.storage.Get(SlotUser)
	if !okToken || !okUser {
		s.discard(okToken || okUser)
		return
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(userRaw), &sess); err != nil {
		s.log.Warn().Err(err).Msg("persisted user slot unparsable, clearing session")
		s.discard(true)
		return
	}

	sess.Credential = token
	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	metrics.SessionEventsTotal.WithLabelValues("restore").Inc()
}

// discard clears both slots and the in-memory session. hadRemnants controls
// whether the discard is counted (a clean anonymous start is not an event).
func (s *Store) discard(hadRemnants bool) {
	s.storage.Delete(SlotToken)
	s.storage.Delete(SlotUser)
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	if hadRemnants {
		metrics.SessionEventsTotal.WithLabelValues("restore_discarded").Inc()
	}
}

// Login authenticates against the backend and installs the resulting
// session. On failure the existing state is left untouched and the returned
// error carries a message fit for direct display.
func (s *Store) Login(ctx context.Context, auth ports.AuthClient, email, password string) error {
	ident, err := auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := s.install(ident, email, password); err != nil {
		return err
	}
	metrics.SessionEventsTotal.WithLabelValues("login").Inc()
	return nil
}

// Register creates an account and establishes a session right away;
// registration implies login.
func (s *Store) Register(ctx context.Context, auth ports.AuthClient, input ports.RegisterInput) error {
	ident, err := auth.Register(ctx, input)
	if err != nil {
		return err
	}
	if err := s.install(ident, input.Email, input.Password); err != nil {
		return err
	}
	metrics.SessionEventsTotal.WithLabelValues("register").Inc()
	return nil
}

func (s *Store) install(ident *ports.Identity, email, password string) error {
	sess := &domain.Session{
		UserID:     ident.UserID,
		Email:      ident.Email,
		RoleTags:   ident.RoleTags,
		Credential: EncodeCredential(email, password),
	}

	userRaw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.storage.Set(SlotToken, sess.Credential); err != nil {
		return err
	}
	if err := s.storage.Set(SlotUser, string(userRaw)); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return nil
}

// Logout clears both persisted slots and the in-memory session. Idempotent;
// the backend is never called, it holds no session to end.
func (s *Store) Logout() {
	s.storage.Delete(SlotToken)
	s.storage.Delete(SlotUser)
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	metrics.SessionEventsTotal.WithLabelValues("logout").Inc()
}

// Current returns a copy of the active session, or nil when anonymous.
func (s *Store) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copy := *s.current
	return &copy
}

// Authenticated reports whether a session exists.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// IsEmployer reports whether the current session carries the employer tag.
// False when anonymous.
func (s *Store) IsEmployer() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsEmployer()
}

// IsApplicant reports whether the current session carries the applicant tag.
// False when anonymous.
func (s *Store) IsApplicant() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsApplicant()
}

// Credential returns the Basic payload of the current session, or "" when
// anonymous. Satisfies the gateway's credential source.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Credential
}

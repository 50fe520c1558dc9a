package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session id.
const CookieName = "commute_session"

var ErrUnknownSession = errors.New("unknown session")

// Store holds live sessions in memory. Sessions idle for longer than the TTL
// are removed on later accesses; nothing survives a restart.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	sessions  map[string]*Session
	lastSweep time.Time
}

type StoreOption func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(ttl time.Duration, opts ...StoreOption) *Store {
	s := &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: map[string]*Session{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastSweep = s.now()
	return s
}

// Create starts a new session with a random id.
func (s *Store) Create() *Session {
	now := s.now()
	sess := newSession(uuid.NewString(), now)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	s.sessions[sess.id] = sess
	return sess
}

// Get returns a live session and refreshes its idle timer.
func (s *Store) Get(id string) (*Session, error) {
	now := s.now()

	s.mu.Lock()
	s.sweepLocked(now)
	sess, ok := s.sessions[id]
	s.mu.Unlock()

	if !ok {
		return nil, ErrUnknownSession
	}
	sess.touch(now)
	return sess, nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// sweepLocked removes expired sessions at most once per minute.
func (s *Store) sweepLocked(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastSweep) < time.Minute {
		return
	}
	s.lastSweep = now

	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

// Load returns the session named by the request cookie, creating one and
// setting the cookie when it is missing or expired.
func (s *Store) Load(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(CookieName); err == nil {
		if sess, err := s.Get(c.Value); err == nil {
			return sess
		}
	}

	sess := s.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	slog.DebugContext(r.Context(), "session created", "session_id", sess.ID())
	return sess
}

// Middleware attaches the caller's session to the request context.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.Load(w, r)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

type key struct{}

var sessionKey = key{}

func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// FromContext returns the session attached by Middleware.
func FromContext(ctx context.Context) (*Session, error) {
	sess, ok := ctx.Value(sessionKey).(*Session)
	if !ok || sess == nil {
		return nil, ErrUnknownSession
	}
	return sess, nil
}

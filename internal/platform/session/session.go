// Package session holds the signed-in operator's session for the lifetime of
// the process. It is initialized at login and invalidated at logout; nothing
// reads it through globals.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession is returned when no operator is signed in.
var ErrNoSession = errors.New("no active session")

// Session is the state kept after a successful login.
type Session struct {
	Token     string    `json:"-"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	AccountID int       `json:"account_id"`
	Name      string    `json:"name,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Expired reports whether the session's token has passed its expiry. A
// session without an expiry never expires.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Store is the read/write/invalidate surface over the current session.
type Store interface {
	Get() (Session, bool)
	Set(Session)
	Invalidate()
}

// claims mirrors what the clinic backend puts in its tokens.
type claims struct {
	Role string `json:"role"`
	ID   int    `json:"id"`
	jwt.RegisteredClaims
}

// FromToken builds a Session from a backend-issued JWT. The signature is not
// checked; the backend does that on every call.
func FromToken(token string) (Session, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	var c claims
	if _, _, err := parser.ParseUnverified(token, &c); err != nil {
		return Session{}, fmt.Errorf("parse session token: %w", err)
	}

	s := Session{
		Token:     token,
		Username:  c.Subject,
		Role:      c.Role,
		AccountID: c.ID,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s, nil
}

// MemoryStore is an in-process Store. The zero value is not usable; call
// NewMemoryStore.
type MemoryStore struct {
	mu      sync.RWMutex
	current *Session
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Get returns the current session. An expired session is reported as absent.
func (m *MemoryStore) Get() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil || m.current.Expired(m.now()) {
		return Session{}, false
	}
	return *m.current, true
}

func (m *MemoryStore) Set(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &s
}

func (m *MemoryStore) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}

// Token returns the bearer token of the current session, or "" when signed
// out. It lets a MemoryStore serve as the API client's token source.
func (m *MemoryStore) Token() string {
	s, ok := m.Get()
	if !ok {
		return ""
	}
	return s.Token
}

package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"scbank/internal/core"
)

var (
	ErrInvalidToken   = errors.New("invalid or expired session token")
	ErrSessionExpired = errors.New("session expired")
)

// Claims is the JWT payload of a session handle. The token carries only the
// session id; all state lives server-side in the machine.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Session pairs a machine with its identity and idle-tracking metadata.
type Session struct {
	ID        string
	CreatedAt time.Time
	Machine   *Machine

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Manager owns every live session, issues and verifies session tokens, and
// evicts sessions that have been idle past their TTL.
type Manager struct {
	clock        Clock
	secret       []byte
	ttl          time.Duration
	seedReceipts []core.Receipt

	mu       sync.Mutex
	sessions map[string]*Session

	stopSweep    chan struct{}
	shutdownOnce sync.Once
}

// NewManager creates a session manager. The sweep goroutine starts
// immediately; call Close on shutdown.
func NewManager(clock Clock, secret []byte, ttl time.Duration, seedReceipts []core.Receipt) *Manager {
	if clock == nil {
		clock = SystemClock()
	}
	m := &Manager{
		clock:        clock,
		secret:       secret,
		ttl:          ttl,
		seedReceipts: append([]core.Receipt(nil), seedReceipts...),
		sessions:     make(map[string]*Session),
		stopSweep:    make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Begin creates a session at the landing screen and returns it with its
// signed token.
func (m *Manager) Begin() (*Session, string, error) {
	now := m.clock.Now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		Machine:   NewMachine(m.clock, m.seedReceipts),
		lastSeen:  now,
	}

	claims := Claims{
		SessionID: s.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, "", fmt.Errorf("sign session token: %w", err)
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, token, nil
}

// Resolve verifies a token, looks up its session, marks it seen and
// advances its timed flows.
func (m *Manager) Resolve(token string) (*Session, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.clock.Now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	m.mu.Lock()
	s, ok := m.sessions[claims.SessionID]
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionExpired
	}
	s.touch(m.clock.Now())
	s.Machine.Advance()
	return s, nil
}

// End removes a session outright (used by tests and hard resets; the normal
// path is the goodbye flow, after which the machine is reusable at landing).
func (m *Manager) End(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close stops the idle sweep. Safe to call more than once.
func (m *Manager) Close() {
	m.shutdownOnce.Do(func() {
		close(m.stopSweep)
	})
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictIdle()
		case <-m.stopSweep:
			return
		}
	}
}

func (m *Manager) evictIdle() {
	cutoff := m.clock.Now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}

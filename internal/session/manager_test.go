package session

import (
	"errors"
	"testing"
	"time"
)

func newTestManager(t *testing.T, clock Clock) *Manager {
	t.Helper()
	m := NewManager(clock, []byte("test-secret"), 30*time.Minute, seedReceipts())
	t.Cleanup(m.Close)
	return m
}

func TestManagerBeginAndResolve(t *testing.T) {
	clock := newFakeClock()
	mgr := newTestManager(t, clock)

	s, token, err := mgr.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if s.ID == "" || token == "" {
		t.Fatalf("Begin returned empty id or token")
	}
	if got := s.Machine.Snapshot().Screen; got != ScreenLanding {
		t.Fatalf("new session screen = %q", got)
	}

	resolved, err := mgr.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.ID != s.ID {
		t.Fatalf("Resolve returned session %q, want %q", resolved.ID, s.ID)
	}
}

func TestManagerResolveRejectsBadTokens(t *testing.T) {
	clock := newFakeClock()
	mgr := newTestManager(t, clock)

	if _, err := mgr.Resolve("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage token: err = %v", err)
	}

	other := NewManager(clock, []byte("other-secret"), 30*time.Minute, nil)
	defer other.Close()
	_, foreign, err := other.Begin()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Resolve(foreign); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token signed with another secret: err = %v", err)
	}
}

func TestManagerResolveAdvancesMachine(t *testing.T) {
	clock := newFakeClock()
	mgr := newTestManager(t, clock)

	s, token, err := mgr.Begin()
	if err != nil {
		t.Fatal(err)
	}
	s.Machine.RequestLogin()
	if err := s.Machine.SubmitCredentials("a@b.c", "pw"); err != nil {
		t.Fatal(err)
	}
	clock.advance(securityStepCount * securityStepInterval)

	resolved, err := mgr.Resolve(token)
	if err != nil {
		t.Fatal(err)
	}
	if got := resolved.Machine.Snapshot().Screen; got != ScreenDashboard {
		t.Fatalf("screen after resolve = %q", got)
	}
}

func TestManagerEvictsIdleSessions(t *testing.T) {
	clock := newFakeClock()
	mgr := newTestManager(t, clock)

	_, staleToken, err := mgr.Begin()
	if err != nil {
		t.Fatal(err)
	}
	clock.advance(20 * time.Minute)
	fresh, _, err := mgr.Begin()
	if err != nil {
		t.Fatal(err)
	}
	clock.advance(15 * time.Minute)

	mgr.evictIdle()
	if got := mgr.Count(); got != 1 {
		t.Fatalf("sessions after eviction = %d, want 1", got)
	}
	if _, err := mgr.Resolve(staleToken); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("stale session: err = %v", err)
	}

	mgr.End(fresh.ID)
	if got := mgr.Count(); got != 0 {
		t.Fatalf("sessions after End = %d", got)
	}
}

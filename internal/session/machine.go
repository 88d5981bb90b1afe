// Package session implements the login/logout lifecycle of the demo bank:
// a screen state machine with timed, cancellable sub-flows, the dashboard
// view navigation, and the per-session receipt list. A Manager owns many
// machines and hands out JWT session handles.
//
// Timed states never set timers. Each one records its entry instant and
// Advance derives every transition due at the observed time, so tests drive
// the machine with a fake clock and a late observer still sees the same
// sequence of states it would have seen live.
package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"scbank/internal/core"
)

// Screen is the top-level screen. Exactly one is active at a time.
type Screen string

const (
	ScreenLanding       Screen = "landing"
	ScreenLogin         Screen = "login"
	ScreenSecurityCheck Screen = "security-check"
	ScreenDashboard     Screen = "dashboard"
	ScreenGoodbye       Screen = "goodbye"
)

// BiometricStatus is the sub-state of the biometric login flow.
type BiometricStatus string

const (
	BiometricIdle     BiometricStatus = "idle"
	BiometricScanning BiometricStatus = "scanning"
	BiometricSuccess  BiometricStatus = "success"
)

// Timings of the simulated flows. Exact durations are not a contract;
// ordering and eventual completion are.
const (
	securityStepInterval = time.Second
	securityStepCount    = 4
	goodbyeDuration      = 3 * time.Second
	biometricScanTime    = 2 * time.Second
	biometricSuccessHold = time.Second
)

// SecurityStepLabels are the four ordered steps of the security check.
var SecurityStepLabels = [securityStepCount]string{
	"Verifying Identity...",
	"Securing Connection...",
	"Analyzing Threats...",
	"Access Granted",
}

var (
	ErrEmptyCredentials = errors.New("email and password are required")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUnknownView      = errors.New("unknown view")
)

// SecurityStep is the observed status of one security-check step.
type SecurityStep struct {
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// Snapshot is a point-in-time observation of the machine.
type Snapshot struct {
	Screen        Screen          `json:"screen"`
	Authenticated bool            `json:"authenticated"`
	ActiveView    View            `json:"activeView,omitempty"`
	Biometric     BiometricStatus `json:"biometric,omitempty"`
	SecuritySteps []SecurityStep  `json:"securitySteps,omitempty"`
}

// Machine is the session/view state machine. All methods are safe for
// concurrent use; every entry point advances the timed flows to the current
// clock reading before handling the event, so no event can observe a stale
// screen.
var _ Navigator = (*Machine)(nil)

type Machine struct {
	mu    sync.Mutex
	clock Clock

	screen        Screen
	authenticated bool
	activeView    View
	enteredAt     time.Time // entry instant of the current timed screen

	biometric   BiometricStatus
	biometricAt time.Time

	seedReceipts []core.Receipt
	receipts     []core.Receipt
}

// NewMachine creates a machine at the landing screen. The seed receipts are
// what every fresh authenticated session starts with; runtime receipts are
// discarded when the session returns to landing.
func NewMachine(clock Clock, seedReceipts []core.Receipt) *Machine {
	if clock == nil {
		clock = SystemClock()
	}
	m := &Machine{
		clock:        clock,
		screen:       ScreenLanding,
		activeView:   ViewDashboard,
		biometric:    BiometricIdle,
		seedReceipts: append([]core.Receipt(nil), seedReceipts...),
	}
	m.receipts = append([]core.Receipt(nil), m.seedReceipts...)
	return m
}

// RequestLogin moves landing to the login screen. Any other screen ignores
// the event.
func (m *Machine) RequestLogin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advanceLocked(m.clock.Now())
	if m.screen == ScreenLanding {
		m.screen = ScreenLogin
	}
}

// CancelLogin returns from the login screen to landing, aborting any
// biometric scan in progress so its success can never fire afterwards.
func (m *Machine) CancelLogin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advanceLocked(m.clock.Now())
	if m.screen == ScreenLogin {
		m.screen = ScreenLanding
		m.biometric = BiometricIdle
	}
}

// SubmitCredentials starts the security check. Empty email or password is
// rejected locally with no transition; any non-empty pair succeeds, a
// deliberate property of the mocked system. Outside the login screen the
// event is ignored.
func (m *Machine) SubmitCredentials(email, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock.Now()
	m.advanceLocked(now)
	if m.screen != ScreenLogin {
		return nil
	}
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return ErrEmptyCredentials
	}
	m.beginSecurityCheckLocked(now)
	return nil
}

// StartBiometricScan begins the scan sub-flow on the login screen. A scan
// already in progress is not restarted.
func (m *Machine) StartBiometricScan() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock.Now()
	m.advanceLocked(now)
	if m.screen != ScreenLogin || m.biometric != BiometricIdle {
		return
	}
	m.biometric = BiometricScanning
	m.biometricAt = now
}

// CancelBiometricScan aborts a scan (modal closed). A cancelled scan never
// reaches success.
func (m *Machine) CancelBiometricScan() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advanceLocked(m.clock.Now())
	if m.biometric == BiometricScanning {
		m.biometric = BiometricIdle
	}
}

// RequestLogout moves the dashboard to the goodbye screen. The goodbye
// screen itself ignores the event, so it cannot be re-entered recursively.
func (m *Machine) RequestLogout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock.Now()
	m.advanceLocked(now)
	if m.screen != ScreenDashboard {
		return
	}
	m.screen = ScreenGoodbye
	m.authenticated = false
	m.enteredAt = now
}

// GoTo activates a dashboard sub-view. Every known view is always legal.
func (m *Machine) GoTo(v View) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advanceLocked(m.clock.Now())
	if m.screen != ScreenDashboard {
		return ErrNotAuthenticated
	}
	if !v.Valid() {
		return ErrUnknownView
	}
	m.activeView = v
	return nil
}

// Back navigates to the active view's back target (loans for the loan
// application, dashboard for everything else).
func (m *Machine) Back() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advanceLocked(m.clock.Now())
	if m.screen != ScreenDashboard {
		return
	}
	m.activeView = m.activeView.BackTarget()
}

// AddReceipt appends a synthesized receipt to the session. Receipts are
// newest-first, matching the receipts view.
func (m *Machine) AddReceipt(r core.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advanceLocked(m.clock.Now())
	if m.screen != ScreenDashboard {
		return ErrNotAuthenticated
	}
	if err := r.Validate(); err != nil {
		return err
	}
	m.receipts = append([]core.Receipt{r}, m.receipts...)
	return nil
}

// Receipts returns a copy of the session's receipt list.
func (m *Machine) Receipts() []core.Receipt {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advanceLocked(m.clock.Now())
	return append([]core.Receipt(nil), m.receipts...)
}

// Advance applies every transition due at the current clock reading.
// Handlers call it implicitly; it exists for callers that only observe.
func (m *Machine) Advance() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advanceLocked(m.clock.Now())
}

// Snapshot observes the machine at the current clock reading.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock.Now()
	m.advanceLocked(now)

	snap := Snapshot{
		Screen:        m.screen,
		Authenticated: m.authenticated,
	}
	switch m.screen {
	case ScreenLogin:
		snap.Biometric = m.biometric
	case ScreenSecurityCheck:
		snap.SecuritySteps = m.securityStepsLocked(now)
	case ScreenDashboard:
		snap.ActiveView = m.activeView
	}
	return snap
}

func (m *Machine) securityStepsLocked(now time.Time) []SecurityStep {
	elapsed := now.Sub(m.enteredAt)
	steps := make([]SecurityStep, securityStepCount)
	for i := range steps {
		steps[i] = SecurityStep{
			Label: SecurityStepLabels[i],
			Done:  elapsed >= time.Duration(i+1)*securityStepInterval,
		}
	}
	return steps
}

func (m *Machine) beginSecurityCheckLocked(at time.Time) {
	m.screen = ScreenSecurityCheck
	m.enteredAt = at
	m.biometric = BiometricIdle
}

// advanceLocked replays all timed transitions due at the observed instant.
// It loops because a single late observation can span several deadlines
// (scan success, login, full security check, even goodbye).
func (m *Machine) advanceLocked(now time.Time) {
	for {
		switch m.screen {
		case ScreenLogin:
			switch m.biometric {
			case BiometricScanning:
				deadline := m.biometricAt.Add(biometricScanTime)
				if now.Before(deadline) {
					return
				}
				m.biometric = BiometricSuccess
				continue
			case BiometricSuccess:
				deadline := m.biometricAt.Add(biometricScanTime + biometricSuccessHold)
				if now.Before(deadline) {
					return
				}
				// Equivalent to submitting credentials; the check's
				// entry instant is the deadline, not the observation.
				m.beginSecurityCheckLocked(deadline)
				continue
			default:
				return
			}
		case ScreenSecurityCheck:
			deadline := m.enteredAt.Add(securityStepCount * securityStepInterval)
			if now.Before(deadline) {
				return
			}
			m.screen = ScreenDashboard
			m.authenticated = true
			m.activeView = ViewDashboard
			continue
		case ScreenGoodbye:
			deadline := m.enteredAt.Add(goodbyeDuration)
			if now.Before(deadline) {
				return
			}
			m.screen = ScreenLanding
			m.authenticated = false
			m.activeView = ViewDashboard
			m.receipts = append([]core.Receipt(nil), m.seedReceipts...)
			continue
		default:
			return
		}
	}
}

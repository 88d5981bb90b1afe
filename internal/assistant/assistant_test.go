package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"scbank/internal/catalog"
	"scbank/internal/services"
	"scbank/internal/session"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newDispatcher() *Dispatcher {
	cat := catalog.New()
	return NewDispatcher(cat, services.NewTransferService(cat, services.NewAuditService(nil, nil), nil))
}

func dashboardMachine(t *testing.T) *session.Machine {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := session.NewMachine(clock, nil)
	m.RequestLogin()
	if err := m.SubmitCredentials("user@demo.bank", "hunter2"); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	clock.now = clock.now.Add(5 * time.Second)
	return m
}

func TestDispatcherExecute(t *testing.T) {
	d := newDispatcher()
	m := dashboardMachine(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		intent     Intent
		wantStatus string
		contains   string
	}{
		{
			name:       "account balance defaults to checking",
			intent:     Intent{Command: CmdGetAccountBalance, Args: map[string]string{}},
			wantStatus: StatusSuccess,
			contains:   "Checking account balance",
		},
		{
			name:       "account balance by type",
			intent:     Intent{Command: CmdGetAccountBalance, Args: map[string]string{"accountType": "savings"}},
			wantStatus: StatusSuccess,
			contains:   "Savings",
		},
		{
			name:       "unknown account type",
			intent:     Intent{Command: CmdGetAccountBalance, Args: map[string]string{"accountType": "offshore"}},
			wantStatus: StatusError,
			contains:   "couldn't find",
		},
		{
			name:       "recent transactions",
			intent:     Intent{Command: CmdGetRecentTransactions, Args: map[string]string{"count": "2"}},
			wantStatus: StatusSuccess,
			contains:   "latest transactions",
		},
		{
			name:       "transfer",
			intent:     Intent{Command: CmdInitiateTransfer, Args: map[string]string{"contact": "Jane Doe", "amountCents": "5000"}},
			wantStatus: StatusSuccess,
			contains:   "sent $50 to Jane Doe",
		},
		{
			name:       "transfer without amount",
			intent:     Intent{Command: CmdInitiateTransfer, Args: map[string]string{"contact": "Jane Doe"}},
			wantStatus: StatusError,
			contains:   "amount",
		},
		{
			name:       "currency conversion",
			intent:     Intent{Command: CmdConvertCurrency, Args: map[string]string{"amountCents": "10000", "currency": "sek"}},
			wantStatus: StatusSuccess,
			contains:   "1045.00 SEK",
		},
		{
			name:       "unknown command",
			intent:     Intent{Command: "OrderPizza", Args: map[string]string{}},
			wantStatus: StatusError,
			contains:   "don't know",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Execute(ctx, m, "sess-1", tt.intent)
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q (message: %s)", got.Status, tt.wantStatus, got.Message)
			}
			if !strings.Contains(got.Message, tt.contains) {
				t.Errorf("message = %q, want substring %q", got.Message, tt.contains)
			}
		})
	}
}

func TestNewRouterWithoutAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := NewRouter(context.Background(), "gemini-2.0-flash"); !errors.Is(err, ErrRouterDisabled) {
		t.Errorf("NewRouter() error = %v, want ErrRouterDisabled", err)
	}
}

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain json untouched",
			raw:  `{"command":"GetAccountBalance","args":{}}`,
			want: `{"command":"GetAccountBalance","args":{}}`,
		},
		{
			name: "json fence stripped",
			raw:  "```json\n{\"command\":\"ConvertCurrency\"}\n```",
			want: `{"command":"ConvertCurrency"}`,
		},
		{
			name: "bare fence stripped",
			raw:  "```\n{\"command\":\"X\"}\n```",
			want: `{"command":"X"}`,
		},
		{
			name: "leading prose dropped",
			raw:  "Sure, here is the JSON:\n{\"command\":\"X\",\"args\":{}}",
			want: `{"command":"X","args":{}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanModelJSON(tt.raw); got != tt.want {
				t.Errorf("cleanModelJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

package query

import (
	"testing"
	"time"

	"scbank/internal/core"
)

func testAccounts() []core.Account {
	return []core.Account{
		{ID: "acc-1", Type: "Checking", Number: "•••• 1234"},
		{ID: "acc-2", Type: "Savings", Number: "•••• 5678"},
	}
}

func TestActivePills(t *testing.T) {
	accounts := testAccounts()

	t.Run("default criteria produce no pills", func(t *testing.T) {
		if pills := ActivePills(core.DefaultCriteria(), accounts); len(pills) != 0 {
			t.Errorf("pills = %v, want none", pills)
		}
	})

	t.Run("one pill per active predicate", func(t *testing.T) {
		c := core.FilterCriteria{
			SearchTerm: "netflix",
			Type:       "expense",
			AccountIDs: []string{"acc-1", "acc-2"},
			Category:   "Subscription",
			DateRange: core.DateRange{
				Start: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, time.July, 31, 0, 0, 0, 0, time.UTC),
			},
		}
		pills := ActivePills(c, accounts)
		if len(pills) != 7 {
			t.Fatalf("pills = %d, want 7 (search, type, category, two dates, two accounts)", len(pills))
		}
		labels := map[string]string{}
		for _, p := range pills {
			labels[p.Kind+"/"+p.Value] = p.Label
		}
		if labels["type/"] != "Type: Expense" {
			t.Errorf("type pill label = %q", labels["type/"])
		}
		if labels["account/acc-1"] != "Acc: 1234" {
			t.Errorf("account pill label = %q", labels["account/acc-1"])
		}
		if labels["dateStart/"] != "From: Jul 1, 2024" {
			t.Errorf("date pill label = %q", labels["dateStart/"])
		}
	})

	t.Run("unknown account ids are skipped", func(t *testing.T) {
		c := core.DefaultCriteria()
		c.AccountIDs = []string{"acc-99"}
		if pills := ActivePills(c, accounts); len(pills) != 0 {
			t.Errorf("pills = %v, want none for unknown id", pills)
		}
	})
}

func TestPillRemove(t *testing.T) {
	base := core.FilterCriteria{
		SearchTerm: "netflix",
		Type:       "expense",
		AccountIDs: []string{"acc-1", "acc-2"},
		Category:   "Subscription",
		DateRange: core.DateRange{
			Start: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.July, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	tests := []struct {
		name  string
		pill  Pill
		check func(t *testing.T, got core.FilterCriteria)
	}{
		{
			name: "search pill clears only the term",
			pill: Pill{Kind: PillSearch},
			check: func(t *testing.T, got core.FilterCriteria) {
				if got.SearchTerm != "" {
					t.Errorf("SearchTerm = %q, want empty", got.SearchTerm)
				}
				if got.Type != "expense" || got.Category != "Subscription" || len(got.AccountIDs) != 2 {
					t.Error("other predicates were touched")
				}
			},
		},
		{
			name: "type pill resets to all",
			pill: Pill{Kind: PillType},
			check: func(t *testing.T, got core.FilterCriteria) {
				if got.Type != core.TypeAll {
					t.Errorf("Type = %q, want %q", got.Type, core.TypeAll)
				}
			},
		},
		{
			name: "date pills are independent",
			pill: Pill{Kind: PillDateStart},
			check: func(t *testing.T, got core.FilterCriteria) {
				if !got.DateRange.Start.IsZero() {
					t.Error("Start was not cleared")
				}
				if got.DateRange.End.IsZero() {
					t.Error("End should survive removing the start pill")
				}
			},
		},
		{
			name: "account pill removes only its id",
			pill: Pill{Kind: PillAccount, Value: "acc-1"},
			check: func(t *testing.T, got core.FilterCriteria) {
				if len(got.AccountIDs) != 1 || got.AccountIDs[0] != "acc-2" {
					t.Errorf("AccountIDs = %v, want [acc-2]", got.AccountIDs)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.pill.Remove(base))
		})
	}
}

func TestPillRemoveDoesNotAliasInput(t *testing.T) {
	base := core.DefaultCriteria()
	base.AccountIDs = []string{"acc-1", "acc-2"}

	Pill{Kind: PillAccount, Value: "acc-1"}.Remove(base)
	if len(base.AccountIDs) != 2 || base.AccountIDs[0] != "acc-1" {
		t.Errorf("input criteria mutated: %v", base.AccountIDs)
	}
}

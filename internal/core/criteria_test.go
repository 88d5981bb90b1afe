package core

import (
	"testing"
	"time"
)

func TestDateRangeContains(t *testing.T) {
	start := time.Date(2024, time.July, 10, 15, 30, 0, 0, time.UTC)
	end := time.Date(2024, time.July, 20, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		r     DateRange
		t     time.Time
		want  bool
	}{
		{"open range contains everything", DateRange{}, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"start is floored to midnight", DateRange{Start: start}, time.Date(2024, time.July, 10, 0, 0, 1, 0, time.UTC), true},
		{"before start day excluded", DateRange{Start: start}, time.Date(2024, time.July, 9, 23, 59, 59, 0, time.UTC), false},
		{"end is ceiled to end of day", DateRange{End: end}, time.Date(2024, time.July, 20, 23, 59, 59, 0, time.UTC), true},
		{"after end day excluded", DateRange{End: end}, time.Date(2024, time.July, 21, 0, 0, 0, 0, time.UTC), false},
		{"both bounds", DateRange{Start: start, End: end}, time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC), true},
		{"same-day range contains that day", DateRange{Start: start, End: start}, time.Date(2024, time.July, 10, 18, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Contains(tt.t); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestFilterCriteriaIsDefault(t *testing.T) {
	if !DefaultCriteria().IsDefault() {
		t.Error("DefaultCriteria() should be default")
	}

	c := DefaultCriteria()
	c.SearchTerm = "x"
	if c.IsDefault() {
		t.Error("criteria with a search term should not be default")
	}

	c = DefaultCriteria()
	c.AccountIDs = []string{"acc-1"}
	if c.IsDefault() {
		t.Error("criteria with an account restriction should not be default")
	}
}

func TestFilterCriteriaClone(t *testing.T) {
	c := DefaultCriteria()
	c.AccountIDs = []string{"acc-1", "acc-2"}

	cp := c.Clone()
	cp.AccountIDs[0] = "changed"
	if c.AccountIDs[0] != "acc-1" {
		t.Error("Clone shares the account id slice")
	}
}

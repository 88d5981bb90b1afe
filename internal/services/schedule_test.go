package services

import (
	"testing"
	"time"

	"scbank/internal/core"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNextDaters(t *testing.T) {
	tests := []struct {
		name      string
		frequency core.Frequency
		from      time.Time
		want      time.Time
	}{
		{"weekly adds seven days", core.Weekly, d(2024, time.July, 10), d(2024, time.July, 17)},
		{"weekly crosses month boundary", core.Weekly, d(2024, time.July, 29), d(2024, time.August, 5)},
		{"biweekly adds fourteen days", core.BiWeekly, d(2024, time.July, 10), d(2024, time.July, 24)},
		{"monthly keeps the day of month", core.Monthly, d(2024, time.July, 15), d(2024, time.August, 15)},
		{"monthly clamps day 31 to shorter month", core.Monthly, d(2024, time.August, 31), d(2024, time.September, 30)},
		{"monthly clamps to february", core.Monthly, d(2024, time.January, 30), d(2024, time.February, 29)},
		{"yearly keeps the date", core.Yearly, d(2024, time.March, 10), d(2025, time.March, 10)},
		{"yearly clamps leap day", core.Yearly, d(2024, time.February, 29), d(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := GetNextDater(tt.frequency)
			if err != nil {
				t.Fatalf("GetNextDater(%s) error = %v", tt.frequency, err)
			}
			got := strategy.NextAfter(tt.from)
			if !got.Equal(tt.want) {
				t.Errorf("NextAfter(%v) = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}

func TestGetNextDaterUnknownFrequency(t *testing.T) {
	if _, err := GetNextDater(core.Frequency("Daily")); err == nil {
		t.Error("expected error for unknown frequency")
	}
}

func TestUpcomingCharges(t *testing.T) {
	payment := core.RecurringPayment{
		ID: "rec-1", Recipient: "Netflix", Frequency: core.Monthly,
		NextDate: d(2024, time.August, 10),
	}

	t.Run("future next date starts the projection", func(t *testing.T) {
		now := d(2024, time.July, 26)
		dates, err := UpcomingCharges(payment, now, 3)
		if err != nil {
			t.Fatalf("UpcomingCharges() error = %v", err)
		}
		want := []time.Time{d(2024, time.August, 10), d(2024, time.September, 10), d(2024, time.October, 10)}
		for i := range want {
			if !dates[i].Equal(want[i]) {
				t.Errorf("dates[%d] = %v, want %v", i, dates[i], want[i])
			}
		}
	})

	t.Run("stale next date is rolled forward past now", func(t *testing.T) {
		now := d(2024, time.October, 1)
		dates, err := UpcomingCharges(payment, now, 1)
		if err != nil {
			t.Fatalf("UpcomingCharges() error = %v", err)
		}
		if !dates[0].Equal(d(2024, time.October, 10)) {
			t.Errorf("dates[0] = %v, want 2024-10-10", dates[0])
		}
	})
}

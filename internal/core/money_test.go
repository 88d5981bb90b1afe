package core

import (
	"errors"
	"testing"
)

func TestMoneyDecimalString(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"whole dollars drop the fraction", 200000, "2000"},
		{"two decimal places", 1599, "15.99"},
		{"trailing zero trimmed", 5520, "55.2"},
		{"sub-dime fraction keeps leading zero", 1005, "10.05"},
		{"negative", -458000, "-4580"},
		{"zero", 0, "0"},
		{"cents only", 75, "0.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Money{Cents: tt.cents}.DecimalString()
			if got != tt.want {
				t.Errorf("DecimalString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"dot separator", "12.34", 1234, false},
		{"comma separator", "12,34", 1234, false},
		{"no fraction", "55", 5500, false},
		{"single decimal digit", "10.5", 1050, false},
		{"third decimal rounds half up", "12.346", 1235, false},
		{"third decimal rounds down", "12.344", 1234, false},
		{"leading dot", ".50", 50, false},
		{"surrounding whitespace", "  9.99 ", 999, false},
		{"empty", "", 0, true},
		{"negative rejected", "-5", 0, true},
		{"explicit plus rejected", "+5", 0, true},
		{"zero rejected", "0", 0, true},
		{"letters rejected", "12a.50", 0, true},
		{"double separator rejected", "1.2.3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("ParseDecimalToCents(%q) error = %v, want ErrInvalidAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimalToCents(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 100}).Validate(); err != nil {
		t.Errorf("positive amount: %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount error = %v, want ErrInvalidAmount", err)
	}
	if err := (Money{Cents: -100}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative amount error = %v, want ErrInvalidAmount", err)
	}
}

package query

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"scbank/internal/core"
)

func TestWriteCSV(t *testing.T) {
	records := []core.Transaction{
		{
			ID: "tx-1", Type: core.Expense, Description: `Joe's "Corner" Deli, Midtown`,
			Date: time.Date(2024, time.July, 25, 14, 0, 0, 0, time.UTC),
			Amount: usd(1599), AccountID: "acc-1", Category: "Dining",
			Status: core.StatusCompleted, RunningBalance: usd(200000),
		},
		{
			ID: "tx-2", Type: core.Income, Description: "Direct Deposit",
			Date: time.Date(2024, time.July, 21, 9, 0, 0, 0, time.UTC),
			Amount: usd(550000), AccountID: "acc-1", Category: "Salary",
			Status: core.StatusCompleted, RunningBalance: usd(2548055),
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("output missing UTF-8 BOM")
	}

	// Parse back what a spreadsheet tool would see.
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, []byte{0xEF, 0xBB, 0xBF})))
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("re-parsing exported CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 records", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][5] != "Amount (USD)" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][2] != `Joe's "Corner" Deli, Midtown` {
		t.Errorf("quoted field round-trip failed: %q", rows[1][2])
	}
	if rows[1][1] != "2024-07-25T14:00:00Z" {
		t.Errorf("date column = %q, want RFC3339 UTC", rows[1][1])
	}
	if rows[2][5] != "5500" {
		t.Errorf("amount column = %q, want minimal decimal form", rows[2][5])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil)
	if !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("WriteCSV(nil) error = %v, want ErrNothingToExport", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty export wrote %d bytes", buf.Len())
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, time.July, 26, 10, 30, 5, 0, time.UTC)
	got := ExportFilename("scb", now)
	want := "scb-transactions-2024-07-26T10-30-05Z.csv"
	if got != want {
		t.Errorf("ExportFilename() = %q, want %q", got, want)
	}
	if strings.ContainsRune(got, ':') {
		t.Errorf("filename contains a colon: %q", got)
	}
}

package query

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"scbank/internal/core"
)

// ErrNothingToExport is returned for an empty record set. Callers surface
// it as a user notice, not a failure.
var ErrNothingToExport = errors.New("nothing to export")

// utf8BOM lets spreadsheet tools that sniff encoding from the first bytes
// render currency symbols and accented characters correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var exportHeader = []string{
	"ID", "Date", "Description", "Category", "Type",
	"Amount (USD)", "Status", "Running Balance (USD)",
}

// WriteCSV writes the records as CSV in their given order: UTF-8 BOM, the
// header row, then one row per record. Fields containing commas, quotes or
// newlines are quoted with internal quotes doubled (RFC 4180).
func WriteCSV(w io.Writer, records []core.Transaction) error {
	if len(records) == 0 {
		return ErrNothingToExport
	}
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, tx := range records {
		row := []string{
			tx.ID,
			tx.Date.UTC().Format(time.RFC3339),
			tx.Description,
			tx.Category,
			string(tx.Type),
			tx.Amount.DecimalString(),
			string(tx.Status),
			tx.RunningBalance.DecimalString(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", tx.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ExportFilename builds a per-export unique name so repeated downloads to
// the same directory never silently overwrite each other:
// <prefix>-transactions-<ISO timestamp with colons replaced>.csv
func ExportFilename(prefix string, now time.Time) string {
	stamp := strings.ReplaceAll(now.UTC().Format(time.RFC3339), ":", "-")
	return fmt.Sprintf("%s-transactions-%s.csv", prefix, stamp)
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scbank/internal/catalog"
	"scbank/internal/cli"
	"scbank/internal/core"
	"scbank/internal/query"
)

// scbank-export writes a filtered transaction CSV to the export
// directory without going through the HTTP server.
func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	var (
		search    = flag.String("search", "", "substring to match in descriptions")
		txType    = flag.String("type", core.TypeAll, "transaction type: all, income or expense")
		accounts  = flag.String("accounts", "", "comma-separated account ids")
		category  = flag.String("category", core.CategoryAll, "category name, or 'all'")
		dateStart = flag.String("date-start", "", "start date (YYYY-MM-DD)")
		dateEnd   = flag.String("date-end", "", "end date (YYYY-MM-DD)")
	)
	flag.Parse()

	cfg := cli.LoadAndValidateConfig(logger)

	criteria := core.DefaultCriteria()
	criteria.SearchTerm = strings.TrimSpace(*search)
	criteria.Type = *txType
	criteria.Category = *category
	if *accounts != "" {
		for _, id := range strings.Split(*accounts, ",") {
			if id = strings.TrimSpace(id); id != "" {
				criteria.AccountIDs = append(criteria.AccountIDs, id)
			}
		}
	}
	if *dateStart != "" {
		t, err := time.Parse("2006-01-02", *dateStart)
		if err != nil {
			logger.Error("Invalid start date", "error", err, "value", *dateStart)
			os.Exit(1)
		}
		criteria.DateRange.Start = t
	}
	if *dateEnd != "" {
		t, err := time.Parse("2006-01-02", *dateEnd)
		if err != nil {
			logger.Error("Invalid end date", "error", err, "value", *dateEnd)
			os.Exit(1)
		}
		criteria.DateRange.End = t
	}

	cat := catalog.NewFromDir(cfg.DataDir)
	records := query.Filter(cat.Transactions(), criteria)
	if len(records) == 0 {
		logger.Error("No transactions match the given filters")
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.ExportDir, 0755); err != nil {
		logger.Error("Failed to create export directory", "error", err, "dir", cfg.ExportDir)
		os.Exit(1)
	}

	path := filepath.Join(cfg.ExportDir, query.ExportFilename(cfg.ExportPrefix, time.Now()))
	f, err := os.Create(path)
	if err != nil {
		logger.Error("Failed to create export file", "error", err, "path", path)
		os.Exit(1)
	}
	defer f.Close()

	if err := query.WriteCSV(f, records); err != nil {
		logger.Error("CSV export failed", "error", err)
		os.Exit(1)
	}

	fmt.Println(path)
	logger.Info("Export written", "path", path, "transactions", len(records))
}

// Package ingest reads tabular transaction exports. It is the simple
// alternate input path next to the statement parser: plain rows, no
// pattern extraction.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/conniexu444/parse-and-track-spending/internal/models"
	"github.com/conniexu444/parse-and-track-spending/internal/parser"
)

// Columns expected in a transaction export. Header matching is
// case-insensitive; extra columns are ignored.
var requiredColumns = []string{"date", "description", "amount"}

// ReadFile reads a CSV transaction export from disk.
func ReadFile(path string) ([]models.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// Read parses a CSV transaction export with a date,description,amount
// header. A negative amount marks a credit; everything else is a debit.
// Rows share the normalizers and dedup identity scheme of the statement
// parser, so ids remain stable for identical input.
func Read(r io.Reader) ([]models.Transaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	headers, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := toIndex(headers)
	for _, k := range requiredColumns {
		if _, ok := col[k]; !ok {
			return nil, fmt.Errorf("missing column: %s", k)
		}
	}

	dedup := parser.NewDeduper()
	txns := make([]models.Transaction, 0)
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		dateStr := rec[col["date"]]
		desc := strings.TrimSpace(rec[col["description"]])
		amountStr := rec[col["amount"]]

		timestamp, err := parseDateFlexible(dateStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		credit := strings.Contains(amountStr, "-")
		amount := parser.NormalizeAmount(amountStr)

		if txn, ok := dedup.Finalize(timestamp, amount, desc, credit); ok {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func toIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

// parseDateFlexible accepts the date layouts seen in card exports,
// normalized to UTC midnight.
func parseDateFlexible(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layouts := []string{
		"2006-01-02",
		"01/02/2006",
		"01/02/06",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("date parse failed for %q: %w", s, lastErr)
}

package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/conniexu444/parse-and-track-spending/internal/models"
	"github.com/conniexu444/parse-and-track-spending/internal/parser"
)

// CSVWriter writes parsed transactions to CSV.
type CSVWriter struct {
	// IncludeTotals appends spend/credit/net summary rows after the
	// transaction rows.
	IncludeTotals bool
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, txns)
}

// Write writes transactions in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, txns []models.Transaction) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	header := []string{"ID", "Date", "Title", "Type", "Amount"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range txns {
		row := []string{
			txn.ID,
			txn.Timestamp.UTC().Format("2006-01-02"),
			txn.Title,
			txn.Type,
			formatAmount(txn.Amount),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	if w.IncludeTotals {
		totals := parser.Aggregate(txns)
		rows := [][]string{
			{"# Total Spent", "", "", "", formatAmount(totals.TotalSpent)},
			{"# Total Credits", "", "", "", formatAmount(totals.TotalCredits)},
			{"# Net Spending", "", "", "", formatAmount(totals.NetSpending)},
		}
		for _, row := range rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write totals row: %w", err)
			}
		}
	}

	return nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

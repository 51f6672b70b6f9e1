// Package verify runs the operational statement-verification harness: it
// parses every statement in a fixture directory and checks the aggregated
// totals against fixture-declared expected values.
package verify

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/conniexu444/parse-and-track-spending/internal/extractor"
	"github.com/conniexu444/parse-and-track-spending/internal/models"
	"github.com/conniexu444/parse-and-track-spending/internal/parser"
)

// Tolerance is the absolute allowance, in currency units, when comparing
// calculated totals against expected totals.
const Tolerance = 0.01

// Status classifies the outcome for one statement document.
type Status string

const (
	StatusPass       Status = "PASS"
	StatusFail       Status = "FAIL"
	StatusNoExpected Status = "NO_EXPECTED"
	StatusError      Status = "ERROR"
)

// Result holds the verification outcome for one statement document.
type Result struct {
	Document   string
	RunID      string
	Status     Status
	Calculated models.Totals
	Expected   *models.Totals
	Mismatches []string
	Err        string
}

// Summary counts results by status.
type Summary struct {
	Passed     int
	Failed     int
	NoExpected int
	Errors     int
}

// Run verifies every PDF statement in dir. Expected totals are keyed by
// file name without extension; documents without an entry are reported as NO_EXPECTED rather
// than failed. Extraction or parse failures for one document do not stop
// the run.
func Run(dir string, expected map[string]models.Totals, cleaner *parser.MerchantCleaner, log zerolog.Logger) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("statements directory: %w", err)
	}

	var results []Result
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		results = append(results, verifyDocument(dir, entry.Name(), expected, cleaner, log))
	}
	return results, nil
}

func verifyDocument(dir, name string, expected map[string]models.Totals, cleaner *parser.MerchantCleaner, log zerolog.Logger) Result {
	res := Result{Document: name, RunID: uuid.NewString()}
	log.Info().Str("document", name).Str("run_id", res.RunID).Msg("verifying statement")

	pages, err := extractor.ExtractText(filepath.Join(dir, name))
	if err != nil {
		res.Status = StatusError
		res.Err = err.Error()
		return res
	}

	issuer, err := parser.AutoDetect(pages)
	if err != nil {
		res.Status = StatusError
		res.Err = err.Error()
		return res
	}

	p, err := parser.NewWithCleaner(issuer, cleaner)
	if err != nil {
		res.Status = StatusError
		res.Err = err.Error()
		return res
	}

	txns, err := p.Parse(pages)
	if err != nil {
		res.Status = StatusError
		res.Err = err.Error()
		return res
	}

	res.Calculated = parser.Aggregate(txns)
	// Expected totals are keyed by the document stem: dots in map keys do
	// not survive the config layer.
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if want, ok := expected[stem]; ok {
		res.Expected = &want
		res.Status, res.Mismatches = Compare(res.Calculated, want)
	} else {
		res.Status = StatusNoExpected
	}

	log.Info().
		Str("document", name).
		Str("status", string(res.Status)).
		Int("transactions", len(txns)).
		Float64("total_spent", res.Calculated.TotalSpent).
		Float64("total_credits", res.Calculated.TotalCredits).
		Msg("statement verified")
	return res
}

// Compare checks calculated totals against expected totals within
// Tolerance and describes every mismatch.
func Compare(calculated, expected models.Totals) (Status, []string) {
	var mismatches []string
	if d := calculated.TotalSpent - expected.TotalSpent; math.Abs(d) >= Tolerance {
		mismatches = append(mismatches, fmt.Sprintf("total spent: expected %.2f, got %.2f (diff %+.2f)", expected.TotalSpent, calculated.TotalSpent, d))
	}
	if d := calculated.TotalCredits - expected.TotalCredits; math.Abs(d) >= Tolerance {
		mismatches = append(mismatches, fmt.Sprintf("total credits: expected %.2f, got %.2f (diff %+.2f)", expected.TotalCredits, calculated.TotalCredits, d))
	}
	if d := calculated.NetSpending - expected.NetSpending; math.Abs(d) >= Tolerance {
		mismatches = append(mismatches, fmt.Sprintf("net spending: expected %.2f, got %.2f (diff %+.2f)", expected.NetSpending, calculated.NetSpending, d))
	}

	if len(mismatches) > 0 {
		return StatusFail, mismatches
	}
	return StatusPass, nil
}

// Summarize counts results by status.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			s.Passed++
		case StatusFail:
			s.Failed++
		case StatusNoExpected:
			s.NoExpected++
		case StatusError:
			s.Errors++
		}
	}
	return s
}

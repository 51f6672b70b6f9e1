package parser

import (
	"regexp"
	"strconv"
	"time"

	"github.com/conniexu444/parse-and-track-spending/internal/models"
)

var nonAlphanumericPattern = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Deduper assigns stable identities to normalized transactions within one
// parse invocation. Repeated legitimate charges (same merchant, date and
// amount) get distinct occurrence suffixes; exact repeats of an already
// finalized id are dropped.
//
// A Deduper must not be shared across parse invocations: it carries the
// per-call occurrence counters that make ids unique.
type Deduper struct {
	counts map[string]int
	seen   map[string]struct{}
}

// NewDeduper returns an empty dedup context for a single parse invocation.
func NewDeduper() *Deduper {
	return &Deduper{
		counts: make(map[string]int),
		seen:   make(map[string]struct{}),
	}
}

// Finalize applies the output filters and, when the transaction survives,
// assigns its id and returns it. The second return value reports whether a
// transaction was produced: zero amounts, titles of two characters or less,
// and repeats of an already-finalized id all yield false.
func (d *Deduper) Finalize(timestamp time.Time, amount float64, title string, credit bool) (models.Transaction, bool) {
	flag := "CH"
	if credit {
		flag = "CR"
	}

	raw := flag + "-" + timestamp.UTC().Format(time.RFC3339) + "-" + formatAmount(amount) + "-" + title
	baseKey := nonAlphanumericPattern.ReplaceAllString(raw, "")

	// The counter advances even for candidates dropped below, matching the
	// historical id sequence.
	d.counts[baseKey]++
	id := baseKey + "-" + strconv.Itoa(d.counts[baseKey])

	if amount <= 0 || len([]rune(title)) <= 2 {
		return models.Transaction{}, false
	}
	if _, dup := d.seen[id]; dup {
		return models.Transaction{}, false
	}
	d.seen[id] = struct{}{}

	txn := models.Transaction{
		ID:        id,
		Timestamp: timestamp,
		Amount:    amount,
		Title:     title,
		Type:      models.TypeDebit,
	}
	if credit {
		txn.Title = "[CREDIT] " + title
		txn.Type = models.TypeCredit
	}
	return txn, true
}

// formatAmount renders an amount the way it is embedded in dedup keys:
// shortest decimal representation, no trailing zeros.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

package parser

import (
	"strings"
	"testing"
	"time"
)

var dedupDate = time.Date(2025, time.April, 19, 0, 0, 0, 0, time.UTC)

func TestDeduperOccurrenceSuffixes(t *testing.T) {
	d := NewDeduper()

	first, ok := d.Finalize(dedupDate, 5.75, "Starbucks", false)
	if !ok {
		t.Fatal("first transaction dropped")
	}
	second, ok := d.Finalize(dedupDate, 5.75, "Starbucks", false)
	if !ok {
		t.Fatal("second identical transaction dropped")
	}

	if !strings.HasSuffix(first.ID, "-1") || !strings.HasSuffix(second.ID, "-2") {
		t.Errorf("occurrence suffixes: got %q, %q", first.ID, second.ID)
	}
	if strings.TrimSuffix(first.ID, "-1") != strings.TrimSuffix(second.ID, "-2") {
		t.Errorf("base keys differ: %q vs %q", first.ID, second.ID)
	}
}

func TestDeduperFilters(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		title  string
	}{
		{"zero amount", 0, "Starbucks"},
		{"negative amount", -5, "Starbucks"},
		{"short title", 5.75, "AB"},
		{"empty title", 5.75, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDeduper()
			if _, ok := d.Finalize(dedupDate, tt.amount, tt.title, false); ok {
				t.Error("expected transaction to be dropped")
			}
		})
	}
}

// The finalized-id guard should be unreachable through normal use because
// the occurrence counter is monotonic per base key, but it must still hold
// if the counter is ever rewound.
func TestDeduperFinalizedIDGuard(t *testing.T) {
	d := NewDeduper()

	txn, ok := d.Finalize(dedupDate, 5.75, "Starbucks", false)
	if !ok {
		t.Fatal("first transaction dropped")
	}

	baseKey := strings.TrimSuffix(txn.ID, "-1")
	d.counts[baseKey]--

	if _, ok := d.Finalize(dedupDate, 5.75, "Starbucks", false); ok {
		t.Error("repeat of an already-finalized id must be dropped")
	}
}

func TestDeduperCreditPrefixAndType(t *testing.T) {
	d := NewDeduper()

	txn, ok := d.Finalize(dedupDate, 10, "Autopay", true)
	if !ok {
		t.Fatal("credit dropped")
	}
	if txn.Title != "[CREDIT] Autopay" {
		t.Errorf("title: got %q", txn.Title)
	}
	if txn.Type != "credit" {
		t.Errorf("type: got %q", txn.Type)
	}
	if !strings.HasPrefix(txn.ID, "CR") {
		t.Errorf("credit id should start with CR flag, got %q", txn.ID)
	}

	debit, _ := d.Finalize(dedupDate, 10, "Autopay", false)
	if debit.ID == txn.ID {
		t.Error("credit and debit of same line must have distinct ids")
	}
}

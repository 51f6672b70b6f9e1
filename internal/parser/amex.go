package parser

import (
	"regexp"
	"strings"

	"github.com/conniexu444/parse-and-track-spending/internal/models"
)

// AmexParser handles American Express card statement text.
//
// Amex statements list payments/credits and new charges in separate
// sections, each a run of line items shaped like:
//
//	04/19/25  TARGET 000012345 SOME CITY NY  $40.51 ⧫
//
// The ⧫ glyph is emitted by the statement renderer at the end of every line
// item and is what makes the amount token unambiguous.
type AmexParser struct {
	cleaner *MerchantCleaner
}

func (p *AmexParser) IssuerName() string {
	return "American Express"
}

// Section anchors. Go's regexp has no lookahead, so each region is located
// by finding its start anchor and then the earliest end anchor in the
// remaining text.
var (
	creditsStartPattern = regexp.MustCompile(`(?i)Credits\s+Amount`)
	creditsEndPattern   = regexp.MustCompile(`(?i)New Charges`)
	chargesStartPattern = regexp.MustCompile(`(?is)New Charges.*?Detail.*?Amount`)
	chargesEndPattern   = regexp.MustCompile(`(?i)Fees\s+Amount|Interest Charged|\d{4} Fees and Interest`)
)

// txnPattern matches one line item: a MM/DD/YY date, an optional
// continued-line marker, a description capped at a generous length so a
// missing terminator cannot swallow unrelated text, and a dollar amount
// followed by the renderer's end-of-item glyph.
var txnPattern = regexp.MustCompile(`(?s)(\d{2}/\d{2}/\d{2})\*?\s+(.{1,500}?)(-?\$[\d,]+\.\d{2})\s*⧫`)

// continuedHeaderPattern strips the page-continuation header that the
// renderer injects mid-description when a section spans a page break.
var continuedHeaderPattern = regexp.MustCompile(`(?s)Account Ending.*?Detail Continued\s+⧫\s+-\s+Pay Over Time.*?Amount\s+`)

// boilerplateMarkers flag page furniture that happens to match the line-item
// shape: customer-care blocks, payment-due banners and the website footer.
var boilerplateMarkers = []string{
	"Customer Care",
	"Payment Due Date",
	"Website: americanexpress",
}

// Parse extracts the normalized transactions from the statement's page
// text. Pages must be in document order: the charges region is bounded by
// anchors that follow the credits region. Missing sections are not an
// error; they simply contribute no transactions.
func (p *AmexParser) Parse(pages []string) ([]models.Transaction, error) {
	fullText := strings.Join(pages, " ")
	credits, charges := splitSections(fullText)

	dedup := NewDeduper()
	txns := make([]models.Transaction, 0)
	txns = p.matchSection(credits, true, dedup, txns)
	txns = p.matchSection(charges, false, dedup, txns)
	return txns, nil
}

// splitSections isolates the credits and charges regions of the joined
// statement text. Either region may be empty when its anchor is absent.
func splitSections(text string) (credits, charges string) {
	if loc := creditsStartPattern.FindStringIndex(text); loc != nil {
		rest := text[loc[1]:]
		end := len(rest)
		if m := creditsEndPattern.FindStringIndex(rest); m != nil {
			end = m[0]
		}
		credits = rest[:end]
	}

	if loc := chargesStartPattern.FindStringIndex(text); loc != nil {
		rest := text[loc[1]:]
		end := len(rest)
		if m := chargesEndPattern.FindStringIndex(rest); m != nil {
			end = m[0]
		}
		charges = rest[:end]
	}

	return credits, charges
}

// matchSection scans one region for line items and appends the surviving
// transactions. Matching is global and stateless: rescanning the same
// region always yields the same sequence.
func (p *AmexParser) matchSection(section string, credit bool, dedup *Deduper, txns []models.Transaction) []models.Transaction {
	for _, m := range txnPattern.FindAllStringSubmatch(section, -1) {
		dateText, rawDescription, amountText := m[1], m[2], m[3]

		// A negative amount inside the charges listing is a misplaced
		// credit or adjustment, not a purchase.
		if !credit && strings.HasPrefix(amountText, "-") {
			continue
		}

		descTrim := strings.TrimSpace(rawDescription)
		if isBoilerplate(descTrim) || len(descTrim) < 3 {
			continue
		}

		timestamp := normalizeDateText(dateText)

		rawClean := whitespacePattern.ReplaceAllString(rawDescription, " ")
		rawClean = continuedHeaderPattern.ReplaceAllString(rawClean, "")
		rawClean = strings.TrimSpace(rawClean)

		title := p.cleaner.CleanName(rawClean)
		amount := NormalizeAmount(amountText)

		if txn, ok := dedup.Finalize(timestamp, amount, title, credit); ok {
			txns = append(txns, txn)
		}
	}
	return txns
}

func isBoilerplate(description string) bool {
	for _, marker := range boilerplateMarkers {
		if strings.Contains(description, marker) {
			return true
		}
	}
	return false
}

package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// amountCharPattern keeps digits, dot, minus and comma; everything else
// (currency symbols, spaces, stray glyphs) is stripped before parsing.
var amountCharPattern = regexp.MustCompile(`[^\d.\-,]`)

// NormalizeAmount converts a currency string like "$1,234.56" or "40,51"
// into a non-negative numeric value. Sign is not retained: routing between
// credit and debit happens upstream, by section and by the negative-amount
// filter in the charges region. Unparseable input yields 0.
func NormalizeAmount(text string) float64 {
	cleaned := amountCharPattern.ReplaceAllString(text, "")

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")

	switch {
	case hasComma && hasDot:
		// Comma is a thousands separator when a dot is present.
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case hasComma:
		// Comma only: a trailing group of exactly two digits means the comma
		// is the decimal separator; otherwise it separates thousands.
		parts := strings.Split(cleaned, ",")
		if len(parts[len(parts)-1]) == 2 {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return math.Abs(n)
}

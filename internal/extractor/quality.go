package extractor

import (
	"strings"
	"unicode"
)

// statementWords appear in virtually every card statement. Extracted text
// containing none of them is almost certainly font-table garbage.
var statementWords = []string{
	"account", "amount", "balance", "charges", "credit", "credits",
	"payment", "statement", "total", "date", "express",
}

// isReadableText reports whether pages carry enough genuinely readable text
// to be worth parsing: more than 50 characters, a readable-character ratio
// above 60%, and at least one recognizable statement word.
func isReadableText(pages []string) bool {
	if totalTextLen(pages) <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsStatementWords(pages)
}

// textQuality returns the ratio of plain ASCII readable characters to total
// characters. A strict ASCII check is used on purpose: unicode.IsLetter
// matches the accented garbage produced by identity-encoded fonts.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				strings.ContainsRune(`.,-/:;()'"$%&@#!?+=*`, r) || r == '⧫' {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func containsStatementWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range statementWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}

package parser

import (
	"fmt"
	"strings"

	"github.com/conniexu444/parse-and-track-spending/internal/models"
)

// StatementParser defines the interface for issuer statement parsers.
type StatementParser interface {
	// Parse takes the page text extracted from a statement document and
	// returns the normalized transactions found in it.
	Parse(pages []string) ([]models.Transaction, error)
	// IssuerName returns the human-readable issuer name.
	IssuerName() string
}

// New returns the parser for the given issuer layout, using the built-in
// merchant mapping table.
func New(issuer models.IssuerType) (StatementParser, error) {
	return NewWithCleaner(issuer, DefaultCleaner())
}

// NewWithCleaner returns the parser for the given issuer layout with a
// custom merchant name cleaner (e.g. one extended from configuration).
func NewWithCleaner(issuer models.IssuerType, cleaner *MerchantCleaner) (StatementParser, error) {
	switch issuer {
	case models.IssuerAmex:
		return &AmexParser{cleaner: cleaner}, nil
	default:
		return nil, fmt.Errorf("unsupported issuer type: %q", issuer)
	}
}

// AutoDetect tries to identify the statement issuer from the page text.
func AutoDetect(pages []string) (models.IssuerType, error) {
	combined := strings.ToLower(strings.Join(pages, " "))

	for _, marker := range []string{"american express", "americanexpress"} {
		if strings.Contains(combined, marker) {
			return models.IssuerAmex, nil
		}
	}

	return "", fmt.Errorf("could not detect statement issuer; only American Express statements are supported")
}

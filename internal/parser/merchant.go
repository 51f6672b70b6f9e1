package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// MerchantMapping pairs a case-insensitive pattern with the friendly name to
// return when the pattern matches a raw description. Mappings short-circuit
// the generic cleanup rules entirely.
type MerchantMapping struct {
	Pattern string
	Name    string
}

// defaultMappings covers recurring transit and grocery merchants whose raw
// statement codes are unreadable. Order matters: the first match wins.
var defaultMappings = []MerchantMapping{
	{Pattern: `NYCT PAYGO`, Name: "MTA Subway"},
	{Pattern: `NJT RAIL MY-TIX`, Name: "NJ Transit"},
	{Pattern: `VENTRA ACCOUNT`, Name: "Chicago Ventra"},
	{Pattern: `PATH TAPP PAYGO`, Name: "PATH Train"},
	{Pattern: `PABT`, Name: "Port Authority Bus"},
	{Pattern: `TRADER JOE S`, Name: "Trader Joe's"},
	{Pattern: `WHOLEFDS`, Name: "Whole Foods"},
	{Pattern: `SHOPRITE`, Name: "ShopRite"},
}

// cleanupRules strips one category of description noise each. The order is
// deliberate: later rules assume earlier noise has already been removed.
var cleanupRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^AplPay\s+`),                    // mobile payment prefix
	regexp.MustCompile(`(?i)^TST\*\s*`),                     // point-of-sale prefix
	regexp.MustCompile(`(?i)^SP\s+`),                        // Shop Pay prefix
	regexp.MustCompile(`(?i)\s+squareup\.com/receipts$`),    // Square receipt suffix
	regexp.MustCompile(`\s+#?\d{3,}\s+\d{6,}`),              // store + terminal numbers
	regexp.MustCompile(`\s+\d{10,}`),                        // long card/terminal IDs
	regexp.MustCompile(`\s+0{4,}\d+`),                       // zero-padded reference numbers
	regexp.MustCompile(`(?i)\s+[A-Z][a-z]+\s+[A-Z]{2}$`),    // trailing "City ST"
	regexp.MustCompile(`(?i)\s+[A-Z\s]+\s+[A-Z]{2}$`),       // trailing "SOME CITY ST"
	regexp.MustCompile(`\s+\d{3}-\d{3}-\d{4}`),              // phone numbers
	regexp.MustCompile(`\s+\d{10}`),                         // bare 10-digit numbers
	regexp.MustCompile(`\s+\+\d+`),                          // international phone numbers
	regexp.MustCompile(`(?i)\s+[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`), // email addresses
	regexp.MustCompile(`(?i)\s+https?://\S+`),               // URLs
	regexp.MustCompile(`(?i)\s+\S+\.(com|net|org|info)/\S*`),           // bare domains with paths
	regexp.MustCompile(`(?i)\s+[A-Z\s]{10,}$`),              // trailing long uppercase runs
	regexp.MustCompile(`\s+\d{4,}\s*$`),                     // trailing digit clusters
	regexp.MustCompile(`(?i)\s+(RESTAURANT|FAST FOOD|CABLE & PAY TV|LOCAL TRANSPORTATION|MISC|NONE|GROCERY STOR|PHARMACIES)$`), // category codes
}

var whitespacePattern = regexp.MustCompile(`\s+`)

type compiledMapping struct {
	pattern *regexp.Regexp
	name    string
}

// MerchantCleaner rewrites raw line-item descriptions into human-friendly
// merchant names. It is immutable after construction and safe for
// concurrent use.
type MerchantCleaner struct {
	mappings []compiledMapping
}

// DefaultCleaner returns a cleaner using only the built-in mapping table.
func DefaultCleaner() *MerchantCleaner {
	c, err := NewCleaner(nil)
	if err != nil {
		// The built-in table is static; compilation cannot fail.
		panic(err)
	}
	return c
}

// NewCleaner builds a cleaner from the given extra mappings followed by the
// built-in table. Extra mappings come first so configuration can override
// the defaults.
func NewCleaner(extra []MerchantMapping) (*MerchantCleaner, error) {
	all := make([]MerchantMapping, 0, len(extra)+len(defaultMappings))
	all = append(all, extra...)
	all = append(all, defaultMappings...)

	c := &MerchantCleaner{mappings: make([]compiledMapping, 0, len(all))}
	for _, m := range all {
		re, err := regexp.Compile(`(?i)` + m.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid merchant mapping pattern %q: %w", m.Pattern, err)
		}
		c.mappings = append(c.mappings, compiledMapping{pattern: re, name: m.Name})
	}
	return c, nil
}

// CleanName rewrites a raw description into a display-ready merchant name.
// A direct mapping match returns its friendly name immediately; otherwise
// the generic cleanup rules run in order, whitespace is collapsed, and each
// word is title-cased.
func (c *MerchantCleaner) CleanName(rawDescription string) string {
	name := strings.TrimSpace(rawDescription)

	for _, m := range c.mappings {
		if m.pattern.MatchString(name) {
			return m.name
		}
	}

	for _, rule := range cleanupRules {
		name = rule.ReplaceAllString(name, "")
	}

	name = strings.TrimSpace(whitespacePattern.ReplaceAllString(name, " "))
	return titleCaseWords(name)
}

func titleCaseWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))
	}
	return strings.Join(words, " ")
}

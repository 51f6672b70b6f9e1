package parser

import (
	"testing"
)

func TestCleanNameDirectMappings(t *testing.T) {
	c := DefaultCleaner()

	tests := []struct {
		input    string
		expected string
	}{
		// Mapping matches short-circuit generic cleanup, so trailing noise
		// never reaches the rewrite rules.
		{"TRADER JOE S #123 456789", "Trader Joe's"},
		{"NYCT PAYGO 1234567890 NEW YORK NY", "MTA Subway"},
		{"NJT RAIL MY-TIX NEWARK NJ", "NJ Transit"},
		{"WHOLEFDS HBK 10245 HOBOKEN NJ", "Whole Foods"},
		{"SHOPRITE OF HOBOKEN NJ", "ShopRite"},
		{"PATH TAPP PAYGO JERSEY CITY", "PATH Train"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := c.CleanName(tt.input); got != tt.expected {
				t.Errorf("CleanName(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanNameGenericRules(t *testing.T) {
	c := DefaultCleaner()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"mobile payment prefix", "AplPay STARBUCKS", "Starbucks"},
		{"pos prefix", "TST* CORNER BISTRO", "Corner Bistro"},
		{"shop pay prefix", "SP GREENMARKET", "Greenmarket"},
		{"square receipt suffix", "BLUE BOTTLE squareup.com/receipts", "Blue Bottle"},
		{"store and terminal codes", "TARGET #123 4567890", "Target"},
		{"long digit run", "DUANE READE 12345678901", "Duane Reade"},
		{"zero padded reference", "TARGET 000012345 BROOKLYN NY", "Target"},
		{"phone number", "SEAMLESS 800-256-1020", "Seamless"},
		{"email address", "VENDOR SUPPORT@EXAMPLE.COM", "Vendor"},
		{"url", "NETFLIX https://netflix.com/billing", "Netflix"},
		{"category descriptor", "GOLDEN WOK MISC", "Golden Wok"},
		{"uppercase run swallows category word", "JOE'S PIZZA RESTAURANT", "Joe's"},
		{"whitespace collapse", "CITY   BAKERY", "City Bakery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CleanName(tt.input); got != tt.expected {
				t.Errorf("CleanName(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewCleanerExtraMappingsOverrideDefaults(t *testing.T) {
	c, err := NewCleaner([]MerchantMapping{{Pattern: `TRADER JOE S`, Name: "TJ Groceries"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.CleanName("TRADER JOE S #553"); got != "TJ Groceries" {
		t.Errorf("got %q, want %q", got, "TJ Groceries")
	}
}

func TestNewCleanerInvalidPattern(t *testing.T) {
	if _, err := NewCleaner([]MerchantMapping{{Pattern: `(`, Name: "Broken"}}); err == nil {
		t.Error("expected error for invalid pattern, got nil")
	}
}

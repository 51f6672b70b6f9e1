package models

import "time"

// Transaction type values.
const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

// Transaction represents a single normalized statement transaction.
// Instances are created once during a parse call and never mutated after.
type Transaction struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Amount    float64   `json:"amount"`
	Title     string    `json:"title"`
	Type      string    `json:"type"` // credit or debit
}

// IssuerType identifies a supported statement layout.
type IssuerType string

const (
	IssuerAmex IssuerType = "amex"
)

// Totals holds the aggregate view over a transaction list,
// every value rounded to the cent.
type Totals struct {
	TotalSpent   float64 `json:"totalSpent" mapstructure:"total_spent"`
	TotalCredits float64 `json:"totalCredits" mapstructure:"total_credits"`
	NetSpending  float64 `json:"netSpending" mapstructure:"net_spending"`
}

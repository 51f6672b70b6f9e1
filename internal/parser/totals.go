package parser

import (
	"math"

	"github.com/conniexu444/parse-and-track-spending/internal/models"
)

// Aggregate sums a transaction list into spend, credit and net totals.
// Each value is rounded half-away-from-zero at the cent boundary.
func Aggregate(txns []models.Transaction) models.Totals {
	var spent, credits float64
	for _, txn := range txns {
		switch txn.Type {
		case models.TypeDebit:
			spent += txn.Amount
		case models.TypeCredit:
			credits += txn.Amount
		}
	}

	return models.Totals{
		TotalSpent:   roundCents(spent),
		TotalCredits: roundCents(credits),
		NetSpending:  roundCents(spent - credits),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

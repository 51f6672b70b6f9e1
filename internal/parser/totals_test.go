package parser

import (
	"testing"

	"github.com/conniexu444/parse-and-track-spending/internal/models"
)

func TestAggregate(t *testing.T) {
	txns := []models.Transaction{
		{Amount: 40.51, Type: models.TypeDebit},
		{Amount: 10.00, Type: models.TypeCredit},
	}

	totals := Aggregate(txns)
	if totals.TotalSpent != 40.51 {
		t.Errorf("total spent: got %v, want 40.51", totals.TotalSpent)
	}
	if totals.TotalCredits != 10.00 {
		t.Errorf("total credits: got %v, want 10.00", totals.TotalCredits)
	}
	if totals.NetSpending != 30.51 {
		t.Errorf("net spending: got %v, want 30.51", totals.NetSpending)
	}
}

func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(nil)
	if totals.TotalSpent != 0 || totals.TotalCredits != 0 || totals.NetSpending != 0 {
		t.Errorf("got %+v, want zeros", totals)
	}
}

func TestAggregateRoundsAtCentBoundary(t *testing.T) {
	txns := []models.Transaction{
		{Amount: 0.105, Type: models.TypeDebit},
		{Amount: 0.105, Type: models.TypeDebit},
	}
	totals := Aggregate(txns)
	if totals.TotalSpent != 0.21 {
		t.Errorf("total spent: got %v, want 0.21", totals.TotalSpent)
	}
}

package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Totals aggregates a ledger.
type Totals struct {
	Income     decimal.Decimal            `json:"income" yaml:"income"`
	Expense    decimal.Decimal            `json:"expense" yaml:"expense"`
	Balance    decimal.Decimal            `json:"balance" yaml:"balance"`
	ByCategory map[string]decimal.Decimal `json:"byCategory" yaml:"byCategory"`
	Count      int                        `json:"count" yaml:"count"`
}

// Summarize totals the transactions dated within [from, to]. Zero bounds are open.
// Category sums are signed: income adds, expense subtracts.
func Summarize(txs []Transaction, from, to time.Time) Totals {
	t := Totals{
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
	}
	for _, tx := range txs {
		d := dateOf(tx.Date)
		if (!from.IsZero() && d.Before(dateOf(from))) || (!to.IsZero() && d.After(dateOf(to))) {
			continue
		}

		signed := tx.Amount
		switch tx.Type {
		case Income:
			t.Income = t.Income.Add(tx.Amount)
		case Expense:
			t.Expense = t.Expense.Add(tx.Amount)
			signed = signed.Neg()
		default:
			continue
		}
		t.ByCategory[tx.Category] = t.ByCategory[tx.Category].Add(signed)
		t.Count++
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t
}

// SortByDate orders transactions oldest first, keeping insertion order on ties.
func SortByDate(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})
}

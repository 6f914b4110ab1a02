package finance

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func rent() RecurringTransaction {
	return RecurringTransaction{
		ID:          "rent",
		Description: "Rent",
		Amount:      decimal.RequireFromString("950.00"),
		Category:    "housing",
		Type:        Expense,
		Frequency:   Monthly,
		StartDate:   date(2024, 1, 31),
		Active:      true,
	}
}

func TestFrequency_Occurrence(t *testing.T) {
	start := date(2024, 1, 31)
	tests := []struct {
		freq Frequency
		n    int
		want time.Time
	}{
		{Daily, 1, date(2024, 2, 1)},
		{Weekly, 2, date(2024, 2, 14)},
		{Biweekly, 1, date(2024, 2, 14)},
		{Monthly, 1, date(2024, 2, 29)},
		{Monthly, 2, date(2024, 3, 31)},
		{Monthly, 3, date(2024, 4, 30)},
		{Quarterly, 1, date(2024, 4, 30)},
		{Yearly, 1, date(2025, 1, 31)},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, tt.freq.Occurrence(start, tt.n), "%s #%d", tt.freq, tt.n)
	}

	assert.Equal(t, date(2025, 2, 28), Yearly.Occurrence(date(2024, 2, 29), 1), "leap day clamps")
	assert.Equal(t, date(2028, 2, 29), Yearly.Occurrence(date(2024, 2, 29), 4))
}

func TestProcessRecurring_CatchUp(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	in := []RecurringTransaction{rent()}

	res := ProcessRecurring(now, time.Time{}, in)

	assert.False(t, res.Skipped)
	assert.False(t, res.Capped)
	assert.Equal(t, now, res.NextRun)
	require.Len(t, res.Transactions, 4)

	want := []time.Time{date(2024, 1, 31), date(2024, 2, 29), date(2024, 3, 31), date(2024, 4, 30)}
	for i, tx := range res.Transactions {
		assert.Equal(t, want[i], tx.Date)
		assert.Equal(t, "rent", tx.RecurringID)
		assert.True(t, tx.Amount.Equal(decimal.RequireFromString("950")))
		assert.Equal(t, Expense, tx.Type)
		_, err := uuid.Parse(tx.ID)
		assert.NoError(t, err)
	}

	require.NotNil(t, res.Templates[0].LastGenerated)
	assert.Equal(t, date(2024, 4, 30), *res.Templates[0].LastGenerated)
	assert.Nil(t, in[0].LastGenerated, "input is not modified")
}

func TestProcessRecurring_Incremental(t *testing.T) {
	tmpl := rent()
	tmpl.LastGenerated = ptr(date(2024, 3, 31))

	res := ProcessRecurring(date(2024, 4, 30), date(2024, 4, 1), []RecurringTransaction{tmpl})
	require.Len(t, res.Transactions, 1, "today's occurrence is included")
	assert.Equal(t, date(2024, 4, 30), res.Transactions[0].Date)

	// Running again the next day generates nothing new.
	res = ProcessRecurring(date(2024, 5, 1), date(2024, 4, 30), res.Templates)
	assert.Empty(t, res.Transactions)
	assert.NotNil(t, res.Transactions)
}

func TestProcessRecurring_Throttle(t *testing.T) {
	last := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	res := ProcessRecurring(last.Add(59*time.Minute), last, []RecurringTransaction{rent()})

	assert.True(t, res.Skipped)
	assert.Equal(t, last, res.NextRun)
	assert.Empty(t, res.Transactions)
	assert.Nil(t, res.Templates[0].LastGenerated)

	res = ProcessRecurring(last.Add(time.Hour), last, []RecurringTransaction{rent()})
	assert.False(t, res.Skipped)
	assert.NotEmpty(t, res.Transactions)
}

func TestProcessRecurring_EndDateAndInactive(t *testing.T) {
	ended := rent()
	ended.EndDate = ptr(date(2024, 2, 29))

	inactive := rent()
	inactive.ID = "inactive"
	inactive.Active = false

	invalid := rent()
	invalid.ID = "invalid"
	invalid.Frequency = "fortnightly"

	res := ProcessRecurring(date(2024, 12, 1), time.Time{}, []RecurringTransaction{ended, inactive, invalid})

	require.Len(t, res.Transactions, 2)
	assert.Equal(t, date(2024, 2, 29), res.Transactions[1].Date)
	assert.Nil(t, res.Templates[1].LastGenerated)
	assert.Nil(t, res.Templates[2].LastGenerated)
}

func TestProcessRecurring_FutureStart(t *testing.T) {
	tmpl := rent()
	tmpl.StartDate = date(2030, 1, 1)

	res := ProcessRecurring(date(2024, 1, 1), time.Time{}, []RecurringTransaction{tmpl})
	assert.Empty(t, res.Transactions)
}

func TestProcessRecurring_Cap(t *testing.T) {
	coffee := RecurringTransaction{
		ID: "coffee", Description: "Coffee", Amount: decimal.NewFromFloat(3.5),
		Category: "food", Type: Expense, Frequency: Daily,
		StartDate: date(2024, 1, 1), Active: true,
	}
	now := date(2024, 12, 31)

	res := ProcessRecurring(now, time.Time{}, []RecurringTransaction{coffee})
	assert.True(t, res.Capped)
	require.Len(t, res.Transactions, MaxGeneratedPerRun)
	assert.Equal(t, date(2024, 4, 9), *res.Templates[0].LastGenerated, "100th day of 2024")

	// The next run continues where the previous stopped.
	res = ProcessRecurring(now.Add(2*time.Hour), now, res.Templates)
	assert.Equal(t, date(2024, 4, 10), res.Transactions[0].Date)
}

func TestProcessRecurring_DeterministicIDs(t *testing.T) {
	n := 0
	orig := newID
	newID = func() string { n++; return fmt.Sprintf("id-%d", n) }
	t.Cleanup(func() { newID = orig })

	res := ProcessRecurring(date(2024, 3, 1), time.Time{}, []RecurringTransaction{rent()})
	require.Len(t, res.Transactions, 2)
	assert.Equal(t, "id-1", res.Transactions[0].ID)
	assert.Equal(t, "id-2", res.Transactions[1].ID)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RecurringTransaction)
		want   error
	}{
		{"valid", func(*RecurringTransaction) {}, nil},
		{"bad frequency", func(r *RecurringTransaction) { r.Frequency = "hourly" }, ErrInvalidFrequency},
		{"bad type", func(r *RecurringTransaction) { r.Type = "transfer" }, ErrInvalidType},
		{"zero amount", func(r *RecurringTransaction) { r.Amount = decimal.Zero }, ErrInvalidAmount},
		{"no start", func(r *RecurringTransaction) { r.StartDate = time.Time{} }, ErrMissingStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rent()
			tt.mutate(&r)
			assert.ErrorIs(t, r.Validate(), tt.want)
		})
	}
}

func TestSummarize(t *testing.T) {
	txs := []Transaction{
		{Date: date(2024, 1, 5), Amount: decimal.RequireFromString("2500.00"), Category: "salary", Type: Income},
		{Date: date(2024, 1, 31), Amount: decimal.RequireFromString("950.00"), Category: "housing", Type: Expense},
		{Date: date(2024, 1, 20), Amount: decimal.RequireFromString("0.10"), Category: "food", Type: Expense},
		{Date: date(2024, 1, 21), Amount: decimal.RequireFromString("0.20"), Category: "food", Type: Expense},
		{Date: date(2024, 2, 1), Amount: decimal.RequireFromString("100"), Category: "food", Type: Expense},
	}

	got := Summarize(txs, date(2024, 1, 1), date(2024, 1, 31))
	assert.Equal(t, 4, got.Count)
	assert.Equal(t, "2500", got.Income.String())
	assert.Equal(t, "950.3", got.Expense.String())
	assert.Equal(t, "1549.7", got.Balance.String())
	assert.Equal(t, "-0.3", got.ByCategory["food"].String(), "no float drift")

	all := Summarize(txs, time.Time{}, time.Time{})
	assert.Equal(t, 5, all.Count)
}

func TestSortByDate(t *testing.T) {
	txs := []Transaction{{ID: "b", Date: date(2024, 2, 1)}, {ID: "a", Date: date(2024, 1, 1)}, {ID: "c", Date: date(2024, 2, 1)}}
	SortByDate(txs)
	assert.Equal(t, "a", txs[0].ID)
	assert.Equal(t, "b", txs[1].ID)
	assert.Equal(t, "c", txs[2].ID)
}

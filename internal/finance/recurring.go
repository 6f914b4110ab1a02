// Package finance generates transactions from recurring templates and
// summarizes ledgers. Amounts are decimals, never floats.
package finance

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type tells income from expense.
type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// Frequency is the repeat interval of a recurring template.
type Frequency string

const (
	Daily     Frequency = "daily"
	Weekly    Frequency = "weekly"
	Biweekly  Frequency = "biweekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

const (
	// ThrottleInterval is the minimum time between two processing runs.
	ThrottleInterval = time.Hour
	// MaxGeneratedPerRun bounds the catch-up work of a single run.
	MaxGeneratedPerRun = 100
)

var (
	ErrInvalidFrequency = errors.New("invalid recurring frequency")
	ErrInvalidType      = errors.New("transaction type must be income or expense")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrMissingStart     = errors.New("recurring template needs a start date")
)

// Transaction is one ledger line.
type Transaction struct {
	ID          string          `json:"id" yaml:"id"`
	Date        time.Time       `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Category    string          `json:"category" yaml:"category"`
	Type        Type            `json:"type" yaml:"type"`
	RecurringID string          `json:"recurringId,omitempty" yaml:"recurringId,omitempty"`
}

// RecurringTransaction is a template that produces one Transaction per occurrence.
type RecurringTransaction struct {
	ID            string          `json:"id" yaml:"id"`
	Description   string          `json:"description" yaml:"description"`
	Amount        decimal.Decimal `json:"amount" yaml:"amount"`
	Category      string          `json:"category" yaml:"category"`
	Type          Type            `json:"type" yaml:"type"`
	Frequency     Frequency       `json:"frequency" yaml:"frequency"`
	StartDate     time.Time       `json:"startDate" yaml:"startDate"`
	EndDate       *time.Time      `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	LastGenerated *time.Time      `json:"lastGenerated,omitempty" yaml:"lastGenerated,omitempty"`
	Active        bool            `json:"active" yaml:"active"`
}

// Validate checks the fields ProcessRecurring relies on.
func (r RecurringTransaction) Validate() error {
	if !r.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	if r.Type != Income && r.Type != Expense {
		return ErrInvalidType
	}
	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if r.StartDate.IsZero() {
		return ErrMissingStart
	}
	return nil
}

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Biweekly, Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

// Occurrence returns the n-th occurrence (0-based) after start. Month-based
// frequencies clamp to the end of shorter months instead of overflowing,
// and always count from start so that the day of month does not drift.
func (f Frequency) Occurrence(start time.Time, n int) time.Time {
	switch f {
	case Daily:
		return start.AddDate(0, 0, n)
	case Weekly:
		return start.AddDate(0, 0, 7*n)
	case Biweekly:
		return start.AddDate(0, 0, 14*n)
	case Monthly:
		return addMonths(start, n)
	case Quarterly:
		return addMonths(start, 3*n)
	case Yearly:
		return addMonths(start, 12*n)
	}
	return start
}

func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	return time.Date(first.Year(), first.Month(), min(d, last), 0, 0, 0, 0, time.UTC)
}

// Result is the outcome of one processing run.
type Result struct {
	// Transactions are the newly generated lines, oldest first per template.
	Transactions []Transaction `json:"transactions" yaml:"transactions"`
	// Templates are the input templates with LastGenerated advanced.
	Templates []RecurringTransaction `json:"templates" yaml:"templates"`
	// NextRun is the value to persist as the last run time.
	NextRun time.Time `json:"nextRun" yaml:"nextRun"`
	// Skipped is set when the run was throttled.
	Skipped bool `json:"skipped" yaml:"skipped"`
	// Capped is set when MaxGeneratedPerRun stopped the catch-up early.
	Capped bool `json:"capped" yaml:"capped"`
}

// newID is swapped in tests.
var newID = uuid.NewString

// ProcessRecurring generates every occurrence due on or before now's calendar
// date. A run within ThrottleInterval of lastRun does nothing. Inactive and
// invalid templates are returned untouched. The input slice is not modified.
func ProcessRecurring(now, lastRun time.Time, templates []RecurringTransaction) Result {
	out := Result{
		Transactions: []Transaction{},
		Templates:    make([]RecurringTransaction, len(templates)),
		NextRun:      lastRun,
	}
	copy(out.Templates, templates)

	if !lastRun.IsZero() && now.Sub(lastRun) < ThrottleInterval {
		out.Skipped = true
		return out
	}
	out.NextRun = now

	today := dateOf(now)
	for i := range out.Templates {
		t := &out.Templates[i]
		if !t.Active || t.Validate() != nil {
			continue
		}

		start := dateOf(t.StartDate)
		for n := 0; ; n++ {
			occ := t.Frequency.Occurrence(start, n)
			if occ.After(today) || (t.EndDate != nil && occ.After(dateOf(*t.EndDate))) {
				break
			}
			if t.LastGenerated != nil && !occ.After(dateOf(*t.LastGenerated)) {
				continue
			}
			if len(out.Transactions) >= MaxGeneratedPerRun {
				out.Capped = true
				break
			}

			out.Transactions = append(out.Transactions, Transaction{
				ID:          newID(),
				Date:        occ,
				Description: t.Description,
				Amount:      t.Amount,
				Category:    t.Category,
				Type:        t.Type,
				RecurringID: t.ID,
			})
			last := occ
			t.LastGenerated = &last
		}
	}
	return out
}

// dateOf keeps the wall-clock date at midnight UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/finance"
	"github.com/tartampluch/go-insight/internal/journal"
	"github.com/tartampluch/go-insight/internal/numerology"
)

// NumerologySnapshot is the last computed profile, overwritten wholesale.
type NumerologySnapshot struct {
	BirthDate    string             `json:"birthDate"`
	FullName     string             `json:"fullName"`
	Profile      numerology.Profile `json:"profile"`
	CalculatedAt time.Time          `json:"calculatedAt"`
}

// DailyEntry holds the notes of one calendar day.
type DailyEntry struct {
	Date         string   `json:"date" yaml:"date"`
	Notes        string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Mood         *int     `json:"mood,omitempty" yaml:"mood,omitempty"`
	CheckedTasks []string `json:"checkedTasks,omitempty" yaml:"checkedTasks,omitempty"`
}

// Lifestyle is the typed view over a Store used by the CLI and server.
type Lifestyle struct {
	Store Store
}

// NewLifestyle wraps s.
func NewLifestyle(s Store) *Lifestyle {
	return &Lifestyle{Store: s}
}

// BirthDate returns the stored birth date or ErrNotFound.
func (l *Lifestyle) BirthDate(ctx context.Context) (time.Time, error) {
	var s string
	if err := GetJSON(ctx, l.Store, config.StoreKeyBirthDate, &s); err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(config.DateFormatFullDash, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q: %w", config.ErrStoreDecode, config.StoreKeyBirthDate, err)
	}
	return t, nil
}

func (l *Lifestyle) SetBirthDate(ctx context.Context, t time.Time) error {
	return SetJSON(ctx, l.Store, config.StoreKeyBirthDate, t.Format(config.DateFormatFullDash))
}

// FullName returns the stored name, or "" when none is set.
func (l *Lifestyle) FullName(ctx context.Context) (string, error) {
	var s string
	err := GetJSON(ctx, l.Store, config.StoreKeyFullName, &s)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return s, err
}

func (l *Lifestyle) SetFullName(ctx context.Context, name string) error {
	return SetJSON(ctx, l.Store, config.StoreKeyFullName, strings.TrimSpace(name))
}

// Numerology returns the saved snapshot or ErrNotFound.
func (l *Lifestyle) Numerology(ctx context.Context) (NumerologySnapshot, error) {
	var s NumerologySnapshot
	err := GetJSON(ctx, l.Store, config.StoreKeyNumerology, &s)
	return s, err
}

func (l *Lifestyle) SaveNumerology(ctx context.Context, s NumerologySnapshot) error {
	return SetJSON(ctx, l.Store, config.StoreKeyNumerology, s)
}

// Enneagram returns the opaque enneagram results document.
func (l *Lifestyle) Enneagram(ctx context.Context) (json.RawMessage, error) {
	return l.Store.Get(ctx, config.StoreKeyEnneagram)
}

func (l *Lifestyle) SetEnneagram(ctx context.Context, doc json.RawMessage) error {
	return l.Store.Set(ctx, config.StoreKeyEnneagram, doc)
}

// Daily returns the entry for date, or an empty entry for that date.
func (l *Lifestyle) Daily(ctx context.Context, date time.Time) (DailyEntry, error) {
	day := date.Format(config.DateFormatFullDash)
	e := DailyEntry{Date: day}
	err := GetJSON(ctx, l.Store, config.StoreKeyDailyPrefix+day, &e)
	if errors.Is(err, ErrNotFound) {
		return DailyEntry{Date: day}, nil
	}
	return e, err
}

func (l *Lifestyle) SaveDaily(ctx context.Context, e DailyEntry) error {
	if _, err := time.Parse(config.DateFormatFullDash, e.Date); err != nil {
		return fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return SetJSON(ctx, l.Store, config.StoreKeyDailyPrefix+e.Date, e)
}

// DailyDates lists the days that have an entry, oldest first.
func (l *Lifestyle) DailyDates(ctx context.Context) ([]string, error) {
	keys, err := l.Store.Keys(ctx, config.StoreKeyDailyPrefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, config.StoreKeyDailyPrefix)
	}
	return keys, nil
}

func (l *Lifestyle) JournalEntries(ctx context.Context) ([]journal.Entry, error) {
	return getList[journal.Entry](ctx, l.Store, config.StoreKeyJournalEntries)
}

func (l *Lifestyle) SaveJournalEntries(ctx context.Context, entries []journal.Entry) error {
	return SetJSON(ctx, l.Store, config.StoreKeyJournalEntries, entries)
}

func (l *Lifestyle) Transactions(ctx context.Context) ([]finance.Transaction, error) {
	return getList[finance.Transaction](ctx, l.Store, config.StoreKeyTransactions)
}

func (l *Lifestyle) SaveTransactions(ctx context.Context, txs []finance.Transaction) error {
	return SetJSON(ctx, l.Store, config.StoreKeyTransactions, txs)
}

func (l *Lifestyle) RecurringTransactions(ctx context.Context) ([]finance.RecurringTransaction, error) {
	return getList[finance.RecurringTransaction](ctx, l.Store, config.StoreKeyRecurring)
}

func (l *Lifestyle) SaveRecurringTransactions(ctx context.Context, templates []finance.RecurringTransaction) error {
	return SetJSON(ctx, l.Store, config.StoreKeyRecurring, templates)
}

// LastRecurringRun returns the zero time when processing never ran.
func (l *Lifestyle) LastRecurringRun(ctx context.Context) (time.Time, error) {
	var t time.Time
	err := GetJSON(ctx, l.Store, config.StoreKeyLastRecurringRun, &t)
	if errors.Is(err, ErrNotFound) {
		return time.Time{}, nil
	}
	return t, err
}

func (l *Lifestyle) SetLastRecurringRun(ctx context.Context, t time.Time) error {
	return SetJSON(ctx, l.Store, config.StoreKeyLastRecurringRun, t)
}

// ApplyRecurring runs finance.ProcessRecurring against the stored templates
// and persists the outcome. force ignores the throttle.
func (l *Lifestyle) ApplyRecurring(ctx context.Context, now time.Time, force bool) (finance.Result, error) {
	log := slog.With(config.LogKeyComponent, config.CompFinance)

	templates, err := l.RecurringTransactions(ctx)
	if err != nil {
		return finance.Result{}, err
	}
	lastRun, err := l.LastRecurringRun(ctx)
	if err != nil {
		return finance.Result{}, err
	}
	if force {
		lastRun = time.Time{}
	}

	res := finance.ProcessRecurring(now, lastRun, templates)
	if res.Skipped {
		log.Info(config.MsgRecurringSkip, config.LogKeyLastRun, lastRun)
		return res, nil
	}
	if res.Capped {
		log.Warn(config.MsgRecurringCap, config.LogKeyCount, finance.MaxGeneratedPerRun)
	}

	txs, err := l.Transactions(ctx)
	if err != nil {
		return finance.Result{}, err
	}
	if len(res.Transactions) > 0 {
		txs = append(txs, res.Transactions...)
		finance.SortByDate(txs)
		if err := l.SaveTransactions(ctx, txs); err != nil {
			return finance.Result{}, err
		}
		if err := l.SaveRecurringTransactions(ctx, res.Templates); err != nil {
			return finance.Result{}, err
		}
	}
	if err := l.SetLastRecurringRun(ctx, res.NextRun); err != nil {
		return finance.Result{}, err
	}

	log.Info(config.MsgRecurringDone, config.LogKeyGenerated, len(res.Transactions))
	return res, nil
}

// getList decodes a JSON array, treating a missing key as empty.
func getList[T any](ctx context.Context, s Store, key string) ([]T, error) {
	out := []T{}
	err := GetJSON(ctx, s, key, &out)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	return out, err
}

package engine_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/engine"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerate_SingleDay(t *testing.T) {
	// 1990-01-01 -> 2024-01-01 is 12418 days: emotional is at zero,
	// and the birthday opens personal year 1.
	ada := engine.NewProfile("Ada", day(1990, 1, 1))
	gen := &engine.CalendarGenerator{Clock: MockClock{CurrentTime: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}}

	ics, count, err := gen.Generate(context.Background(), []engine.Profile{ada}, engine.CalendarConfig{Days: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	s := string(ics)
	assert.Contains(t, s, "BEGIN:VCALENDAR")
	assert.Contains(t, s, "PRODID:"+config.ICalProdid)
	assert.Equal(t, 3, strings.Count(s, "BEGIN:VEVENT"))

	assert.Contains(t, s, "SUMMARY:Ada: emotional critical day")
	assert.Contains(t, s, "SUMMARY:Ada: Personal Year 1 (New Beginnings)")
	assert.Contains(t, s, "SUMMARY:Ada: New Cycle")

	assert.Contains(t, s, "DTSTART;VALUE=DATE:20240101")
	assert.Contains(t, s, "DTEND;VALUE=DATE:20240102")
	assert.Contains(t, s, "CATEGORIES:"+config.EventKindCritical)
	assert.Contains(t, s, "CATEGORIES:"+config.EventKindYear)
	assert.Contains(t, s, "CATEGORIES:"+config.EventKindSignified)
	assert.Contains(t, s, "DTSTAMP:20240101T080000Z")
	assert.NotContains(t, s, "BEGIN:VALARM")
}

func TestGenerate_MercuryAndCriticalDays(t *testing.T) {
	p := engine.NewProfile("Bob", day(2000, 4, 10))
	gen := &engine.CalendarGenerator{Clock: MockClock{CurrentTime: day(2024, 3, 1)}}

	cfg := engine.CalendarConfig{From: day(2024, 4, 1), Days: 30}
	ics, count, err := gen.Generate(context.Background(), []engine.Profile{p}, cfg)
	require.NoError(t, err)

	s := string(ics)
	// Five critical days (Apr 7, 8, 22 twice, 30), one birthday, one retrograde window.
	assert.Equal(t, 7, count)
	assert.Equal(t, 7, strings.Count(s, "BEGIN:VEVENT"))
	assert.Equal(t, 5, strings.Count(s, "CATEGORIES:"+config.EventKindCritical))

	assert.Contains(t, s, "SUMMARY:"+config.FallbackSummaryMercury)
	assert.Contains(t, s, "DTSTART;VALUE=DATE:20240401")
	assert.Contains(t, s, "DTEND;VALUE=DATE:20240426")
	assert.Contains(t, s, "SUMMARY:Bob: Personal Year 4 (Foundation Building)")
	assert.Contains(t, s, "SUMMARY:Bob: intellectual critical day")
}

func TestGenerate_WithReminders(t *testing.T) {
	gen := &engine.CalendarGenerator{Clock: MockClock{CurrentTime: day(2024, 1, 1)}}
	profiles := []engine.Profile{engine.NewProfile("Ada", day(1990, 1, 1))}

	ics, count, err := gen.Generate(context.Background(), profiles, engine.CalendarConfig{Days: 1, ReminderTrigger: "-PT9H"})
	require.NoError(t, err)

	s := string(ics)
	assert.Equal(t, count, strings.Count(s, "BEGIN:VALARM"), "one alarm per event")
	assert.Contains(t, s, "TRIGGER:-PT9H")
	assert.Contains(t, s, "ACTION:DISPLAY")
}

func TestGenerate_FormatSummaryHook(t *testing.T) {
	gen := &engine.CalendarGenerator{
		Clock: MockClock{CurrentTime: day(2024, 1, 1)},
		FormatSummary: func(e engine.Event) string {
			return fmt.Sprintf("[%s] %s", e.Kind, e.Profile.Name)
		},
	}
	profiles := []engine.Profile{engine.NewProfile("Ada", day(1990, 1, 1))}

	ics, _, err := gen.Generate(context.Background(), profiles, engine.CalendarConfig{Days: 1})
	require.NoError(t, err)
	assert.Contains(t, string(ics), "SUMMARY:[personal-year] Ada")
	assert.NotContains(t, string(ics), "New Beginnings")
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := &engine.CalendarGenerator{Clock: MockClock{CurrentTime: day(2024, 6, 1)}}
	profiles := []engine.Profile{
		engine.NewProfile("Ada", day(1990, 1, 1)),
		engine.NewProfile("Bob", day(1985, 7, 23)),
	}

	first, n1, err := gen.Generate(context.Background(), profiles, engine.CalendarConfig{})
	require.NoError(t, err)
	second, n2, err := gen.Generate(context.Background(), profiles, engine.CalendarConfig{})
	require.NoError(t, err)

	assert.Equal(t, n1, n2)
	// Property order inside a component is not part of the contract.
	assert.ElementsMatch(t, strings.Split(string(first), "\r\n"), strings.Split(string(second), "\r\n"))
	assert.Positive(t, n1)
}

func TestGenerate_Empty(t *testing.T) {
	gen := &engine.CalendarGenerator{Clock: MockClock{CurrentTime: day(2024, 1, 1)}}

	tests := []struct {
		name     string
		profiles []engine.Profile
	}{
		{"no profiles", nil},
		{"missing birth date", []engine.Profile{{Name: "Nobody"}}},
		{"born after the window", []engine.Profile{engine.NewProfile("Future", day(2030, 1, 1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ics, count, err := gen.Generate(context.Background(), tt.profiles, engine.CalendarConfig{From: day(2024, 1, 1), Days: 10})
			require.NoError(t, err)
			assert.Equal(t, 0, count)
			assert.Equal(t, config.StubVCalendar, string(ics))
		})
	}
}

func TestGenerate_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &engine.CalendarGenerator{Clock: MockClock{CurrentTime: time.Now()}}
	_, _, err := gen.Generate(ctx, []engine.Profile{engine.NewProfile("Ada", day(1990, 1, 1))}, engine.CalendarConfig{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewProfile(t *testing.T) {
	a := engine.NewProfile("  Ada  ", time.Date(1990, 1, 1, 23, 30, 0, 0, time.FixedZone("X", -5*3600)))
	b := engine.NewProfile("Ada", day(1990, 1, 1))
	c := engine.NewProfile("Ada", day(1990, 1, 2))

	assert.Equal(t, "Ada", a.Name)
	assert.Equal(t, day(1990, 1, 1), a.BirthDate, "wall date is kept")
	assert.Equal(t, a.UID, b.UID)
	assert.NotEqual(t, a.UID, c.UID)
	assert.Len(t, a.UID, config.UIDHashLength*2)

	assert.Equal(t, config.FallbackName, engine.NewProfile(" ", day(1990, 1, 1)).Name)
}

func TestParseBirthDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"1990-05-15", day(1990, 5, 15), false},
		{"19900515", day(1990, 5, 15), false},
		{"1990-05-15T22:00:00+02:00", day(1990, 5, 15), false},
		{" 2000-02-29 ", day(2000, 2, 29), false},
		{"--05-15", time.Time{}, true},
		{"1990-13-01", time.Time{}, true},
		{"yesterday", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := engine.ParseBirthDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), config.ErrDateParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClockFunc(t *testing.T) {
	fixed := day(2024, 2, 2)
	var c engine.Clock = engine.ClockFunc(func() time.Time { return fixed })
	assert.Equal(t, fixed, c.Now())
}

func TestGenerate_WindowCap(t *testing.T) {
	gen := &engine.CalendarGenerator{Clock: MockClock{CurrentTime: day(2024, 1, 1)}}
	profiles := []engine.Profile{engine.NewProfile("Ada", day(1990, 1, 1))}

	_, _, err := gen.Generate(context.Background(), profiles, engine.CalendarConfig{Days: config.MaxCalendarDays + 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrCalendarDays)

	_, _, err = gen.Generate(context.Background(), profiles, engine.CalendarConfig{Days: config.MaxCalendarDays})
	assert.NoError(t, err)
}

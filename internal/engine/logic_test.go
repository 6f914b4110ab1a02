package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-insight/internal/config"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		want      time.Time
		yearKnown bool
		wantErr   bool
	}{
		{"ISO 8601", "1990-10-25", time.Date(1990, 10, 25, 0, 0, 0, 0, time.UTC), true, false},
		{"basic", "19901025", time.Date(1990, 10, 25, 0, 0, 0, 0, time.UTC), true, false},
		{"RFC 3339", "1990-10-25T00:00:00Z", time.Date(1990, 10, 25, 0, 0, 0, 0, time.UTC), true, false},
		{"truncated", "--10-25", time.Date(config.DefaultLeapYear, 10, 25, 0, 0, 0, 0, time.UTC), false, false},
		{"truncated basic", "--1025", time.Date(config.DefaultLeapYear, 10, 25, 0, 0, 0, 0, time.UTC), false, false},
		{"truncated leap day", "--02-29", time.Date(config.DefaultLeapYear, 2, 29, 0, 0, 0, 0, time.UTC), false, false},
		{"garbage", "not-a-date", time.Time{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, yearKnown, err := parseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
			assert.Equal(t, tt.yearKnown, yearKnown)
		})
	}
}

func TestBirthdayEvents(t *testing.T) {
	p := NewProfile("Ada", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))

	// Window spanning two birthdays.
	events, err := birthdayEvents(p, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, events, 2, "2024 is a personal year 1 and adds a New Cycle marker")
	assert.Equal(t, config.EventKindYear, events[0].Kind)
	assert.Equal(t, 1, events[0].Number)
	assert.Equal(t, config.EventKindSignified, events[1].Kind)
	assert.Equal(t, "New Cycle", events[1].Title)

	// Before birth nothing is produced.
	events, err = birthdayEvents(p, time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestMercuryEvents(t *testing.T) {
	from := time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	events := mercuryEvents(from, to)
	require.Len(t, events, 3, "windows partially inside the range count")
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), events[0].Date)
	assert.Equal(t, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), events[2].End)

	assert.Empty(t, mercuryEvents(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC)))
}

func TestEventUID(t *testing.T) {
	p := NewProfile("Ada", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	critical := eventUID(Event{Kind: config.EventKindCritical, Profile: p, Date: d, Cycle: "emotional"})
	assert.Equal(t, p.UID+"-critical-day-emotional-20240101@goinsight", critical)

	significant := eventUID(Event{Kind: config.EventKindSignified, Profile: p, Date: d, Title: "Master Number Year"})
	assert.Equal(t, p.UID+"-significant-year-20240101-master-number-year@goinsight", significant)

	mercury := eventUID(Event{Kind: config.EventKindMercury, Date: d})
	assert.Equal(t, "goinsight-mercury-retrograde-20240101@goinsight", mercury)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "new-cycle", slug("New Cycle"))
	assert.Equal(t, "a-b", slug("  A -- B!  "))
	assert.Equal(t, "", slug("***"))
}

package transit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-insight/internal/biorhythm"
	"github.com/tartampluch/go-insight/internal/numerology"
	"github.com/tartampluch/go-insight/internal/transit"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSunSign(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"new year", date(2024, 1, 1), "Capricorn"},
		{"last capricorn day", date(2024, 1, 19), "Capricorn"},
		{"first aquarius day", date(2024, 1, 20), "Aquarius"},
		{"last pisces day", date(2024, 3, 20), "Pisces"},
		{"first aries day", date(2024, 3, 21), "Aries"},
		{"leo", date(2024, 8, 1), "Leo"},
		{"last sagittarius day", date(2024, 12, 21), "Sagittarius"},
		{"capricorn start", date(2024, 12, 22), "Capricorn"},
		{"year end", date(2024, 12, 31), "Capricorn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := transit.SunSign(tt.date)
			assert.Equal(t, tt.want, s.Name)
			assert.NotEmpty(t, s.Symbol)
			assert.NotEmpty(t, s.Element)
		})
	}
}

func TestMoonPhase(t *testing.T) {
	tests := map[int]string{
		1:  "New Moon",
		4:  "Waxing Crescent",
		8:  "First Quarter",
		15: "Full Moon",
		29: "Waning Crescent",
		30: "New Moon",
		31: "New Moon",
	}
	for day, want := range tests {
		assert.Equalf(t, want, transit.MoonPhase(date(2024, 1, day)).Name, "day %d", day)
	}
}

func TestIsMercuryRetrograde(t *testing.T) {
	tests := []struct {
		date time.Time
		want bool
	}{
		{date(2024, 3, 31), false},
		{date(2024, 4, 1), true},
		{date(2024, 4, 25), true},
		{date(2024, 4, 26), false},
		{date(2024, 8, 15), true},
		{date(2024, 11, 24), false},
		{date(2024, 12, 1), true},
		{date(2024, 12, 15), true},
		{date(2024, 12, 16), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, transit.IsMercuryRetrograde(tt.date), tt.date.Format(time.DateOnly))
	}
}

func TestMercuryRetrogradePeriods(t *testing.T) {
	periods := transit.MercuryRetrogradePeriods(2025, time.UTC)
	require.Len(t, periods, 3)
	assert.Equal(t, date(2025, 4, 1), periods[0][0])
	assert.Equal(t, date(2025, 12, 15), periods[2][1])
	for _, p := range periods {
		assert.True(t, transit.IsMercuryRetrograde(p[0]))
		assert.True(t, transit.IsMercuryRetrograde(p[1]))
	}
}

func TestPersonalDay(t *testing.T) {
	// Personal year 4 (1+1+2000), plus January 7th: 4+1+7 = 12 -> 3.
	assert.Equal(t, 3, transit.PersonalDay(date(2000, 1, 1), date(2000, 1, 7)))
}

func TestAdvise_PeakDay(t *testing.T) {
	birth := date(2000, 1, 1)
	adv, err := transit.Advisor{}.Advise(birth, date(2000, 1, 7))
	require.NoError(t, err)

	assert.Equal(t, 96, adv.Biorhythm.Average)
	assert.Equal(t, biorhythm.Calculate(birth, date(2000, 1, 7)), adv.Biorhythm)
	for _, c := range biorhythm.CoreCycles {
		assert.Equal(t, biorhythm.BandPeak, adv.Dimensions[c].Band, string(c))
		assert.NotEmpty(t, adv.Dimensions[c].Advice)
	}
	assert.Contains(t, adv.OverallEnergy, "Peak")
	assert.Equal(t, 1, adv.UniversalDay)
	assert.Equal(t, 4, adv.PersonalYear)
	assert.Equal(t, 3, adv.PersonalDay)
	assert.NotEmpty(t, adv.DayTheme)
	assert.Equal(t, "Capricorn", adv.NatalSign.Name)
	assert.Equal(t, "Capricorn", adv.TransitSign.Name)
	assert.Equal(t, "Waxing Crescent", adv.MoonPhase.Name)
	assert.False(t, adv.MercuryRetrograde)

	assert.Equal(t, []string{
		"Intense exercise", "Competitive sports",
		"Social gatherings", "Creative work", "Important conversations",
		"Learning new skills", "Strategic planning", "Problem solving",
		"Starting projects", "Taking the lead",
		"Making plans",
	}, adv.OptimalActivities)
	assert.NotNil(t, adv.CautionAreas)
	assert.Empty(t, adv.CautionAreas)
}

func TestAdvise_CriticalDayDuringRetrograde(t *testing.T) {
	birth := date(2000, 4, 10)
	adv, err := transit.Advisor{}.Advise(birth, birth)
	require.NoError(t, err)

	for _, c := range biorhythm.CoreCycles {
		assert.Equal(t, biorhythm.BandCritical, adv.Dimensions[c].Band)
	}
	assert.True(t, adv.MercuryRetrograde)
	assert.Equal(t, "First Quarter", adv.MoonPhase.Name)

	// "Signing contracts" appears for the intellectual cycle and for Mercury; kept once.
	assert.Equal(t, []string{
		"Risky physical activities", "Driving while tired",
		"Emotionally charged decisions", "Arguments",
		"Signing contracts", "Major decisions",
		"Impatience",
		"Buying electronics", "Miscommunication",
	}, adv.CautionAreas)
	assert.Contains(t, adv.OptimalActivities, "Reviewing past work")
}

func TestAdvise_ZeroDateUsesNow(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)
	a := transit.Advisor{Clock: fixedClock(now)}

	adv, err := a.Advise(date(1990, 1, 1), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, date(2024, 6, 15), adv.Date)
	assert.Equal(t, "Gemini", adv.TransitSign.Name)
}

func TestAdvise_NoDuplicates(t *testing.T) {
	a := transit.Advisor{}
	birth := date(1985, 7, 23)
	for d := date(2024, 1, 1); d.Year() == 2024; d = d.AddDate(0, 0, 3) {
		adv, err := a.Advise(birth, d)
		require.NoError(t, err)
		assertUnique(t, adv.OptimalActivities)
		assertUnique(t, adv.CautionAreas)
		assert.True(t, numerology.IsValidNumber(adv.UniversalDay))
		assert.GreaterOrEqual(t, adv.PersonalDay, 1)
		assert.LessOrEqual(t, adv.PersonalDay, 9)
	}
}

func TestAdvise_MissingBirthDate(t *testing.T) {
	_, err := transit.Advisor{}.Advise(time.Time{}, date(2024, 1, 1))
	assert.ErrorIs(t, err, numerology.ErrInvalidBirthDate)
}

func assertUnique(t *testing.T, items []string) {
	t.Helper()
	seen := make(map[string]bool, len(items))
	for _, s := range items {
		assert.Falsef(t, seen[s], "duplicate %q", s)
		seen[s] = true
	}
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

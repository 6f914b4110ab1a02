package transit

import (
	"math"
	"time"
)

// Sign is a tropical zodiac sign, looked up from a fixed table of date ranges.
type Sign struct {
	Name     string   `json:"name" yaml:"name"`
	Symbol   string   `json:"symbol" yaml:"symbol"`
	Element  string   `json:"element" yaml:"element"`
	Modality string   `json:"modality" yaml:"modality"`
	Ruler    string   `json:"ruler" yaml:"ruler"`
	Traits   []string `json:"traits" yaml:"traits"`

	start monthDay
}

// Elements.
const (
	Fire  = "Fire"
	Earth = "Earth"
	Air   = "Air"
	Water = "Water"
)

// signs is ordered by start date within the calendar year; Capricorn wraps
// around the new year and is listed first and matched last.
var signs = []Sign{
	{Name: "Capricorn", Symbol: "♑", Element: Earth, Modality: "Cardinal", Ruler: "Saturn", Traits: []string{"disciplined", "ambitious", "patient"}, start: monthDay{time.December, 22}},
	{Name: "Aquarius", Symbol: "♒", Element: Air, Modality: "Fixed", Ruler: "Uranus", Traits: []string{"inventive", "independent", "humanitarian"}, start: monthDay{time.January, 20}},
	{Name: "Pisces", Symbol: "♓", Element: Water, Modality: "Mutable", Ruler: "Neptune", Traits: []string{"compassionate", "imaginative", "intuitive"}, start: monthDay{time.February, 19}},
	{Name: "Aries", Symbol: "♈", Element: Fire, Modality: "Cardinal", Ruler: "Mars", Traits: []string{"bold", "energetic", "direct"}, start: monthDay{time.March, 21}},
	{Name: "Taurus", Symbol: "♉", Element: Earth, Modality: "Fixed", Ruler: "Venus", Traits: []string{"steady", "sensual", "loyal"}, start: monthDay{time.April, 20}},
	{Name: "Gemini", Symbol: "♊", Element: Air, Modality: "Mutable", Ruler: "Mercury", Traits: []string{"curious", "versatile", "communicative"}, start: monthDay{time.May, 21}},
	{Name: "Cancer", Symbol: "♋", Element: Water, Modality: "Cardinal", Ruler: "Moon", Traits: []string{"nurturing", "protective", "sensitive"}, start: monthDay{time.June, 21}},
	{Name: "Leo", Symbol: "♌", Element: Fire, Modality: "Fixed", Ruler: "Sun", Traits: []string{"confident", "generous", "expressive"}, start: monthDay{time.July, 23}},
	{Name: "Virgo", Symbol: "♍", Element: Earth, Modality: "Mutable", Ruler: "Mercury", Traits: []string{"analytical", "practical", "helpful"}, start: monthDay{time.August, 23}},
	{Name: "Libra", Symbol: "♎", Element: Air, Modality: "Cardinal", Ruler: "Venus", Traits: []string{"diplomatic", "fair-minded", "social"}, start: monthDay{time.September, 23}},
	{Name: "Scorpio", Symbol: "♏", Element: Water, Modality: "Fixed", Ruler: "Pluto", Traits: []string{"intense", "resourceful", "perceptive"}, start: monthDay{time.October, 23}},
	{Name: "Sagittarius", Symbol: "♐", Element: Fire, Modality: "Mutable", Ruler: "Jupiter", Traits: []string{"adventurous", "optimistic", "philosophical"}, start: monthDay{time.November, 22}},
}

// SunSign returns the sign whose date range contains the month and day of d.
func SunSign(d time.Time) Sign {
	cur := monthDay{d.Month(), d.Day()}
	capricorn := signs[0]
	if !cur.before(capricorn.start) {
		return capricorn
	}
	for i := len(signs) - 1; i >= 1; i-- {
		if !cur.before(signs[i].start) {
			return signs[i]
		}
	}
	// January 1st up to Aquarius.
	return capricorn
}

// Phase is a named lunar phase.
type Phase struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
	Emoji string `json:"emoji" yaml:"emoji"`
}

// MoonPhases in cycle order.
var MoonPhases = []Phase{
	{0, "New Moon", "🌑"},
	{1, "Waxing Crescent", "🌒"},
	{2, "First Quarter", "🌓"},
	{3, "Waxing Gibbous", "🌔"},
	{4, "Full Moon", "🌕"},
	{5, "Waning Gibbous", "🌖"},
	{6, "Last Quarter", "🌗"},
	{7, "Waning Crescent", "🌘"},
}

const (
	lunarCycleDays = 29.5
	phaseSpanDays  = 3.69
)

// MoonPhase derives a phase from the day of the month alone. It is a
// stylized approximation and does not track the real moon.
func MoonPhase(d time.Time) Phase {
	idx := int(math.Floor(math.Mod(float64(d.Day()), lunarCycleDays) / phaseSpanDays))
	if idx >= len(MoonPhases) {
		idx = len(MoonPhases) - 1
	}
	return MoonPhases[idx]
}

type monthDay struct {
	month time.Month
	day   int
}

// retrogradeWindow is a fixed month/day span repeated every year.
type retrogradeWindow struct {
	start, end monthDay
}

// mercuryRetrograde lists three yearly windows, inclusive on both ends.
var mercuryRetrograde = []retrogradeWindow{
	{monthDay{time.April, 1}, monthDay{time.April, 25}},
	{monthDay{time.August, 5}, monthDay{time.August, 28}},
	{monthDay{time.November, 25}, monthDay{time.December, 15}},
}

// IsMercuryRetrograde reports whether d falls inside one of the yearly windows.
func IsMercuryRetrograde(d time.Time) bool {
	cur := monthDay{d.Month(), d.Day()}
	for _, w := range mercuryRetrograde {
		if !cur.before(w.start) && !w.end.before(cur) {
			return true
		}
	}
	return false
}

// MercuryRetrogradePeriods returns the windows of year as dates.
func MercuryRetrogradePeriods(year int, loc *time.Location) [][2]time.Time {
	out := make([][2]time.Time, 0, len(mercuryRetrograde))
	for _, w := range mercuryRetrograde {
		out = append(out, [2]time.Time{
			time.Date(year, w.start.month, w.start.day, 0, 0, 0, 0, loc),
			time.Date(year, w.end.month, w.end.day, 0, 0, 0, 0, loc),
		})
	}
	return out
}

func (a monthDay) before(b monthDay) bool {
	return a.month < b.month || (a.month == b.month && a.day < b.day)
}

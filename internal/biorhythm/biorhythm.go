// Package biorhythm computes sinusoidal biorhythm cycles from a birth date.
package biorhythm

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Cycle identifies one biorhythm wave.
type Cycle string

const (
	Physical     Cycle = "physical"
	Emotional    Cycle = "emotional"
	Intellectual Cycle = "intellectual"
	Intuitive    Cycle = "intuitive"
)

// Cycle lengths in days.
const (
	PhysicalDays     = 23
	EmotionalDays    = 28
	IntellectualDays = 33
	IntuitiveDays    = 38
)

// MaxRange caps the half-width of a series, one year either side.
const MaxRange = 366

const secondsPerDay = 24 * 60 * 60

// CoreCycles are the three cycles that make up the average.
var CoreCycles = []Cycle{Physical, Emotional, Intellectual}

// Length returns the period of c in days, or 0 for an unknown cycle.
func (c Cycle) Length() int {
	switch c {
	case Physical:
		return PhysicalDays
	case Emotional:
		return EmotionalDays
	case Intellectual:
		return IntellectualDays
	case Intuitive:
		return IntuitiveDays
	}
	return 0
}

var (
	// ErrInvalidRange is returned for a negative series half-width.
	ErrInvalidRange = errors.New("days range must not be negative")
	// ErrRangeTooWide is returned for a series half-width above MaxRange.
	ErrRangeTooWide = fmt.Errorf("days range must not exceed %d", MaxRange)
	// ErrOutOfBounds is returned when a percentage leaves [-100, 100].
	ErrOutOfBounds = errors.New("biorhythm value out of bounds")
	// ErrInvalidBirthDate is returned for a zero birth date.
	ErrInvalidBirthDate = errors.New("invalid or missing birth date")
)

// Reading holds the cycle percentages for one day, each in [-100, 100].
type Reading struct {
	Date         time.Time `json:"date" yaml:"date"`
	Physical     int       `json:"physical" yaml:"physical"`
	Emotional    int       `json:"emotional" yaml:"emotional"`
	Intellectual int       `json:"intellectual" yaml:"intellectual"`
	Intuitive    int       `json:"intuitive" yaml:"intuitive"`
	Average      int       `json:"average" yaml:"average"`
}

// NewReading builds a Reading after checking every value is within [-100, 100].
func NewReading(date time.Time, physical, emotional, intellectual, intuitive, average int) (Reading, error) {
	for _, v := range []int{physical, emotional, intellectual, intuitive, average} {
		if v < -100 || v > 100 {
			return Reading{}, fmt.Errorf("%w: %d", ErrOutOfBounds, v)
		}
	}
	return Reading{
		Date:         date,
		Physical:     physical,
		Emotional:    emotional,
		Intellectual: intellectual,
		Intuitive:    intuitive,
		Average:      average,
	}, nil
}

// Value returns the percentage of cycle c.
func (r Reading) Value(c Cycle) int {
	switch c {
	case Physical:
		return r.Physical
	case Emotional:
		return r.Emotional
	case Intellectual:
		return r.Intellectual
	case Intuitive:
		return r.Intuitive
	}
	return 0
}

// Midnight truncates t to the start of its calendar day in UTC, keeping the
// wall-clock date. Time of day and zone offsets never shift day counts.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of calendar days separating birth and
// target, regardless of order.
func DaysBetween(birth, target time.Time) int {
	// Unix seconds, not Sub: a time.Duration saturates after about 292 years.
	days := int((Midnight(target).Unix() - Midnight(birth).Unix()) / secondsPerDay)
	if days < 0 {
		return -days
	}
	return days
}

// Calculate returns the reading for target. The average is the mean of the
// raw sine values of the three core cycles, rounded once.
func Calculate(birth, target time.Time) Reading {
	days := DaysBetween(birth, target)

	p := wave(days, PhysicalDays)
	e := wave(days, EmotionalDays)
	i := wave(days, IntellectualDays)

	return Reading{
		Date:         Midnight(target),
		Physical:     percent(p),
		Emotional:    percent(e),
		Intellectual: percent(i),
		Intuitive:    percent(wave(days, IntuitiveDays)),
		Average:      percent((p + e + i) / 3),
	}
}

// GenerateSeries returns 2*daysRange+1 consecutive daily readings centered on
// center, in ascending date order.
func GenerateSeries(birth, center time.Time, daysRange int) ([]Reading, error) {
	if birth.IsZero() {
		return nil, ErrInvalidBirthDate
	}
	if daysRange < 0 {
		return nil, ErrInvalidRange
	}
	if daysRange > MaxRange {
		return nil, ErrRangeTooWide
	}

	start := Midnight(center).AddDate(0, 0, -daysRange)
	series := make([]Reading, 0, 2*daysRange+1)
	for i := 0; i <= 2*daysRange; i++ {
		series = append(series, Calculate(birth, start.AddDate(0, 0, i)))
	}
	return series, nil
}

// CriticalDay is a day on which one cycle sits close to zero.
type CriticalDay struct {
	Date  time.Time `json:"date" yaml:"date"`
	Cycle Cycle     `json:"cycle" yaml:"cycle"`
	Value int       `json:"value" yaml:"value"`
}

// CriticalDays lists every core-cycle critical day in [from, to].
func CriticalDays(birth, from, to time.Time) []CriticalDay {
	var out []CriticalDay
	end := Midnight(to)
	for d := Midnight(from); !d.After(end); d = d.AddDate(0, 0, 1) {
		r := Calculate(birth, d)
		for _, c := range CoreCycles {
			if v := r.Value(c); IsCriticalDay(v) {
				out = append(out, CriticalDay{Date: d, Cycle: c, Value: v})
			}
		}
	}
	return out
}

func wave(days, period int) float64 {
	return math.Sin(2 * math.Pi * float64(days) / float64(period))
}

// percent scales a sine value to a percentage, rounding halves upward
// (toward +Inf) rather than away from zero.
func percent(v float64) int {
	return int(math.Floor(v*100 + 0.5))
}

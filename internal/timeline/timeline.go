package timeline

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-insight/internal/numerology"
)

// Default windows used when Options leaves a bound at zero.
const (
	DefaultYearsAround     = 10
	DefaultSignificantSpan = 99
)

// Options bounds the year lists of a Timeline. Zero values select defaults:
// personal years cover the current year +/- DefaultYearsAround, significant
// years cover the birth year through DefaultSignificantSpan years later.
type Options struct {
	PersonalFrom    int
	PersonalTo      int
	SignificantFrom int
	SignificantTo   int
}

// Timeline is the full life overview for one birth date.
type Timeline struct {
	BirthDate           time.Time           `json:"birthDate" yaml:"birthDate"`
	LifePathNumber      int                 `json:"lifePathNumber" yaml:"lifePathNumber"`
	CurrentYear         int                 `json:"currentYear" yaml:"currentYear"`
	CurrentAge          int                 `json:"currentAge" yaml:"currentAge"`
	CurrentPersonalYear PersonalYearEntry   `json:"currentPersonalYear" yaml:"currentPersonalYear"`
	CurrentPeriod       *Period             `json:"currentPeriod,omitempty" yaml:"currentPeriod,omitempty"`
	PersonalYears       []PersonalYearEntry `json:"personalYears" yaml:"personalYears"`
	Periods             LifePathPeriods     `json:"periods" yaml:"periods"`
	SaturnReturns       []SaturnReturn      `json:"saturnReturns" yaml:"saturnReturns"`
	SignificantYears    []SignificantEvent  `json:"significantYears" yaml:"significantYears"`
}

// Generate assembles every timeline component for birth as seen from now.
// Any failing component fails the whole timeline.
func Generate(birth, now time.Time, opts Options) (Timeline, error) {
	if birth.IsZero() {
		return Timeline{}, numerology.ErrInvalidBirthDate
	}
	opts = opts.withDefaults(birth, now)

	periods, err := CalculateLifePathPeriods(birth)
	if err != nil {
		return Timeline{}, fmt.Errorf("life path periods: %w", err)
	}
	years, err := PersonalYears(birth, opts.PersonalFrom, opts.PersonalTo)
	if err != nil {
		return Timeline{}, fmt.Errorf("personal years: %w", err)
	}
	saturn, err := SaturnReturns(birth)
	if err != nil {
		return Timeline{}, fmt.Errorf("saturn returns: %w", err)
	}
	significant, err := SignificantYears(birth, opts.SignificantFrom, opts.SignificantTo)
	if err != nil {
		return Timeline{}, fmt.Errorf("significant years: %w", err)
	}

	current := now.Year()
	tl := Timeline{
		BirthDate:           birth,
		LifePathNumber:      periods.LifePathNumber,
		CurrentYear:         current,
		CurrentAge:          Age(birth, now),
		CurrentPersonalYear: NewPersonalYearEntry(birth.Month(), birth.Day(), current),
		PersonalYears:       years,
		Periods:             periods,
		SaturnReturns:       saturn,
		SignificantYears:    significant,
	}
	if p := periods.Current(current); p != nil {
		cp := *p
		tl.CurrentPeriod = &cp
	}
	return tl, nil
}

// Age returns completed years between birth and now, or 0 before birth.
func Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return max(age, 0)
}

func (o Options) withDefaults(birth, now time.Time) Options {
	if o.PersonalFrom == 0 {
		o.PersonalFrom = now.Year() - DefaultYearsAround
	}
	if o.PersonalTo == 0 {
		o.PersonalTo = now.Year() + DefaultYearsAround
	}
	if o.SignificantFrom == 0 {
		o.SignificantFrom = birth.Year()
	}
	if o.SignificantTo == 0 {
		o.SignificantTo = birth.Year() + DefaultSignificantSpan
	}
	return o
}

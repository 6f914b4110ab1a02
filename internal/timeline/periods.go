package timeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/go-insight/internal/numerology"
)

var (
	// ErrInvalidRange is returned when a year range is reversed.
	ErrInvalidRange = errors.New("start year must not be after end year")
	// ErrSpanTooWide is returned when a year range covers more than MaxSpan years.
	ErrSpanTooWide = fmt.Errorf("year range must not span more than %d years", MaxSpan)
	// ErrPeriodOrder is returned when a period would end before it starts.
	ErrPeriodOrder = errors.New("period ends before it starts")
)

// MaxSpan bounds the year lists a caller may request.
const MaxSpan = 200

func checkSpan(from, to int) error {
	if from > to {
		return ErrInvalidRange
	}
	// A negative difference here means the subtraction overflowed.
	if d := to - from; d < 0 || d >= MaxSpan {
		return ErrSpanTooWide
	}
	return nil
}

// Period lengths are clamped to this range.
const (
	MinPeriodLength = 20
	MaxPeriodLength = 35
	periodBase      = 36
)

// AgeRange is the age span of a period. End is nil for the open last period.
type AgeRange struct {
	Start int  `json:"start" yaml:"start"`
	End   *int `json:"end" yaml:"end"`
}

// Period is one of the three life path periods.
type Period struct {
	Index          int      `json:"index" yaml:"index"`
	Name           string   `json:"name" yaml:"name"`
	Number         int      `json:"number" yaml:"number"`
	StartYear      int      `json:"startYear" yaml:"startYear"`
	EndYear        *int     `json:"endYear" yaml:"endYear"`
	Age            AgeRange `json:"age" yaml:"age"`
	Interpretation string   `json:"interpretation" yaml:"interpretation"`
}

// Contains reports whether year falls inside the period (end exclusive).
func (p Period) Contains(year int) bool {
	return year >= p.StartYear && (p.EndYear == nil || year < *p.EndYear)
}

// NewPeriod builds a period, rejecting an end year before the start year.
func NewPeriod(index, number, birthYear, startYear int, endYear *int) (Period, error) {
	if endYear != nil && *endYear < startYear {
		return Period{}, fmt.Errorf("%w: %d > %d", ErrPeriodOrder, startYear, *endYear)
	}

	age := AgeRange{Start: startYear - birthYear}
	if endYear != nil {
		end := *endYear - birthYear
		age.End = &end
	}

	name := periodNames[index]
	return Period{
		Index:          index,
		Name:           name,
		Number:         number,
		StartYear:      startYear,
		EndYear:        endYear,
		Age:            age,
		Interpretation: fmt.Sprintf("%s: %s", name, periodThemes[number]),
	}, nil
}

var periodNames = map[int]string{
	1: "Formative Period",
	2: "Productive Period",
	3: "Harvest Period",
}

var periodThemes = map[int]string{
	1: "a time to develop independence and find your own direction.",
	2: "a time to learn cooperation, patience and sensitivity to others.",
	3: "a time of creativity, self-expression and social connection.",
	4: "a time of hard work, discipline and building solid foundations.",
	5: "a time of change, travel, freedom and varied experience.",
	6: "a time centered on family, home, responsibility and service.",
	7: "a time of study, reflection and inner development.",
	8: "a time of ambition, authority and material accomplishment.",
	9: "a time of compassion, completion and service to a wider world.",
}

// LifePathPeriods is the three-period split of a life.
type LifePathPeriods struct {
	LifePathNumber int      `json:"lifePathNumber" yaml:"lifePathNumber"`
	PeriodLength   int      `json:"periodLength" yaml:"periodLength"`
	Periods        []Period `json:"periods" yaml:"periods"`
}

// Current returns the period containing year, or nil before birth.
func (lp LifePathPeriods) Current(year int) *Period {
	for i := range lp.Periods {
		if lp.Periods[i].Contains(year) {
			return &lp.Periods[i]
		}
	}
	return nil
}

// PeriodLength returns clamp(36 - lifePath, 20, 35).
func PeriodLength(lifePath int) int {
	return min(max(periodBase-lifePath, MinPeriodLength), MaxPeriodLength)
}

// CalculateLifePathPeriods splits life into three contiguous periods starting
// at the birth year. Period numbers come from the birth month, the birth day
// and the digit sum of the birth year; only the shared length of the first two
// periods depends on the life path number. The third period is open-ended.
func CalculateLifePathPeriods(birth time.Time) (LifePathPeriods, error) {
	lifePath, err := numerology.LifePathNumber(birth)
	if err != nil {
		return LifePathPeriods{}, err
	}

	length := PeriodLength(lifePath)
	birthYear := birth.Year()
	numbers := [3]int{
		numerology.ReduceToSingleDigit(int(birth.Month()), false),
		numerology.ReduceToSingleDigit(birth.Day(), false),
		numerology.ReduceToSingleDigit(numerology.DigitSum(birthYear), false),
	}

	firstEnd := birthYear + length
	secondEnd := firstEnd + length
	bounds := [3]struct {
		start int
		end   *int
	}{
		{birthYear, &firstEnd},
		{firstEnd, &secondEnd},
		{secondEnd, nil},
	}

	periods := make([]Period, 0, 3)
	for i, b := range bounds {
		p, err := NewPeriod(i+1, numbers[i], birthYear, b.start, b.end)
		if err != nil {
			return LifePathPeriods{}, err
		}
		periods = append(periods, p)
	}

	return LifePathPeriods{
		LifePathNumber: lifePath,
		PeriodLength:   length,
		Periods:        periods,
	}, nil
}

package timeline

import (
	"slices"
	"time"

	"github.com/tartampluch/go-insight/internal/numerology"
)

// SaturnReturn is a fixed age window; there is no astronomical computation.
type SaturnReturn struct {
	Number      int    `json:"number" yaml:"number"`
	StartYear   int    `json:"startYear" yaml:"startYear"`
	EndYear     int    `json:"endYear" yaml:"endYear"`
	StartAge    int    `json:"startAge" yaml:"startAge"`
	EndAge      int    `json:"endAge" yaml:"endAge"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Intensity   string `json:"intensity" yaml:"intensity"`
}

var saturnWindows = []struct {
	startAge, endAge       int
	title, desc, intensity string
}{
	{27, 30, "First Saturn Return", "The transition into true adulthood. Structures built on borrowed expectations are tested, and commitments chosen now tend to last.", "high"},
	{56, 60, "Second Saturn Return", "A reckoning with legacy and purpose. Priorities shift toward wisdom, mentoring and what truly matters.", "high"},
	{84, 88, "Third Saturn Return", "A time of life review and acceptance, integrating a lifetime of experience.", "moderate"},
}

// SaturnReturns returns the three windows for birth.
func SaturnReturns(birth time.Time) ([]SaturnReturn, error) {
	if birth.IsZero() {
		return nil, numerology.ErrInvalidBirthDate
	}
	y := birth.Year()
	out := make([]SaturnReturn, 0, len(saturnWindows))
	for i, w := range saturnWindows {
		out = append(out, SaturnReturn{
			Number:      i + 1,
			StartYear:   y + w.startAge,
			EndYear:     y + w.endAge,
			StartAge:    w.startAge,
			EndAge:      w.endAge,
			Title:       w.title,
			Description: w.desc,
			Intensity:   w.intensity,
		})
	}
	return out, nil
}

// EventType tags a significant year.
type EventType string

const (
	EventNewCycle     EventType = "new-cycle"
	EventTransition   EventType = "transition"
	EventPinnacle     EventType = "pinnacle"
	EventMasterNumber EventType = "master-number"
)

// SignificantEvent marks one reason a year stands out. A year can carry
// several events.
type SignificantEvent struct {
	Year         int       `json:"year" yaml:"year"`
	Age          int       `json:"age" yaml:"age"`
	PersonalYear int       `json:"personalYear" yaml:"personalYear"`
	Type         EventType `json:"type" yaml:"type"`
	Title        string    `json:"title" yaml:"title"`
	Description  string    `json:"description" yaml:"description"`
}

var pinnacleAges = []int{11, 29, 38, 56, 65, 74}

// masterAgeStep spaces master-number ages (11, 22, ... 99).
const (
	masterAgeStep = 11
	masterAgeMax  = 99
)

// SignificantYears scans [from, to] and returns one event per matching
// check, ordered by year.
func SignificantYears(birth time.Time, from, to int) ([]SignificantEvent, error) {
	if birth.IsZero() {
		return nil, numerology.ErrInvalidBirthDate
	}
	if err := checkSpan(from, to); err != nil {
		return nil, err
	}

	var out []SignificantEvent
	for year := from; year <= to; year++ {
		age := year - birth.Year()
		py := PersonalYear(birth.Month(), birth.Day(), year)
		add := func(typ EventType, title, desc string) {
			out = append(out, SignificantEvent{
				Year: year, Age: age, PersonalYear: py,
				Type: typ, Title: title, Description: desc,
			})
		}

		if py == 1 {
			add(EventNewCycle, "New Cycle", "Personal year 1 opens a new nine-year cycle.")
		}
		if py == 9 {
			add(EventTransition, "Transition Year", "Personal year 9 closes the current cycle.")
		}
		if slices.Contains(pinnacleAges, age) {
			add(EventPinnacle, "Pinnacle Year", "A turning-point age in the pinnacle sequence.")
		}
		if age > 0 && age <= masterAgeMax && age%masterAgeStep == 0 {
			add(EventMasterNumber, "Master Number Year", "An age that repeats a single digit, amplifying its energy.")
		}
	}
	return out, nil
}

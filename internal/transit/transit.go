// Package transit composes biorhythm, numerology and stylized sky lookups into
// a single piece of daily advice.
//
// The zodiac, moon and Mercury lookups are fixed tables. They are not
// astronomically accurate and are not meant to be.
package transit

import (
	"time"

	"github.com/tartampluch/go-insight/internal/biorhythm"
	"github.com/tartampluch/go-insight/internal/numerology"
	"github.com/tartampluch/go-insight/internal/timeline"
)

// Dimension is the state and advice of one biorhythm cycle.
type Dimension struct {
	Value  int            `json:"value" yaml:"value"`
	Band   biorhythm.Band `json:"band" yaml:"band"`
	Advice string         `json:"advice" yaml:"advice"`
}

// Advice is the composite daily reading for one (birth date, date) pair.
type Advice struct {
	Date              time.Time                     `json:"date" yaml:"date"`
	BirthDate         time.Time                     `json:"birthDate" yaml:"birthDate"`
	Biorhythm         biorhythm.Reading             `json:"biorhythm" yaml:"biorhythm"`
	Dimensions        map[biorhythm.Cycle]Dimension `json:"dimensions" yaml:"dimensions"`
	OverallEnergy     string                        `json:"overallEnergy" yaml:"overallEnergy"`
	UniversalDay      int                           `json:"universalDay" yaml:"universalDay"`
	PersonalDay       int                           `json:"personalDay" yaml:"personalDay"`
	PersonalYear      int                           `json:"personalYear" yaml:"personalYear"`
	DayTheme          string                        `json:"dayTheme" yaml:"dayTheme"`
	NatalSign         Sign                          `json:"natalSign" yaml:"natalSign"`
	TransitSign       Sign                          `json:"transitSign" yaml:"transitSign"`
	MoonPhase         Phase                         `json:"moonPhase" yaml:"moonPhase"`
	MercuryRetrograde bool                          `json:"mercuryRetrograde" yaml:"mercuryRetrograde"`
	OptimalActivities []string                      `json:"optimalActivities" yaml:"optimalActivities"`
	CautionAreas      []string                      `json:"cautionAreas" yaml:"cautionAreas"`
}

// Clock supplies the current time. engine.Clock satisfies it.
type Clock interface {
	Now() time.Time
}

// Advisor computes daily advice. Clock supplies the default date; nil means
// the system clock.
type Advisor struct {
	Clock Clock
}

// PersonalDay reduces personal year + month + day of date without master numbers.
func PersonalDay(birth, date time.Time) int {
	py := timeline.PersonalYear(birth.Month(), birth.Day(), date.Year())
	return numerology.ReduceToSingleDigit(py+int(date.Month())+date.Day(), false)
}

// Advise builds the advice for birth on date. A zero date means today.
// Either every component succeeds or an error is returned.
func (a Advisor) Advise(birth, date time.Time) (Advice, error) {
	if birth.IsZero() {
		return Advice{}, numerology.ErrInvalidBirthDate
	}
	if date.IsZero() {
		date = a.now()
	}
	date = biorhythm.Midnight(date)

	reading := biorhythm.Calculate(birth, date)

	universal := numerology.UniversalDayNumber(date)
	moon := MoonPhase(date)
	retro := IsMercuryRetrograde(date)

	adv := Advice{
		Date:              date,
		BirthDate:         biorhythm.Midnight(birth),
		Biorhythm:         reading,
		Dimensions:        make(map[biorhythm.Cycle]Dimension, len(biorhythm.CoreCycles)),
		OverallEnergy:     overallEnergy[biorhythm.ClassifyValue(reading.Average)],
		UniversalDay:      universal,
		PersonalDay:       PersonalDay(birth, date),
		PersonalYear:      timeline.PersonalYear(birth.Month(), birth.Day(), date.Year()),
		DayTheme:          dayNumberMeanings[universal],
		NatalSign:         SunSign(birth),
		TransitSign:       SunSign(date),
		MoonPhase:         moon,
		MercuryRetrograde: retro,
	}

	var optimal, caution orderedSet
	for _, c := range biorhythm.CoreCycles {
		v := reading.Value(c)
		band := biorhythm.Classify(v)
		adv.Dimensions[c] = Dimension{Value: v, Band: band, Advice: dimensionAdvice[c][band]}

		p := cyclePhrases[c][band]
		optimal.add(p.optimal...)
		caution.add(p.caution...)
	}

	optimal.add(dayNumberPhrases[universal].optimal...)
	caution.add(dayNumberPhrases[universal].caution...)
	optimal.add(moonPhrases[moon.Index].optimal...)
	caution.add(moonPhrases[moon.Index].caution...)
	if retro {
		optimal.add(mercuryPhrases.optimal...)
		caution.add(mercuryPhrases.caution...)
	}

	adv.OptimalActivities = optimal.items
	adv.CautionAreas = caution.items
	return adv, nil
}

func (a Advisor) now() time.Time {
	if a.Clock != nil {
		return a.Clock.Now()
	}
	return time.Now()
}

// orderedSet de-duplicates strings, keeping the first occurrence.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func (s *orderedSet) add(values ...string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
		s.items = []string{}
	}
	for _, v := range values {
		if _, ok := s.seen[v]; ok {
			continue
		}
		s.seen[v] = struct{}{}
		s.items = append(s.items, v)
	}
}

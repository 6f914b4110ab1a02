package numerology

import (
	"strings"
	"time"
)

// Profile is the set of core numbers for one person.
// Name-derived numbers are zero when no name was supplied (HasName is false).
type Profile struct {
	LifePathNumber    int  `json:"lifePathNumber" yaml:"lifePathNumber"`
	DestinyNumber     int  `json:"destinyNumber" yaml:"destinyNumber"`
	SoulUrgeNumber    int  `json:"soulUrgeNumber" yaml:"soulUrgeNumber"`
	PersonalityNumber int  `json:"personalityNumber" yaml:"personalityNumber"`
	BirthdayNumber    int  `json:"birthdayNumber" yaml:"birthdayNumber"`
	HasName           bool `json:"hasName" yaml:"hasName"`
}

// ComputeProfile calculates every number for birth and, when not blank, name.
func ComputeProfile(birth time.Time, name string) (Profile, error) {
	var p Profile
	var err error

	if p.LifePathNumber, err = LifePathNumber(birth); err != nil {
		return Profile{}, err
	}
	if p.BirthdayNumber, err = BirthdayNumber(birth); err != nil {
		return Profile{}, err
	}

	if strings.TrimSpace(name) == "" {
		return p, nil
	}
	p.HasName = true
	// The name is known to be non-blank here, so these cannot fail.
	p.DestinyNumber, _ = DestinyNumber(name)
	p.SoulUrgeNumber, _ = SoulUrgeNumber(name)
	p.PersonalityNumber, _ = PersonalityNumber(name)
	return p, nil
}

// Reading pairs a number with its interpretation.
type Reading struct {
	Number         int            `json:"number" yaml:"number"`
	Interpretation Interpretation `json:"interpretation" yaml:"interpretation"`
}

// Report is a Profile with every number interpreted, as shown to the user.
type Report struct {
	Profile     Profile  `json:"profile" yaml:"profile"`
	LifePath    Reading  `json:"lifePath" yaml:"lifePath"`
	Birthday    Reading  `json:"birthday" yaml:"birthday"`
	Destiny     *Reading `json:"destiny,omitempty" yaml:"destiny,omitempty"`
	SoulUrge    *Reading `json:"soulUrge,omitempty" yaml:"soulUrge,omitempty"`
	Personality *Reading `json:"personality,omitempty" yaml:"personality,omitempty"`
}

// NewReport interprets every number of p.
func NewReport(p Profile) Report {
	r := Report{
		Profile:  p,
		LifePath: Reading{Number: p.LifePathNumber, Interpretation: Interpret(p.LifePathNumber)},
		Birthday: Reading{Number: p.BirthdayNumber, Interpretation: BirthdayInterpretation(p.BirthdayNumber)},
	}
	if p.HasName {
		r.Destiny = &Reading{Number: p.DestinyNumber, Interpretation: Interpret(p.DestinyNumber)}
		r.SoulUrge = &Reading{Number: p.SoulUrgeNumber, Interpretation: Interpret(p.SoulUrgeNumber)}
		r.Personality = &Reading{Number: p.PersonalityNumber, Interpretation: Interpret(p.PersonalityNumber)}
	}
	return r
}

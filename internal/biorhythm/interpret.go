package biorhythm

import "fmt"

// Band classifies a cycle percentage.
type Band string

const (
	BandCritical Band = "critical"
	BandPeak     Band = "peak"
	BandHigh     Band = "high"
	BandNeutral  Band = "neutral"
	BandLow      Band = "low"
	BandValley   Band = "valley"
)

// CriticalThreshold is the largest absolute value still considered critical.
const CriticalThreshold = 5

// IsCriticalDay reports whether v is within CriticalThreshold of zero.
func IsCriticalDay(v int) bool {
	return v >= -CriticalThreshold && v <= CriticalThreshold
}

// ClassifyValue returns the band of v, ignoring the critical check.
// Used where only the level matters.
func ClassifyValue(v int) Band {
	switch {
	case v > 70:
		return BandPeak
	case v > 30:
		return BandHigh
	case v > -30:
		return BandNeutral
	case v > -70:
		return BandLow
	default:
		return BandValley
	}
}

// Classify returns the band of v; critical takes precedence.
func Classify(v int) Band {
	if IsCriticalDay(v) {
		return BandCritical
	}
	return ClassifyValue(v)
}

var templates = map[Band]string{
	BandCritical: "Critical day for your %s cycle: energy is in transition, so take extra care and avoid major decisions.",
	BandPeak:     "Your %s energy is at its peak. Make the most of it.",
	BandHigh:     "Your %s energy is high. A good day for related activities.",
	BandNeutral:  "Your %s energy is balanced. Keep a steady pace.",
	BandLow:      "Your %s energy is low. Pace yourself and rest when needed.",
	BandValley:   "Your %s energy is in a valley. Focus on recovery and self-care.",
}

// Interpret returns the fixed text for the band of v, parameterized by cycle name.
func Interpret(c Cycle, v int) string {
	return fmt.Sprintf(templates[Classify(v)], c)
}

// Summary describes every core cycle of r.
type Summary struct {
	Reading         Reading          `json:"reading" yaml:"reading"`
	Bands           map[Cycle]Band   `json:"bands" yaml:"bands"`
	Interpretations map[Cycle]string `json:"interpretations" yaml:"interpretations"`
	CriticalCycles  []Cycle          `json:"criticalCycles,omitempty" yaml:"criticalCycles,omitempty"`
}

// Summarize classifies and interprets every core cycle of r.
func Summarize(r Reading) Summary {
	s := Summary{
		Reading:         r,
		Bands:           make(map[Cycle]Band, len(CoreCycles)),
		Interpretations: make(map[Cycle]string, len(CoreCycles)),
	}
	for _, c := range CoreCycles {
		v := r.Value(c)
		s.Bands[c] = Classify(v)
		s.Interpretations[c] = Interpret(c, v)
		if IsCriticalDay(v) {
			s.CriticalCycles = append(s.CriticalCycles, c)
		}
	}
	return s
}

// Package timeline builds year-based numerology cycles: personal years,
// life path periods, Saturn return windows and significant years.
package timeline

import (
	"time"

	"github.com/tartampluch/go-insight/internal/numerology"
)

// PersonalYear reduces birthMonth + birthDay + year without preserving master
// numbers, so the result is always 1-9.
func PersonalYear(birthMonth time.Month, birthDay, year int) int {
	return numerology.ReduceToSingleDigit(int(birthMonth)+birthDay+year, false)
}

// PersonalYearEntry is one calendar year of the nine-year cycle.
type PersonalYearEntry struct {
	Year         int    `json:"year" yaml:"year"`
	PersonalYear int    `json:"personalYear" yaml:"personalYear"`
	Title        string `json:"title" yaml:"title"`
	Theme        string `json:"theme" yaml:"theme"`
	Energy       string `json:"energy" yaml:"energy"`
	Description  string `json:"description" yaml:"description"`
	Advice       string `json:"advice" yaml:"advice"`
	Color        string `json:"color" yaml:"color"`
}

type yearMeaning struct {
	title, theme, energy, description, advice, color string
}

var personalYearMeanings = map[int]yearMeaning{
	1: {"New Beginnings", "Initiation", "Dynamic", "A fresh nine-year cycle opens. Seeds planted now shape the years ahead.", "Start the project you have been postponing and act on your own initiative.", "#e74c3c"},
	2: {"Patience and Partnership", "Cooperation", "Receptive", "Growth happens quietly beneath the surface. Relationships and details matter most.", "Collaborate, listen closely and let things ripen at their own pace.", "#e67e22"},
	3: {"Expression and Joy", "Creativity", "Expansive", "Social life and self-expression flourish. Ideas want to be shared.", "Create, communicate and celebrate, but keep your energy from scattering.", "#f1c40f"},
	4: {"Foundation Building", "Structure", "Steady", "A year of work, discipline and laying groundwork for lasting results.", "Organize your finances, health and routines. Consistency pays off.", "#27ae60"},
	5: {"Change and Freedom", "Transformation", "Restless", "Movement, travel and unexpected change shake up the status quo.", "Embrace change and try new things while keeping commitments in sight.", "#3498db"},
	6: {"Home and Responsibility", "Nurturing", "Harmonious", "Family, home and community ask for your attention and care.", "Strengthen relationships and support others without neglecting yourself.", "#8e44ad"},
	7: {"Reflection and Insight", "Introspection", "Inward", "A quieter year for study, rest and spiritual growth.", "Make time for solitude, learning and listening to your intuition.", "#2c3e50"},
	8: {"Power and Achievement", "Abundance", "Ambitious", "Effort from earlier years can bring recognition and material reward.", "Think big, take charge of finances and step into authority.", "#c0392b"},
	9: {"Completion and Release", "Closure", "Reflective", "The cycle ends. Let go of what no longer serves to make room for the next.", "Finish open projects, forgive, and clear space for a new beginning.", "#7f8c8d"},
}

// NewPersonalYearEntry describes year for someone born on birthMonth/birthDay.
func NewPersonalYearEntry(birthMonth time.Month, birthDay, year int) PersonalYearEntry {
	py := PersonalYear(birthMonth, birthDay, year)
	m := personalYearMeanings[py]
	return PersonalYearEntry{
		Year:         year,
		PersonalYear: py,
		Title:        m.title,
		Theme:        m.theme,
		Energy:       m.energy,
		Description:  m.description,
		Advice:       m.advice,
		Color:        m.color,
	}
}

// PersonalYears lists the entries for every year in [from, to].
func PersonalYears(birth time.Time, from, to int) ([]PersonalYearEntry, error) {
	if birth.IsZero() {
		return nil, numerology.ErrInvalidBirthDate
	}
	if err := checkSpan(from, to); err != nil {
		return nil, err
	}
	out := make([]PersonalYearEntry, 0, to-from+1)
	for y := from; y <= to; y++ {
		out = append(out, NewPersonalYearEntry(birth.Month(), birth.Day(), y))
	}
	return out, nil
}

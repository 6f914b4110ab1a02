package numerology

// Interpretation is the descriptive text attached to a number.
type Interpretation struct {
	Title       string   `json:"title" yaml:"title"`
	Strengths   []string `json:"strengths,omitempty" yaml:"strengths,omitempty"`
	Challenges  []string `json:"challenges,omitempty" yaml:"challenges,omitempty"`
	Career      string   `json:"career,omitempty" yaml:"career,omitempty"`
	Explanation string   `json:"explanation" yaml:"explanation"`
}

// UnknownInterpretation is returned for numbers outside the tables. It is a
// data-completeness fallback, not an error.
var UnknownInterpretation = Interpretation{
	Title:       "Unknown",
	Explanation: "Interpretation not available for this number.",
}

var interpretations = map[int]Interpretation{
	1: {
		Title:       "The Leader",
		Strengths:   []string{"Independent", "Ambitious", "Original", "Determined"},
		Challenges:  []string{"Stubbornness", "Impatience", "Self-centeredness"},
		Career:      "Entrepreneur, manager, inventor, freelancer",
		Explanation: "Ones are pioneers who prefer to set the direction rather than follow it. Growth comes from learning to lead without isolating themselves.",
	},
	2: {
		Title:       "The Peacemaker",
		Strengths:   []string{"Diplomatic", "Cooperative", "Intuitive", "Patient"},
		Challenges:  []string{"Over-sensitivity", "Indecision", "Dependence on approval"},
		Career:      "Mediator, counselor, teacher, team coordinator",
		Explanation: "Twos thrive in partnership and bring harmony to groups. Their task is to value their own needs as much as the needs of others.",
	},
	3: {
		Title:       "The Communicator",
		Strengths:   []string{"Creative", "Expressive", "Optimistic", "Social"},
		Challenges:  []string{"Scattered energy", "Superficiality", "Mood swings"},
		Career:      "Writer, performer, designer, marketer",
		Explanation: "Threes are here to express themselves and inspire others. Focus and discipline turn their many talents into lasting work.",
	},
	4: {
		Title:       "The Builder",
		Strengths:   []string{"Practical", "Reliable", "Organized", "Hard-working"},
		Challenges:  []string{"Rigidity", "Over-caution", "Workaholism"},
		Career:      "Engineer, accountant, architect, project manager",
		Explanation: "Fours create stable foundations through steady effort. Flexibility keeps their structures from becoming cages.",
	},
	5: {
		Title:       "The Adventurer",
		Strengths:   []string{"Adaptable", "Curious", "Energetic", "Freedom-loving"},
		Challenges:  []string{"Restlessness", "Inconsistency", "Overindulgence"},
		Career:      "Traveler, journalist, sales, entrepreneur",
		Explanation: "Fives learn through experience and change. Commitment chosen freely gives their freedom a purpose.",
	},
	6: {
		Title:       "The Nurturer",
		Strengths:   []string{"Responsible", "Caring", "Protective", "Harmonious"},
		Challenges:  []string{"Self-sacrifice", "Perfectionism", "Meddling"},
		Career:      "Healthcare, teaching, social work, interior design",
		Explanation: "Sixes are drawn to care for family and community. Their lesson is to support others without carrying everyone's burdens.",
	},
	7: {
		Title:       "The Seeker",
		Strengths:   []string{"Analytical", "Introspective", "Wise", "Spiritual"},
		Challenges:  []string{"Isolation", "Skepticism", "Aloofness"},
		Career:      "Researcher, analyst, philosopher, scientist",
		Explanation: "Sevens look beneath the surface for truth. Sharing what they discover keeps them connected to the world.",
	},
	8: {
		Title:       "The Powerhouse",
		Strengths:   []string{"Authoritative", "Efficient", "Goal-oriented", "Resilient"},
		Challenges:  []string{"Materialism", "Control", "Work-life imbalance"},
		Career:      "Executive, banker, lawyer, business owner",
		Explanation: "Eights master the material world and handle power well. Using it with integrity is what makes their success last.",
	},
	9: {
		Title:       "The Humanitarian",
		Strengths:   []string{"Compassionate", "Generous", "Idealistic", "Tolerant"},
		Challenges:  []string{"Martyrdom", "Detachment", "Difficulty letting go"},
		Career:      "Nonprofit work, arts, healing, activism",
		Explanation: "Nines serve a larger cause and see the big picture. Completion and release are recurring themes in their lives.",
	},
	11: {
		Title:       "The Intuitive Messenger",
		Strengths:   []string{"Visionary", "Inspiring", "Highly intuitive", "Sensitive"},
		Challenges:  []string{"Nervous tension", "Self-doubt", "Impracticality"},
		Career:      "Spiritual teacher, artist, counselor, inventor",
		Explanation: "Eleven is a master number carrying the cooperation of 2 at a higher voltage. Grounding their insight lets them illuminate others.",
	},
	22: {
		Title:       "The Master Builder",
		Strengths:   []string{"Visionary pragmatism", "Discipline", "Large-scale thinking", "Leadership"},
		Challenges:  []string{"Overwhelming pressure", "Rigidity", "Fear of failure"},
		Career:      "Architect, statesman, founder, global organizer",
		Explanation: "Twenty-two is a master number that turns big dreams into concrete reality. Its challenge is living up to its own potential without burning out.",
	},
	33: {
		Title:       "The Master Teacher",
		Strengths:   []string{"Selfless service", "Compassion", "Creativity", "Healing presence"},
		Challenges:  []string{"Self-neglect", "Overresponsibility", "Unrealistic ideals"},
		Career:      "Healer, teacher, humanitarian leader, artist",
		Explanation: "Thirty-three is the rarest master number, combining the nurturing of 6 with a calling to uplift others through love and example.",
	},
}

var birthdayInterpretations = map[int]Interpretation{
	1:  {Title: "Day of Initiative", Explanation: "You were born with the gift of starting things and standing on your own."},
	2:  {Title: "Day of Partnership", Explanation: "You were born with the gift of sensing others and bringing people together."},
	3:  {Title: "Day of Expression", Explanation: "You were born with the gift of words, art and an infectious enthusiasm."},
	4:  {Title: "Day of Order", Explanation: "You were born with the gift of structure, patience and dependable effort."},
	5:  {Title: "Day of Freedom", Explanation: "You were born with the gift of versatility and a quick, curious mind."},
	6:  {Title: "Day of Care", Explanation: "You were born with the gift of responsibility and a warm, protective heart."},
	7:  {Title: "Day of Insight", Explanation: "You were born with the gift of deep thought and an inner search for meaning."},
	8:  {Title: "Day of Achievement", Explanation: "You were born with the gift of managing resources and reaching ambitious goals."},
	9:  {Title: "Day of Compassion", Explanation: "You were born with the gift of empathy and a broad, generous outlook."},
	11: {Title: "Day of Illumination", Explanation: "Born on the 11th, you carry heightened intuition and the power to inspire."},
	22: {Title: "Day of Mastery", Explanation: "Born on the 22nd, you can turn large visions into practical achievements."},
}

// Interpret returns the general interpretation of a core number.
func Interpret(n int) Interpretation {
	if in, ok := interpretations[n]; ok {
		return in
	}
	return UnknownInterpretation
}

// BirthdayInterpretation returns the birthday-number gift text.
func BirthdayInterpretation(n int) Interpretation {
	if in, ok := birthdayInterpretations[n]; ok {
		return in
	}
	return UnknownInterpretation
}

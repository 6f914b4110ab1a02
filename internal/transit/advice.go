package transit

import (
	"github.com/tartampluch/go-insight/internal/biorhythm"
)

// dimensionAdvice holds the advice text of each band, per cycle.
var dimensionAdvice = map[biorhythm.Cycle]map[biorhythm.Band]string{
	biorhythm.Physical: {
		biorhythm.BandCritical: "Your body is switching phases. Avoid risky physical activity and move with care.",
		biorhythm.BandPeak:     "Excellent day for demanding workouts, sports or physical projects.",
		biorhythm.BandHigh:     "Good stamina today. Stay active and tackle physical tasks.",
		biorhythm.BandNeutral:  "Moderate energy. Keep to your usual routine and listen to your body.",
		biorhythm.BandLow:      "Energy is running low. Choose gentle movement like walking or stretching.",
		biorhythm.BandValley:   "Recovery day. Prioritize sleep, hydration and rest.",
	},
	biorhythm.Emotional: {
		biorhythm.BandCritical: "Feelings may swing unexpectedly. Postpone emotionally charged decisions.",
		biorhythm.BandPeak:     "Warm and open. A great day for connection, romance and creativity.",
		biorhythm.BandHigh:     "Positive mood. Reach out to friends and share what matters.",
		biorhythm.BandNeutral:  "Emotionally balanced. A steady day for ordinary interactions.",
		biorhythm.BandLow:      "You may feel more sensitive. Be gentle with yourself and others.",
		biorhythm.BandValley:   "Emotional reserves are low. Seek comfort and avoid confrontations.",
	},
	biorhythm.Intellectual: {
		biorhythm.BandCritical: "Concentration may waver. Double-check important work and avoid signing commitments.",
		biorhythm.BandPeak:     "Mind is sharp. Ideal for learning, strategy and complex problems.",
		biorhythm.BandHigh:     "Clear thinking. Good for planning, writing and study.",
		biorhythm.BandNeutral:  "Average focus. Handle routine mental tasks.",
		biorhythm.BandLow:      "Focus is harder to hold. Break work into small steps.",
		biorhythm.BandValley:   "Mental fatigue likely. Stick to simple tasks and defer big decisions.",
	},
}

// phrases lists optimal activities and caution areas.
type phrases struct {
	optimal []string
	caution []string
}

var cyclePhrases = map[biorhythm.Cycle]map[biorhythm.Band]phrases{
	biorhythm.Physical: {
		biorhythm.BandCritical: {caution: []string{"Risky physical activities", "Driving while tired"}},
		biorhythm.BandPeak:     {optimal: []string{"Intense exercise", "Competitive sports"}},
		biorhythm.BandHigh:     {optimal: []string{"Exercise", "Physical projects"}},
		biorhythm.BandNeutral:  {optimal: []string{"Moderate exercise"}},
		biorhythm.BandLow:      {optimal: []string{"Gentle stretching"}, caution: []string{"Strenuous physical activity"}},
		biorhythm.BandValley:   {optimal: []string{"Rest and recovery"}, caution: []string{"Strenuous physical activity", "Overcommitting your time"}},
	},
	biorhythm.Emotional: {
		biorhythm.BandCritical: {caution: []string{"Emotionally charged decisions", "Arguments"}},
		biorhythm.BandPeak:     {optimal: []string{"Social gatherings", "Creative work", "Important conversations"}},
		biorhythm.BandHigh:     {optimal: []string{"Social gatherings", "Reconnecting with friends"}},
		biorhythm.BandNeutral:  {optimal: []string{"Everyday socializing"}},
		biorhythm.BandLow:      {optimal: []string{"Journaling"}, caution: []string{"Emotional confrontations"}},
		biorhythm.BandValley:   {optimal: []string{"Self-care", "Journaling"}, caution: []string{"Emotional confrontations", "Overcommitting your time"}},
	},
	biorhythm.Intellectual: {
		biorhythm.BandCritical: {caution: []string{"Signing contracts", "Major decisions"}},
		biorhythm.BandPeak:     {optimal: []string{"Learning new skills", "Strategic planning", "Problem solving"}},
		biorhythm.BandHigh:     {optimal: []string{"Strategic planning", "Study"}},
		biorhythm.BandNeutral:  {optimal: []string{"Routine tasks"}},
		biorhythm.BandLow:      {optimal: []string{"Routine tasks"}, caution: []string{"Complex analytical work"}},
		biorhythm.BandValley:   {optimal: []string{"Light reading"}, caution: []string{"Complex analytical work", "Major decisions"}},
	},
}

var moonPhrases = map[int]phrases{
	0: {optimal: []string{"Setting intentions", "Starting projects"}, caution: []string{"Overexertion"}},
	1: {optimal: []string{"Starting projects", "Making plans"}},
	2: {optimal: []string{"Taking action", "Problem solving"}, caution: []string{"Impatience"}},
	3: {optimal: []string{"Refining work", "Study"}},
	4: {optimal: []string{"Celebrations", "Completing projects"}, caution: []string{"Emotional overreactions"}},
	5: {optimal: []string{"Sharing knowledge", "Gratitude practice"}},
	6: {optimal: []string{"Decluttering", "Letting go"}, caution: []string{"Starting projects"}},
	7: {optimal: []string{"Rest and recovery", "Reflection"}, caution: []string{"Overcommitting your time"}},
}

var mercuryPhrases = phrases{
	optimal: []string{"Reviewing past work", "Reconnecting with old friends"},
	caution: []string{"Signing contracts", "Buying electronics", "Miscommunication"},
}

var dayNumberPhrases = map[int]phrases{
	1:  {optimal: []string{"Starting projects", "Taking the lead"}},
	2:  {optimal: []string{"Collaboration", "Diplomacy"}},
	3:  {optimal: []string{"Creative work", "Social gatherings"}},
	4:  {optimal: []string{"Organizing", "Routine tasks"}},
	5:  {optimal: []string{"Travel", "Trying something new"}, caution: []string{"Impulsive spending"}},
	6:  {optimal: []string{"Family time", "Helping others"}},
	7:  {optimal: []string{"Reflection", "Study"}},
	8:  {optimal: []string{"Financial planning", "Business decisions"}},
	9:  {optimal: []string{"Completing projects", "Letting go"}},
	11: {optimal: []string{"Meditation", "Listening to intuition"}},
	22: {optimal: []string{"Long-term planning", "Building foundations"}},
	33: {optimal: []string{"Teaching", "Helping others"}},
}

var dayNumberMeanings = map[int]string{
	1:  "Initiative and fresh starts",
	2:  "Cooperation and patience",
	3:  "Expression and joy",
	4:  "Work and structure",
	5:  "Change and movement",
	6:  "Care and responsibility",
	7:  "Reflection and insight",
	8:  "Power and results",
	9:  "Completion and compassion",
	11: "Intuition and inspiration",
	22: "Vision made practical",
	33: "Service and healing",
}

var overallEnergy = map[biorhythm.Band]string{
	biorhythm.BandPeak:    "Peak overall energy. Aim high today.",
	biorhythm.BandHigh:    "Strong overall energy. A productive day.",
	biorhythm.BandNeutral: "Balanced overall energy. Pace yourself.",
	biorhythm.BandLow:     "Lower overall energy. Keep the agenda light.",
	biorhythm.BandValley:  "Depleted overall energy. Rest and recharge.",
}

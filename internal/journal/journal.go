// Package journal analyzes free-text journal entries: recurring words,
// people mentioned and the average mood.
package journal

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Mood bounds.
const (
	MinMood = 1
	MaxMood = 10
)

// MinWordLength is the shortest word counted in frequencies.
const MinWordLength = 3

// Entry is one journal note.
type Entry struct {
	ID   string    `json:"id" yaml:"id"`
	Date time.Time `json:"date" yaml:"date"`
	Text string    `json:"text" yaml:"text"`
	// Mood is optional; entries without one are left out of the average.
	Mood *int     `json:"mood,omitempty" yaml:"mood,omitempty"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Count pairs a term with its number of occurrences.
type Count struct {
	Term  string `json:"term" yaml:"term"`
	Count int    `json:"count" yaml:"count"`
}

// Analysis summarizes a set of entries.
type Analysis struct {
	Entries     int     `json:"entries" yaml:"entries"`
	Words       []Count `json:"words" yaml:"words"`
	People      []Count `json:"people" yaml:"people"`
	MoodEntries int     `json:"moodEntries" yaml:"moodEntries"`
	// AverageMood is 0 when no entry carries a mood.
	AverageMood float64 `json:"averageMood" yaml:"averageMood"`
}

var wordPattern = regexp.MustCompile(`[\p{L}][\p{L}'’]*`)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`a about above after again against all am an and any are as at be
		because been before being below between both but by can could did do does doing down during each
		few for from further had has have having he her here hers herself him himself his how i if in into
		is it its itself just me more most my myself no nor not now of off on once only or other our ours
		ourselves out over own same she should so some such than that the their theirs them themselves then
		there these they this those through to too under until up very was we were what when where which
		while who whom why will with would you your yours yourself yourselves today yesterday tomorrow
		really also went got get feel felt like much many still even i'm it's don't didn't`) {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether the lowercase form of w is ignored in rankings.
func IsStopWord(w string) bool {
	_, ok := stopWords[strings.ToLower(w)]
	return ok
}

// Analyze ranks words and mentioned people across entries. topN <= 0 keeps
// every term. Rankings sort by count descending, then term ascending.
func Analyze(entries []Entry, topN int) Analysis {
	words := map[string]int{}
	people := map[string]int{}
	a := Analysis{Entries: len(entries)}

	moodSum := 0
	for _, e := range entries {
		if e.Mood != nil {
			moodSum += *e.Mood
			a.MoodEntries++
		}
		for _, tok := range tokenize(e.Text) {
			lower := strings.ToLower(tok.word)
			if IsStopWord(lower) {
				continue
			}
			if utf8.RuneCountInString(lower) >= MinWordLength {
				words[lower]++
			}
			if !tok.sentenceStart && isCapitalized(tok.word) {
				people[tok.word]++
			}
		}
	}
	if a.MoodEntries > 0 {
		a.AverageMood = float64(moodSum) / float64(a.MoodEntries)
	}

	a.Words = rank(words, topN)
	a.People = rank(people, topN)
	return a
}

// ValidMood reports whether m is within [MinMood, MaxMood].
func ValidMood(m int) bool {
	return m >= MinMood && m <= MaxMood
}

type token struct {
	word          string
	sentenceStart bool
}

// tokenize splits text into words, flagging those that open a sentence.
func tokenize(text string) []token {
	var out []token
	prev := 0
	start := true
	for _, loc := range wordPattern.FindAllStringIndex(text, -1) {
		if strings.ContainsAny(text[prev:loc[0]], ".!?\n") {
			start = true
		}
		w := strings.TrimRight(text[loc[0]:loc[1]], "'’")
		out = append(out, token{word: w, sentenceStart: start})
		start = false
		prev = loc[1]
	}
	return out
}

func isCapitalized(w string) bool {
	r, _ := utf8.DecodeRuneInString(w)
	return unicode.IsUpper(r) && utf8.RuneCountInString(w) > 1
}

func rank(m map[string]int, topN int) []Count {
	out := make([]Count, 0, len(m))
	for term, n := range m {
		out = append(out, Count{Term: term, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

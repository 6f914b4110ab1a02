package numerology

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrInvalidBirthDate is returned when a calculator receives a zero date.
	ErrInvalidBirthDate = errors.New("invalid or missing birth date")
	// ErrInvalidName is returned when a name-based calculator receives a blank name.
	ErrInvalidName = errors.New("invalid or missing name")
)

const vowels = "aeiou"

// LetterValue maps a lowercase letter a-z to 1-9 by alphabet position modulo 9
// (a=1 ... i=9, j=1 ... r=9, s=1 ... z=8). Any other rune maps to 0.
func LetterValue(r rune) int {
	if r < 'a' || r > 'z' {
		return 0
	}
	return int(r-'a')%9 + 1
}

// NormalizeName lowercases name, folds diacritics (é -> e) and drops every
// rune outside a-z.
func NormalizeName(name string) string {
	// transform.Chain keeps state, so it cannot be shared between goroutines.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LifePathNumber reduces day, month and the digit sum of the year separately,
// then reduces their total. Master numbers are preserved at every step.
func LifePathNumber(birth time.Time) (int, error) {
	if birth.IsZero() {
		return 0, ErrInvalidBirthDate
	}
	day := Reduce(birth.Day())
	month := Reduce(int(birth.Month()))
	year := Reduce(DigitSum(birth.Year()))
	return Reduce(day + month + year), nil
}

// DestinyNumber (Expression) sums every letter of the full name.
func DestinyNumber(name string) (int, error) {
	return nameNumber(name, func(rune) bool { return true })
}

// SoulUrgeNumber (Heart's Desire) sums the vowels of the full name.
func SoulUrgeNumber(name string) (int, error) {
	return nameNumber(name, isVowel)
}

// PersonalityNumber sums the consonants of the full name.
func PersonalityNumber(name string) (int, error) {
	return nameNumber(name, func(r rune) bool { return !isVowel(r) })
}

// BirthdayNumber keeps days 11 and 22 as they are and reduces every other day
// without master preservation.
func BirthdayNumber(birth time.Time) (int, error) {
	if birth.IsZero() {
		return 0, ErrInvalidBirthDate
	}
	day := birth.Day()
	if day == Master11 || day == Master22 {
		return day, nil
	}
	return ReduceToSingleDigit(day, false), nil
}

// UniversalDayNumber reduces the digits of the calendar date itself, the same
// for everyone on that day.
func UniversalDayNumber(date time.Time) int {
	return Reduce(DigitSum(date.Year()) + DigitSum(int(date.Month())) + DigitSum(date.Day()))
}

// nameNumber sums the letters accepted by keep. A name that still has
// characters but no a-z letters yields 0.
func nameNumber(name string, keep func(rune) bool) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, ErrInvalidName
	}
	sum := 0
	for _, r := range NormalizeName(name) {
		if keep(r) {
			sum += LetterValue(r)
		}
	}
	return Reduce(sum), nil
}

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}

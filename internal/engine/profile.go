package engine

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-insight/internal/biorhythm"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/numerology"
)

// Profile is one person the calendar and reports are computed for.
type Profile struct {
	// UID is a stable hash of name and birth date, used in calendar UIDs.
	UID string `json:"uid" yaml:"uid"`

	Name string `json:"name" yaml:"name"`

	// BirthDate is normalized to midnight UTC of the wall-clock date.
	BirthDate time.Time `json:"birthDate" yaml:"birthDate"`
}

// NewProfile builds a Profile and derives its UID.
func NewProfile(name string, birth time.Time) Profile {
	name = strings.TrimSpace(name)
	if name == "" {
		name = config.FallbackName
	}
	birth = biorhythm.Midnight(birth)

	input := fmt.Sprintf(config.FormatHashInput, name, birth.Format(config.DateFormatFullDash), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))

	return Profile{
		UID:       fmt.Sprintf("%x", hash[:config.UIDHashLength]),
		Name:      name,
		BirthDate: birth,
	}
}

// ParseBirthDate accepts YYYY-MM-DD, YYYYMMDD and RFC 3339 timestamps.
// The result keeps the written calendar date at midnight UTC.
func ParseBirthDate(value string) (time.Time, error) {
	t, yearKnown, err := parseDate(strings.TrimSpace(value))
	if err != nil || !yearKnown {
		return time.Time{}, fmt.Errorf("%s %q: %w", config.ErrDateParse, value, numerology.ErrInvalidBirthDate)
	}
	return biorhythm.Midnight(t), nil
}

// parseDate handles the date layouts found in vCard BDAY fields. Truncated
// --MM-DD dates come back on a leap year with yearKnown false.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}

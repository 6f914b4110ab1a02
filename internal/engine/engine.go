package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-insight/internal/biorhythm"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/timeline"
	"github.com/tartampluch/go-insight/internal/transit"
)

// CalendarConfig bounds one generation run.
type CalendarConfig struct {
	// From is the first day of the window. Zero means today.
	From time.Time
	// Days is the window length. Values <= 0 select config.DefaultCalendarDays;
	// values above config.MaxCalendarDays are rejected.
	Days int
	// ReminderTrigger is an ISO 8601 duration such as "-PT9H"; empty disables alarms.
	ReminderTrigger string
}

// Event describes a calendar entry before it is turned into a VEVENT.
// It is what FormatSummary receives.
type Event struct {
	Kind    string          // config.EventKind*
	Profile Profile         // zero for events not tied to a person
	Date    time.Time       // first day
	End     time.Time       // last day, inclusive
	Cycle   biorhythm.Cycle // critical days only
	Year    int             // personal and significant years
	Number  int             // personal year number
	Title   string
}

// CalendarGenerator turns profiles into an iCalendar feed.
type CalendarGenerator struct {
	Clock Clock

	// FormatSummary lets callers inject localized summaries. When nil the
	// config.FallbackSummary* templates are used.
	FormatSummary func(e Event) string
}

// Generate renders the feed for profiles over the configured window.
// It returns the ICS bytes, the number of events and any error.
func (g *CalendarGenerator) Generate(ctx context.Context, profiles []Profile, cfg CalendarConfig) ([]byte, int, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompEngine)
	log.InfoContext(ctx, config.MsgSyncStarted, config.LogKeyProfiles, len(profiles))

	now := g.Clock.Now()
	from := cfg.From
	if from.IsZero() {
		from = now
	}
	from = biorhythm.Midnight(from)
	days := cfg.Days
	if days <= 0 {
		days = config.DefaultCalendarDays
	}
	if days > config.MaxCalendarDays {
		return nil, 0, fmt.Errorf("%s: %d > %d", config.ErrCalendarDays, days, config.MaxCalendarDays)
	}
	to := from.AddDate(0, 0, days-1)
	today := biorhythm.Midnight(now)

	var events []Event
	for _, p := range profiles {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		if p.BirthDate.IsZero() {
			continue
		}

		critFrom := from
		if p.BirthDate.After(critFrom) {
			critFrom = p.BirthDate
		}
		for _, cd := range biorhythm.CriticalDays(p.BirthDate, critFrom, to) {
			if cd.Date.Equal(today) {
				log.Info(config.MsgCriticalToday,
					config.LogKeyName, p.Name,
					config.LogKeyCycle, string(cd.Cycle))
			}
			events = append(events, Event{
				Kind: config.EventKindCritical, Profile: p,
				Date: cd.Date, End: cd.Date, Cycle: cd.Cycle,
			})
		}

		yearEvents, err := birthdayEvents(p, from, to)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", config.ErrCalendarBuild, err)
		}
		events = append(events, yearEvents...)
	}
	if len(profiles) > 0 {
		events = append(events, mercuryEvents(from, to)...)
	}

	if len(events) == 0 {
		g.logSuccess(len(profiles), 0, start)
		return []byte(config.StubVCalendar), 0, nil
	}

	cal := newCalendar()
	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(now.UTC())

	for _, e := range events {
		ve := g.toVEvent(e, cfg.ReminderTrigger)
		ve.Props.Set(dtStamp)
		cal.Children = append(cal.Children, ve.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(len(profiles), len(events), start)
	return buf.Bytes(), len(events), nil
}

func newCalendar() *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986 refresh hint.
	refresh := ical.NewProp(config.PropRefresh)
	refresh.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refresh)
	return cal
}

// birthdayEvents yields, for each birthday inside [from, to], the personal
// year that starts that day and any significant-year markers.
func birthdayEvents(p Profile, from, to time.Time) ([]Event, error) {
	var out []Event
	for y := from.Year(); y <= to.Year(); y++ {
		if y < p.BirthDate.Year() {
			continue
		}
		bday := time.Date(y, p.BirthDate.Month(), p.BirthDate.Day(), 0, 0, 0, 0, time.UTC)
		if bday.Before(from) || bday.After(to) {
			continue
		}

		entry := timeline.NewPersonalYearEntry(p.BirthDate.Month(), p.BirthDate.Day(), y)
		out = append(out, Event{
			Kind: config.EventKindYear, Profile: p, Date: bday, End: bday,
			Year: y, Number: entry.PersonalYear, Title: entry.Title,
		})

		significant, err := timeline.SignificantYears(p.BirthDate, y, y)
		if err != nil {
			return nil, err
		}
		for _, s := range significant {
			out = append(out, Event{
				Kind: config.EventKindSignified, Profile: p, Date: bday, End: bday,
				Year: y, Number: s.PersonalYear, Title: s.Title,
			})
		}
	}
	return out, nil
}

// mercuryEvents lists the retrograde windows overlapping [from, to], shared by all profiles.
func mercuryEvents(from, to time.Time) []Event {
	var out []Event
	for y := from.Year(); y <= to.Year(); y++ {
		for _, w := range transit.MercuryRetrogradePeriods(y, time.UTC) {
			if w[1].Before(from) || w[0].After(to) {
				continue
			}
			out = append(out, Event{Kind: config.EventKindMercury, Date: w[0], End: w[1], Year: y})
		}
	}
	return out
}

func (g *CalendarGenerator) toVEvent(e Event, reminderTrigger string) *ical.Event {
	ve := ical.NewEvent()
	ve.Props.SetText(config.PropUID, eventUID(e))

	summary := fallbackSummary(e)
	if g.FormatSummary != nil {
		summary = g.FormatSummary(e)
	}
	ve.Props.SetText(config.PropSummary, summary)
	ve.Props.SetText(config.PropCategories, e.Kind)

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDate(e.Date)
	ve.Props.Set(dtStart)

	// All-day DTEND is exclusive.
	dtEnd := ical.NewProp(config.PropDTEnd)
	dtEnd.SetDate(e.End.AddDate(0, 0, 1))
	ve.Props.Set(dtEnd)

	if reminderTrigger != "" {
		addAlarm(ve, reminderTrigger, summary)
	}
	return ve
}

// eventUID is deterministic so that refreshed feeds update events in place.
func eventUID(e Event) string {
	owner := e.Profile.UID
	suffix := e.Date.Format(config.DateFormatFullBasic)
	switch e.Kind {
	case config.EventKindCritical:
		suffix = string(e.Cycle) + "-" + suffix
	case config.EventKindSignified:
		suffix = suffix + "-" + slug(e.Title)
	case config.EventKindMercury:
		owner = config.ICalDomain
	}
	return fmt.Sprintf(config.FormatUID, owner, e.Kind, suffix, config.ICalDomain)
}

func fallbackSummary(e Event) string {
	switch e.Kind {
	case config.EventKindCritical:
		return fmt.Sprintf(config.FallbackSummaryCritical, e.Profile.Name, e.Cycle)
	case config.EventKindYear:
		return fmt.Sprintf(config.FallbackSummaryYear, e.Profile.Name, e.Number, e.Title)
	case config.EventKindSignified:
		return e.Profile.Name + ": " + e.Title
	default:
		return config.FallbackSummaryMercury
	}
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

func slug(s string) string {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b = append(b, byte(r))
		case r >= 'A' && r <= 'Z':
			b = append(b, byte(r-'A'+'a'))
		default:
			if len(b) > 0 && b[len(b)-1] != '-' {
				b = append(b, '-')
			}
		}
	}
	return string(bytes.TrimRight(b, "-"))
}

func (g *CalendarGenerator) logSuccess(profiles, events int, start time.Time) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyProfiles, profiles),
			slog.Int(config.LogKeyEvents, events),
			slog.Int64(config.LogKeyDuration, time.Since(start).Milliseconds()),
		),
	)
}

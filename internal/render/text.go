package render

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/go-insight/internal/biorhythm"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/engine"
	"github.com/tartampluch/go-insight/internal/finance"
	"github.com/tartampluch/go-insight/internal/journal"
	"github.com/tartampluch/go-insight/internal/numerology"
	"github.com/tartampluch/go-insight/internal/store"
	"github.com/tartampluch/go-insight/internal/timeline"
	"github.com/tartampluch/go-insight/internal/transit"
)

var (
	accentColor  = lipgloss.Color("#7c3aed")
	successColor = lipgloss.Color("#10b981")
	warningColor = lipgloss.Color("#f59e0b")
	subtleColor  = lipgloss.Color("#737373")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle   = lipgloss.NewStyle().Foreground(subtleColor)
	goodStyle    = lipgloss.NewStyle().Foreground(successColor)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor)
)

var cycleLabels = map[biorhythm.Cycle]string{
	biorhythm.Physical:     config.TKeyCyclePhysical,
	biorhythm.Emotional:    config.TKeyCycleEmotional,
	biorhythm.Intellectual: config.TKeyCycleIntellectual,
	biorhythm.Intuitive:    config.TKeyCycleIntuitive,
}

// page accumulates styled text lines.
type page struct {
	r *Renderer
	b strings.Builder
}

func (p *page) title(key string) {
	if p.b.Len() > 0 {
		p.b.WriteString("\n")
	}
	p.b.WriteString(titleStyle.Render(p.r.label(key)))
	p.b.WriteString("\n")
}

func (p *page) field(key string, value any) {
	fmt.Fprintf(&p.b, "%s: %v\n", labelStyle.Render(p.r.label(key)), value)
}

func (p *page) bullets(items []string, style lipgloss.Style) {
	for _, it := range items {
		p.b.WriteString("  • " + style.Render(it) + "\n")
	}
}

func (p *page) table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(&p.b, 0, 0, 2, ' ', 0)
	styled := make([]string, len(header))
	for i, h := range header {
		styled[i] = headerStyle.Render(h)
	}
	fmt.Fprintln(w, strings.Join(styled, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func (r *Renderer) text(v any) error {
	p := &page{r: r}

	switch x := v.(type) {
	case string:
		p.b.WriteString(x + "\n")
	case numerology.Report:
		p.report(x)
	case []biorhythm.Reading:
		p.series(x)
	case transit.Advice:
		p.advice(x)
	case timeline.Timeline:
		p.timeline(x)
	case journal.Analysis:
		p.analysis(x)
	case finance.Totals:
		p.totals(x)
	case finance.Result:
		p.recurring(x)
	case []engine.Profile:
		p.profiles(x)
	case store.DailyEntry:
		p.daily(x)
	default:
		return r.yaml(v)
	}

	_, err := io.WriteString(r.Out, p.b.String())
	return err
}

func (p *page) reading(key string, rd numerology.Reading) {
	p.field(key, fmt.Sprintf("%d (%s)", rd.Number, rd.Interpretation.Title))
}

func (p *page) report(rep numerology.Report) {
	p.title(config.TKeyLblLifePath)
	p.reading(config.TKeyLblLifePath, rep.LifePath)
	if rep.LifePath.Interpretation.Explanation != "" {
		p.b.WriteString("  " + rep.LifePath.Interpretation.Explanation + "\n")
	}
	p.reading(config.TKeyLblBirthday, rep.Birthday)
	if rep.Destiny != nil {
		p.reading(config.TKeyLblDestiny, *rep.Destiny)
	}
	if rep.SoulUrge != nil {
		p.reading(config.TKeyLblSoulUrge, *rep.SoulUrge)
	}
	if rep.Personality != nil {
		p.reading(config.TKeyLblPersonality, *rep.Personality)
	}
}

func (p *page) series(rs []biorhythm.Reading) {
	header := []string{p.r.label(config.TKeyLblDate)}
	for _, c := range biorhythm.CoreCycles {
		header = append(header, p.r.label(cycleLabels[c]))
	}
	header = append(header, p.r.label(config.TKeyLblAverage), p.r.label(config.TKeyLblCritical))

	rows := make([][]string, 0, len(rs))
	for _, rd := range rs {
		row := []string{rd.Date.Format(config.DateFormatFullDash)}
		var critical []string
		for _, c := range biorhythm.CoreCycles {
			v := rd.Value(c)
			row = append(row, strconv.Itoa(v))
			if biorhythm.IsCriticalDay(v) {
				critical = append(critical, p.r.label(cycleLabels[c]))
			}
		}
		row = append(row, strconv.Itoa(rd.Average), warningStyle.Render(strings.Join(critical, ", ")))
		rows = append(rows, row)
	}
	p.table(header, rows)
}

func (p *page) advice(a transit.Advice) {
	p.title(config.TKeyLblDayTheme)
	p.field(config.TKeyLblDate, a.Date.Format(config.DateFormatFullDash))
	p.field(config.TKeyLblDayTheme, a.DayTheme)
	p.field(config.TKeyLblEnergy, a.OverallEnergy)
	for _, c := range biorhythm.CoreCycles {
		d := a.Dimensions[c]
		p.field(cycleLabels[c], fmt.Sprintf("%d%% (%s) %s", d.Value, d.Band, d.Advice))
	}
	p.field(config.TKeyLblUniversalDay, a.UniversalDay)
	p.field(config.TKeyLblPersonalDay, a.PersonalDay)
	p.field(config.TKeyLblPersonalYear, a.PersonalYear)
	p.field(config.TKeyLblNatalSign, a.NatalSign.Symbol+" "+a.NatalSign.Name)
	p.field(config.TKeyLblTransitSign, a.TransitSign.Symbol+" "+a.TransitSign.Name)
	p.field(config.TKeyLblMoonPhase, a.MoonPhase.Emoji+" "+a.MoonPhase.Name)
	p.field(config.TKeyLblMercury, p.yesNo(a.MercuryRetrograde))

	p.title(config.TKeyLblOptimal)
	p.bullets(a.OptimalActivities, goodStyle)
	p.title(config.TKeyLblCaution)
	p.bullets(a.CautionAreas, warningStyle)
}

func (p *page) timeline(tl timeline.Timeline) {
	p.title(config.TKeyLblLifePath)
	p.field(config.TKeyLblBirthDate, tl.BirthDate.Format(config.DateFormatFullDash))
	p.field(config.TKeyLblAge, tl.CurrentAge)
	p.field(config.TKeyLblLifePath, tl.LifePathNumber)
	cur := tl.CurrentPersonalYear
	p.field(config.TKeyLblPersonalYear, fmt.Sprintf("%d (%s)", cur.PersonalYear, cur.Title))
	if tl.CurrentPeriod != nil {
		p.field(config.TKeyLblPeriod, fmt.Sprintf("%s %d", tl.CurrentPeriod.Name, tl.CurrentPeriod.Number))
	}

	p.title(config.TKeyLblPeriods)
	rows := make([][]string, 0, len(tl.Periods.Periods))
	for _, pr := range tl.Periods.Periods {
		end := "…"
		if pr.EndYear != nil {
			end = strconv.Itoa(*pr.EndYear)
		}
		rows = append(rows, []string{pr.Name, strconv.Itoa(pr.Number), strconv.Itoa(pr.StartYear) + "-" + end})
	}
	p.table([]string{p.r.label(config.TKeyLblName), "#", p.r.label(config.TKeyLblDate)}, rows)

	p.title(config.TKeyLblYears)
	rows = make([][]string, 0, len(tl.PersonalYears))
	for _, y := range tl.PersonalYears {
		year := strconv.Itoa(y.Year)
		if y.Year == tl.CurrentYear {
			year = goodStyle.Render(year)
		}
		rows = append(rows, []string{year, strconv.Itoa(y.PersonalYear), y.Title})
	}
	p.table([]string{p.r.label(config.TKeyLblDate), "#", ""}, rows)

	p.title(config.TKeyLblSaturn)
	for _, s := range tl.SaturnReturns {
		fmt.Fprintf(&p.b, "  %s: %d-%d\n", s.Title, s.StartYear, s.EndYear)
	}

	p.title(config.TKeyLblSignificant)
	for _, e := range tl.SignificantYears {
		fmt.Fprintf(&p.b, "  %d (%d): %s\n", e.Year, e.Age, e.Title)
	}
}

func (p *page) analysis(a journal.Analysis) {
	p.title(config.TKeyLblEntries)
	p.field(config.TKeyLblEntries, a.Entries)
	if a.MoodEntries > 0 {
		p.field(config.TKeyLblMood, strconv.FormatFloat(a.AverageMood, 'f', 1, 64))
	}
	p.title(config.TKeyLblWords)
	p.table([]string{"", "#"}, counts(a.Words))
	p.title(config.TKeyLblPeople)
	p.table([]string{"", "#"}, counts(a.People))
}

func counts(cs []journal.Count) [][]string {
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, []string{c.Term, strconv.Itoa(c.Count)})
	}
	return rows
}

func (p *page) totals(t finance.Totals) {
	p.title(config.TKeyLblBalance)
	p.field(config.TKeyLblIncome, goodStyle.Render(t.Income.StringFixed(2)))
	p.field(config.TKeyLblExpense, warningStyle.Render(t.Expense.StringFixed(2)))
	p.field(config.TKeyLblBalance, t.Balance.StringFixed(2))
	p.field(config.TKeyLblEntries, t.Count)

	rows := make([][]string, 0, len(t.ByCategory))
	for _, cat := range slices.Sorted(maps.Keys(t.ByCategory)) {
		rows = append(rows, []string{cat, t.ByCategory[cat].StringFixed(2)})
	}
	if len(rows) > 0 {
		p.b.WriteString("\n")
		p.table([]string{"", ""}, rows)
	}
}

func (p *page) recurring(res finance.Result) {
	if res.Skipped {
		p.b.WriteString(warningStyle.Render(p.r.label(config.TKeyLblThrottled)) + "\n")
		return
	}
	p.field(config.TKeyLblGenerated, len(res.Transactions))
	rows := make([][]string, 0, len(res.Transactions))
	for _, tx := range res.Transactions {
		rows = append(rows, []string{tx.Date.Format(config.DateFormatFullDash), tx.Description, string(tx.Type), tx.Amount.StringFixed(2)})
	}
	if len(rows) > 0 {
		p.table([]string{p.r.label(config.TKeyLblDate), "", "", ""}, rows)
	}
}

func (p *page) profiles(ps []engine.Profile) {
	if p.r.Labels != nil {
		if pl, ok := p.r.Labels.(interface{ Plural(string, int) string }); ok {
			p.b.WriteString(titleStyle.Render(pl.Plural(config.TKeyProfilesCount, len(ps))) + "\n")
		}
	}
	rows := make([][]string, 0, len(ps))
	for _, pr := range ps {
		rows = append(rows, []string{pr.Name, pr.BirthDate.Format(config.DateFormatFullDash)})
	}
	p.table([]string{p.r.label(config.TKeyLblName), p.r.label(config.TKeyLblBirthDate)}, rows)
}

func (p *page) daily(e store.DailyEntry) {
	p.field(config.TKeyLblDate, e.Date)
	if e.Mood != nil {
		p.field(config.TKeyLblMood, *e.Mood)
	}
	if e.Notes != "" {
		p.b.WriteString(e.Notes + "\n")
	}
	p.bullets(e.CheckedTasks, goodStyle)
}

func (p *page) yesNo(b bool) string {
	if b {
		return warningStyle.Render(p.r.label(config.TKeyLblYes))
	}
	return p.r.label(config.TKeyLblNo)
}

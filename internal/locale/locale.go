// Package locale loads the embedded message catalogues and localizes
// calendar summaries and text output labels.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-insight/internal/biorhythm"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves message IDs for one language. A Translator whose
// catalogue failed to load still works and returns the keys themselves.
type Translator struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer

	// Lang is the requested language; Languages lists every catalogue found.
	Lang      string
	Languages []string
}

// New builds the bundle from the embedded catalogues and selects lang.
// Unknown languages fall back to English.
func New(lang string) *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	t := &Translator{bundle: bundle, Lang: lang}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		t.localizer = i18n.NewLocalizer(bundle, config.DefaultLocale)
		return t
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		t.Languages = append(t.Languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	if lang == "" {
		lang = config.DefaultLocale
	}
	t.localizer = i18n.NewLocalizer(bundle, lang)
	return t
}

// T translates key with optional template data. Missing keys come back verbatim.
func (t *Translator) T(key string, data map[string]any) string {
	msg, err := t.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		return key
	}
	return msg
}

// Plural translates a key that has one/other forms.
func (t *Translator) Plural(key string, count int) string {
	msg, err := t.localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: map[string]any{"Count": count},
		PluralCount:  count,
	})
	if err != nil {
		return key
	}
	return msg
}

// Cycle returns the localized name of c.
func (t *Translator) Cycle(c biorhythm.Cycle) string {
	key, ok := cycleKeys[c]
	if !ok {
		return string(c)
	}
	return t.T(key, nil)
}

var cycleKeys = map[biorhythm.Cycle]string{
	biorhythm.Physical:     config.TKeyCyclePhysical,
	biorhythm.Emotional:    config.TKeyCycleEmotional,
	biorhythm.Intellectual: config.TKeyCycleIntellectual,
	biorhythm.Intuitive:    config.TKeyCycleIntuitive,
}

// Summary is an engine.CalendarGenerator FormatSummary hook.
func (t *Translator) Summary(e engine.Event) string {
	var (
		msg string
		err error
	)

	switch e.Kind {
	case config.EventKindCritical:
		msg, err = t.localize(&i18n.LocalizeConfig{
			MessageID:    config.TKeyEvtCritical,
			TemplateData: map[string]any{"Name": e.Profile.Name, "Cycle": t.Cycle(e.Cycle)},
		})
	case config.EventKindYear:
		msg, err = t.localize(&i18n.LocalizeConfig{
			MessageID:    config.TKeyEvtYear,
			TemplateData: map[string]any{"Name": e.Profile.Name, "Number": e.Number, "Title": e.Title},
		})
	case config.EventKindSignified:
		msg, err = t.localize(&i18n.LocalizeConfig{
			MessageID:    config.TKeyEvtSignificant,
			TemplateData: map[string]any{"Name": e.Profile.Name, "Title": e.Title},
		})
	default:
		msg, err = t.localize(&i18n.LocalizeConfig{MessageID: config.TKeyEvtMercury})
	}

	if err != nil || msg == "" {
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
	return msg
}

func (t *Translator) localize(lc *i18n.LocalizeConfig) (string, error) {
	if t == nil || t.localizer == nil {
		return "", fmt.Errorf("%s: %s", config.ErrLocaleLoad, lc.MessageID)
	}
	msg, err := t.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return "", err
	}
	return msg, nil
}

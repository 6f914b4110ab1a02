package locale_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-insight/internal/biorhythm"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/engine"
	"github.com/tartampluch/go-insight/internal/locale"
)

func TestNew_DetectsLanguages(t *testing.T) {
	tr := locale.New("en")
	assert.ElementsMatch(t, config.SupportedLanguages, tr.Languages)
}

func TestTranslator_T(t *testing.T) {
	tests := []struct {
		name string
		lang string
		key  string
		want string
	}{
		{"English label", "en", config.TKeyLblLifePath, "Life Path"},
		{"French label", "fr", config.TKeyLblLifePath, "Chemin de vie"},
		{"Unknown language falls back to English", "de", config.TKeyLblBalance, "Balance"},
		{"Empty language is English", "", config.TKeyLblYes, "yes"},
		{"Missing key is returned as is", "fr", "no_such_key", "no_such_key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, locale.New(tt.lang).T(tt.key, nil))
		})
	}
}

func TestTranslator_Plural(t *testing.T) {
	en := locale.New("en")
	assert.Equal(t, "1 profile", en.Plural(config.TKeyProfilesCount, 1))
	assert.Equal(t, "3 profiles", en.Plural(config.TKeyProfilesCount, 3))

	fr := locale.New("fr")
	assert.Equal(t, "1 profil", fr.Plural(config.TKeyProfilesCount, 1))
	assert.Equal(t, "2 profils", fr.Plural(config.TKeyProfilesCount, 2))
}

func TestTranslator_Cycle(t *testing.T) {
	fr := locale.New("fr")
	assert.Equal(t, "émotionnel", fr.Cycle(biorhythm.Emotional))
	assert.Equal(t, "unknown", fr.Cycle(biorhythm.Cycle("unknown")))
}

func TestTranslator_Summary(t *testing.T) {
	ada := engine.NewProfile("Ada", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))

	critical := engine.Event{Kind: config.EventKindCritical, Profile: ada, Cycle: biorhythm.Emotional}
	year := engine.Event{Kind: config.EventKindYear, Profile: ada, Number: 1, Title: "New Beginnings"}
	significant := engine.Event{Kind: config.EventKindSignified, Profile: ada, Title: "New Cycle"}
	mercury := engine.Event{Kind: config.EventKindMercury}

	en := locale.New("en")
	assert.Equal(t, "Ada: emotional critical day", en.Summary(critical))
	assert.Equal(t, "Ada: Personal Year 1 (New Beginnings)", en.Summary(year))
	assert.Equal(t, "Ada: New Cycle", en.Summary(significant))
	assert.Equal(t, "Mercury retrograde", en.Summary(mercury))

	fr := locale.New("fr")
	assert.Equal(t, "Ada : jour critique émotionnel", fr.Summary(critical))
	assert.Equal(t, "Ada : Année personnelle 1 (New Beginnings)", fr.Summary(year))
	assert.Equal(t, "Mercure rétrograde", fr.Summary(mercury))
}

func TestTranslator_NilIsSafe(t *testing.T) {
	var tr *locale.Translator
	assert.Equal(t, config.TKeyLblName, tr.T(config.TKeyLblName, nil))

	ada := engine.NewProfile("Ada", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	got := tr.Summary(engine.Event{Kind: config.EventKindCritical, Profile: ada, Cycle: biorhythm.Physical})
	assert.Equal(t, "Ada: physical critical day", got)
}

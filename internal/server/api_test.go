package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-insight/internal/biorhythm"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/engine"
	"github.com/tartampluch/go-insight/internal/numerology"
	"github.com/tartampluch/go-insight/internal/timeline"
	"github.com/tartampluch/go-insight/internal/transit"
)

type rawEnvelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func staticProfile(name string, y int, m time.Month, d int) ProfileFunc {
	return func(context.Context) (engine.Profile, error) {
		return engine.Profile{Name: name, BirthDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}, nil
	}
}

func call(t *testing.T, srv *InsightServer, method, target string) (int, rawEnvelope) {
	t.Helper()
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(method, target, nil))

	var env rawEnvelope
	if method == http.MethodGet {
		assert.Equal(t, config.MimeJSON, w.Header().Get(config.HeaderContentType))
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func TestAPI_Numerology(t *testing.T) {
	srv := NewInsightServer("0", fixedClock(), staticProfile("Ada", 1990, 1, 1))

	code, env := call(t, srv, http.MethodGet, config.RouteNumerology)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Empty(t, env.Error)

	var rep numerology.Report
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	assert.Equal(t, 3, rep.LifePath.Number)
	require.NotNil(t, rep.Destiny)
	assert.Equal(t, 6, rep.Destiny.Number)
}

func TestAPI_NumerologyWithoutName(t *testing.T) {
	srv := NewInsightServer("0", fixedClock(), staticProfile("", 1990, 1, 1))

	code, env := call(t, srv, http.MethodGet, config.RouteNumerology)
	require.Equal(t, http.StatusOK, code)

	var rep numerology.Report
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	assert.Nil(t, rep.Destiny)
	assert.False(t, rep.Profile.HasName)
}

func TestAPI_Daily(t *testing.T) {
	srv := NewInsightServer("0", fixedClock(), staticProfile("Bob", 2000, 1, 1))

	code, env := call(t, srv, http.MethodGet, config.RouteDaily+"?date=2000-01-07")
	require.Equal(t, http.StatusOK, code)

	var advice transit.Advice
	require.NoError(t, json.Unmarshal(env.Data, &advice))
	assert.Contains(t, advice.OptimalActivities, "Making plans")
	assert.Equal(t, 3, advice.PersonalDay)

	// Without a date the server clock decides.
	code, env = call(t, srv, http.MethodGet, config.RouteDaily)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &advice))
	assert.Equal(t, "2024-01-01", advice.Date.Format(config.DateFormatFullDash))
}

func TestAPI_Biorhythm(t *testing.T) {
	srv := NewInsightServer("0", fixedClock(), staticProfile("Ada", 1990, 1, 1))

	code, env := call(t, srv, http.MethodGet, config.RouteBiorhythm+"?date=2024-01-01&range=2")
	require.Equal(t, http.StatusOK, code)

	var data BiorhythmData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Series, 5)
	assert.Equal(t, "2023-12-30", data.Series[0].Date.Format(config.DateFormatFullDash))
	assert.Equal(t, []biorhythm.Cycle{biorhythm.Emotional}, data.Today.CriticalCycles)

	// Default range around the clock's date.
	code, env = call(t, srv, http.MethodGet, config.RouteBiorhythm)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Series, 2*config.DefaultBiorhythmRange+1)
}

func TestAPI_Timeline(t *testing.T) {
	srv := NewInsightServer("0", fixedClock(), staticProfile("Ada", 1990, 1, 1))

	code, env := call(t, srv, http.MethodGet, config.RouteTimeline+"?from=2020&to=2025")
	require.Equal(t, http.StatusOK, code)

	var tl timeline.Timeline
	require.NoError(t, json.Unmarshal(env.Data, &tl))
	assert.Equal(t, 2024, tl.CurrentYear)
	assert.Equal(t, 34, tl.CurrentAge)
	assert.Len(t, tl.PersonalYears, 6)
}

func TestAPI_Errors(t *testing.T) {
	ada := staticProfile("Ada", 1990, 1, 1)

	tests := []struct {
		name    string
		profile ProfileFunc
		target  string
		want    int
		wantErr string
	}{
		{"bad date", ada, config.RouteDaily + "?date=01/02/2024", http.StatusBadRequest, "invalid query parameter"},
		{"bad range", ada, config.RouteBiorhythm + "?range=abc", http.StatusBadRequest, "invalid query parameter"},
		{"negative range", ada, config.RouteBiorhythm + "?range=-1", http.StatusBadRequest, "invalid query parameter"},
		{"range too large", ada, config.RouteBiorhythm + "?range=1000", http.StatusBadRequest, biorhythm.ErrRangeTooWide.Error()},
		{"reversed years", ada, config.RouteTimeline + "?from=2030&to=2020", http.StatusBadRequest, timeline.ErrInvalidRange.Error()},
		{"too many years", ada, config.RouteTimeline + "?from=1&to=2000000", http.StatusBadRequest, timeline.ErrSpanTooWide.Error()},
		{"one year past the span", ada, config.RouteTimeline + "?from=2020&to=2220", http.StatusBadRequest, timeline.ErrSpanTooWide.Error()},
		{"no profile configured", nil, config.RouteNumerology, http.StatusNotFound, config.HTTPMsgNoProfile},
		{
			"profile lookup says none",
			func(context.Context) (engine.Profile, error) { return engine.Profile{}, ErrNoProfile },
			config.RouteDaily, http.StatusNotFound, config.HTTPMsgNoProfile,
		},
		{
			"zero birth date",
			func(context.Context) (engine.Profile, error) { return engine.Profile{Name: "X"}, nil },
			config.RouteTimeline, http.StatusBadRequest, numerology.ErrInvalidBirthDate.Error(),
		},
		{
			"store failure is hidden",
			func(context.Context) (engine.Profile, error) { return engine.Profile{}, errors.New("disk on fire") },
			config.RouteNumerology, http.StatusInternalServerError, config.HTTPMsgInternalErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewInsightServer("0", fixedClock(), tt.profile)
			code, env := call(t, srv, http.MethodGet, tt.target)
			assert.Equal(t, tt.want, code)
			assert.False(t, env.Success)
			assert.Contains(t, env.Error, tt.wantErr)
			assert.Empty(t, env.Data)
		})
	}
}

func TestAPI_Head(t *testing.T) {
	srv := NewInsightServer("0", fixedClock(), staticProfile("Ada", 1990, 1, 1))

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodHead, config.RouteNumerology, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tartampluch/go-insight/internal/biorhythm"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/engine"
	"github.com/tartampluch/go-insight/internal/numerology"
	"github.com/tartampluch/go-insight/internal/timeline"
	"github.com/tartampluch/go-insight/internal/transit"
)

// Envelope wraps every JSON API response.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// BiorhythmData is the payload of the biorhythm endpoint.
type BiorhythmData struct {
	Today  biorhythm.Summary   `json:"today"`
	Series []biorhythm.Reading `json:"series"`
}

// errBadQuery marks malformed query parameters.
var errBadQuery = errors.New("invalid query parameter")

type apiFunc func(r *http.Request, p engine.Profile) (any, error)

// api adapts fn to an http.HandlerFunc: method check, profile lookup and
// Envelope encoding.
func (s *InsightServer) api(fn apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowRead(w, r) {
			return
		}

		if s.Profile == nil {
			writeJSON(w, r, http.StatusNotFound, Envelope{Error: config.HTTPMsgNoProfile})
			return
		}
		p, err := s.Profile(r.Context())
		if err != nil {
			s.fail(w, r, err)
			return
		}

		data, err := fn(r, p)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, Envelope{Success: true, Data: data})
	}
}

func (s *InsightServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNoProfile):
		writeJSON(w, r, http.StatusNotFound, Envelope{Error: config.HTTPMsgNoProfile})
	case errors.Is(err, errBadQuery),
		errors.Is(err, numerology.ErrInvalidBirthDate),
		errors.Is(err, biorhythm.ErrInvalidRange),
		errors.Is(err, biorhythm.ErrRangeTooWide),
		errors.Is(err, timeline.ErrInvalidRange),
		errors.Is(err, timeline.ErrSpanTooWide):
		writeJSON(w, r, http.StatusBadRequest, Envelope{Error: err.Error()})
	default:
		slog.Error(config.HTTPMsgInternalErr,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyURL, r.URL.Path,
			config.LogKeyError, err,
		)
		writeJSON(w, r, http.StatusInternalServerError, Envelope{Error: config.HTTPMsgInternalErr})
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, env Envelope) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error(config.ErrEncodeResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

// queryDate parses key as YYYY-MM-DD; an absent key yields def.
func queryDate(r *http.Request, key string, def time.Time) (time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	t, err := time.Parse(config.DateFormatFullDash, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %s=%q", errBadQuery, key, v)
	}
	return t, nil
}

// queryInt parses key as a non-negative integer; an absent key yields def.
func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w %s=%q", errBadQuery, key, v)
	}
	return n, nil
}

func (s *InsightServer) dailyAdvice(r *http.Request, p engine.Profile) (any, error) {
	date, err := queryDate(r, config.QueryDate, time.Time{})
	if err != nil {
		return nil, err
	}
	return transit.Advisor{Clock: s.Clock}.Advise(p.BirthDate, date)
}

func (s *InsightServer) biorhythmSeries(r *http.Request, p engine.Profile) (any, error) {
	date, err := queryDate(r, config.QueryDate, s.Clock.Now())
	if err != nil {
		return nil, err
	}
	days, err := queryInt(r, config.QueryRange, config.DefaultBiorhythmRange)
	if err != nil {
		return nil, err
	}

	series, err := biorhythm.GenerateSeries(p.BirthDate, date, days)
	if err != nil {
		return nil, err
	}
	return BiorhythmData{
		Today:  biorhythm.Summarize(series[days]),
		Series: series,
	}, nil
}

func (s *InsightServer) lifeTimeline(r *http.Request, p engine.Profile) (any, error) {
	from, err := queryInt(r, config.QueryFrom, 0)
	if err != nil {
		return nil, err
	}
	to, err := queryInt(r, config.QueryTo, 0)
	if err != nil {
		return nil, err
	}
	return timeline.Generate(p.BirthDate, s.Clock.Now(), timeline.Options{PersonalFrom: from, PersonalTo: to})
}

func (s *InsightServer) numerologyReport(_ *http.Request, p engine.Profile) (any, error) {
	prof, err := numerology.ComputeProfile(p.BirthDate, p.Name)
	if err != nil {
		return nil, err
	}
	return numerology.NewReport(prof), nil
}

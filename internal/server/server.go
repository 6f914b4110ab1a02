package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/engine"
)

// feedVersion is one generated calendar with its validators.
type feedVersion struct {
	body     []byte
	etag     string
	modified time.Time // truncated to seconds, the resolution of HTTP dates
}

// ProfileFunc returns the person the JSON API answers for. Name may be empty.
// Returning an error wrapping ErrNoProfile yields a 404.
type ProfileFunc func(ctx context.Context) (engine.Profile, error)

// ErrNoProfile signals that no birth date is configured.
var ErrNoProfile = errors.New(config.HTTPMsgNoProfile)

// InsightServer serves the generated ICS feed and the JSON API on localhost.
type InsightServer struct {
	// Swapped whole by Update; handlers never lock.
	feed atomic.Pointer[feedVersion]

	Port    string
	Clock   engine.Clock
	Profile ProfileFunc
}

// NewInsightServer creates a server for port. profile may be nil, in which
// case only the calendar feed is useful.
func NewInsightServer(port string, clock engine.Clock, profile ProfileFunc) *InsightServer {
	if clock == nil {
		clock = engine.RealClock{}
	}
	return &InsightServer{
		Port:    port,
		Clock:   clock,
		Profile: profile,
	}
}

// Handler returns the route table.
func (s *InsightServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleRoot)
	mux.HandleFunc(config.RouteCalendar, s.handleCalendarRequest)
	mux.HandleFunc(config.RouteDaily, s.api(s.dailyAdvice))
	mux.HandleFunc(config.RouteBiorhythm, s.api(s.biorhythmSeries))
	mux.HandleFunc(config.RouteTimeline, s.api(s.lifeTimeline))
	mux.HandleFunc(config.RouteNumerology, s.api(s.numerologyReport))
	return mux
}

// Start listens on localhost and blocks until ctx is cancelled.
func (s *InsightServer) Start(ctx context.Context) error {
	if err := config.ValidatePort(s.Port); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(config.LocalhostBindAddr, s.Port),
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update publishes data as the current feed. Identical content keeps both
// its ETag and its Last-Modified time, so clients keep getting 304s across
// refreshes.
func (s *InsightServer) Update(data []byte) {
	sum := sha256.Sum256(data)
	v := &feedVersion{
		body:     data,
		etag:     fmt.Sprintf(config.FormatETag, hex.EncodeToString(sum[:])),
		modified: s.Clock.Now().UTC().Truncate(time.Second),
	}
	if prev := s.feed.Load(); prev != nil && prev.etag == v.etag {
		v.modified = prev.modified
	}
	s.feed.Store(v)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyETag, v.etag,
		config.LogKeySizeBytes, len(v.body),
	)
}

// allowRead rejects everything but GET and HEAD.
func allowRead(w http.ResponseWriter, r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		return true
	}
	w.Header().Set(config.HeaderAllow, config.AllowedMethods)
	http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	return false
}

// handleRoot serves the feed on "/" and 404s every other unmatched path.
func (s *InsightServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != config.RouteRoot {
		http.NotFound(w, r)
		return
	}
	s.handleCalendarRequest(w, r)
}

func (s *InsightServer) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	v := s.feed.Load()
	if v == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, config.MimeTextCalendar)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderETag, v.etag)
	h.Set(config.HeaderLastModified, v.modified.Format(http.TimeFormat))

	if v.fresh(r) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(v.body); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

// fresh reports whether the client copy is current. If-None-Match wins over
// If-Modified-Since; an unparsable date counts as stale.
func (v *feedVersion) fresh(r *http.Request) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == v.etag
	}
	since, err := http.ParseTime(r.Header.Get(config.HeaderIfModifiedSince))
	return err == nil && !v.modified.After(since)
}

package engine_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/engine"
)

const graceCard = "BEGIN:VCARD\nVERSION:3.0\nFN:Grace\nBDAY:1906-12-09\nEND:VCARD"

func serve(t *testing.T, h http.HandlerFunc) string {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts.URL
}

func readAll(t *testing.T, f *engine.HTTPFetcher, url, user, pass string) (string, error) {
	t.Helper()
	rc, err := f.Fetch(context.Background(), url, user, pass)
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()
	b, err := io.ReadAll(rc)
	return string(b), err
}

func TestHTTPFetcher_Headers(t *testing.T) {
	base := serve(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "alice", user)
		assert.Equal(t, "s3cret", pass)
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		assert.Contains(t, r.Header.Get(config.HeaderAccept), "text/vcard")
		assert.Equal(t, "abc", r.URL.Query().Get("token"))
		_, _ = io.WriteString(w, graceCard)
	})

	got, err := readAll(t, engine.NewHTTPFetcher(), base+"/contacts.vcf?token=abc", "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, graceCard, got)
}

func TestHTTPFetcher_Anonymous(t *testing.T) {
	base := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		assert.False(t, ok)
	})

	got, err := readAll(t, engine.NewHTTPFetcher(), base, "", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHTTPFetcher_Status(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusBadGateway} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			base := serve(t, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(code) })

			rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), base, "", "")
			require.Error(t, err)
			assert.Nil(t, rc)
			assert.Contains(t, err.Error(), config.ErrHTTPStatus)
			assert.Contains(t, err.Error(), http.StatusText(code))
		})
	}
}

func TestHTTPFetcher_SizeCap(t *testing.T) {
	body := strings.Repeat("x", 64)

	t.Run("declared length", func(t *testing.T) {
		base := serve(t, func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, body) })
		_, err := readAll(t, &engine.HTTPFetcher{Client: http.DefaultClient, MaxBytes: 10}, base, "", "")
		assert.ErrorIs(t, err, engine.ErrResponseTooLarge)
	})

	t.Run("chunked", func(t *testing.T) {
		base := serve(t, func(w http.ResponseWriter, _ *http.Request) {
			for i := 0; i < 4; i++ {
				_, _ = io.WriteString(w, body[:16])
				w.(http.Flusher).Flush()
			}
		})
		_, err := readAll(t, &engine.HTTPFetcher{Client: http.DefaultClient, MaxBytes: 10}, base, "", "")
		assert.ErrorIs(t, err, engine.ErrResponseTooLarge)
	})

	t.Run("exactly the cap", func(t *testing.T) {
		base := serve(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, body[:32])
			w.(http.Flusher).Flush()
			_, _ = io.WriteString(w, body[32:])
		})
		got, err := readAll(t, &engine.HTTPFetcher{Client: http.DefaultClient, MaxBytes: 64}, base, "", "")
		require.NoError(t, err)
		assert.Equal(t, body, got)
	})
}

func TestHTTPFetcher_ContextDeadline(t *testing.T) {
	base := serve(t, func(_ http.ResponseWriter, _ *http.Request) { time.Sleep(200 * time.Millisecond) })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := engine.NewHTTPFetcher().Fetch(ctx, base, "", "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPFetcher_RejectsURL(t *testing.T) {
	cases := map[string]string{
		string([]byte{0x7f}):         config.ErrInvalidURL,
		"ftp://example.com/file.vcf": config.ErrProtocol,
		"file:///etc/passwd":         config.ErrProtocol,
		"example.com/contacts.vcf":   config.ErrProtocol,
	}
	for raw, want := range cases {
		_, err := engine.NewHTTPFetcher().Fetch(context.Background(), raw, "", "")
		require.Error(t, err, raw)
		assert.Contains(t, err.Error(), want, raw)
	}
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-insight/internal/config"
)

// ErrResponseTooLarge is returned by the reader of a fetched collection once
// more than MaxBytes have been read.
var ErrResponseTooLarge = errors.New(config.ErrResponseTooLarge)

// VCardFetcher retrieves a raw vCard collection.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher downloads collections from CardDAV or plain HTTP(S) endpoints.
type HTTPFetcher struct {
	Client *http.Client
	// MaxBytes caps the body. Zero means config.MaxHTTPResponseSize.
	MaxBytes int64
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: config.HTTPTimeout}}
}

// Fetch requests the collection at rawURL, with basic auth when credentials
// are given. Reading past the size cap fails with ErrResponseTooLarge.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL, user, pass string) (io.ReadCloser, error) {
	u, err := parseSourceURL(rawURL)
	if err != nil {
		return nil, err
	}
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, redact(u)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRequestBuild, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeVCardAccept)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	log.Debug(config.MsgFetchStart)
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.MsgFetchStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %s", config.ErrHTTPStatus, resp.Status)
	}

	limit := f.maxBytes()
	if resp.ContentLength > limit {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %d > %d", ErrResponseTooLarge, resp.ContentLength, limit)
	}
	log.Info(config.MsgFetchBody, slog.Int64(config.LogKeyContentLn, resp.ContentLength))

	return &cappedBody{body: resp.Body, left: limit}, nil
}

func (f *HTTPFetcher) maxBytes() int64 {
	if f.MaxBytes > 0 {
		return f.MaxBytes
	}
	return config.MaxHTTPResponseSize
}

func parseSourceURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}
	return u, nil
}

// redact drops credentials, query and fragment, which may carry tokens.
func redact(u *url.URL) string {
	return u.Scheme + "://" + u.Host + u.Path
}

// cappedBody fails instead of silently truncating a chunked body that
// outgrows the cap.
type cappedBody struct {
	body io.ReadCloser
	left int64
}

func (b *cappedBody) Read(p []byte) (int, error) {
	if b.left <= 0 {
		// One probe byte tells a body of exactly the cap from a longer one.
		var probe [1]byte
		n, err := b.body.Read(probe[:])
		if n > 0 {
			return 0, ErrResponseTooLarge
		}
		return 0, err
	}
	if int64(len(p)) > b.left {
		p = p[:b.left]
	}
	n, err := b.body.Read(p)
	b.left -= int64(n)
	return n, err
}

func (b *cappedBody) Close() error { return b.body.Close() }

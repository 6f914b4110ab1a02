package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-insight/internal/config"
)

// SourceConfig selects where contacts are imported from.
type SourceConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // path to a .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth username
	WebPass   string // HTTP Basic Auth password
}

// Importer reads profiles from vCard sources.
type Importer struct {
	Fetcher VCardFetcher
}

// Import returns one profile per card that carries a full birth date.
// Malformed cards and dates without a year are logged and skipped.
func (im *Importer) Import(ctx context.Context, cfg SourceConfig) ([]Profile, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompImporter,
		config.LogKeyMode, cfg.Mode,
	)

	reader, err := im.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	decoder := vcard.NewDecoder(reader)
	stats := struct{ processed, found int }{}
	profiles := []Profile{}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, ErrResponseTooLarge) {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}
		if err != nil {
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			// A broken stream would otherwise loop on the same error.
			if errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			continue
		}
		stats.processed++

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}
		birth, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			log.Debug(config.MsgSkippedDate, config.LogKeyValue, bday.Value)
			continue
		}
		name := cardName(card)
		if !yearKnown {
			log.Debug(config.MsgSkippedNoYear, config.LogKeyName, name)
			continue
		}

		stats.found++
		profiles = append(profiles, NewProfile(name, birth))
	}

	log.Info(config.MsgImportSuccess,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.found),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return profiles, nil
}

// acquireStream opens the data source named by cfg.Mode.
func (im *Importer) acquireStream(ctx context.Context, cfg SourceConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return im.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// cardName prefers FN (formatted) over N (structured).
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		return n.Value
	}
	return config.FallbackName
}

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-insight/internal/biorhythm"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/engine"
	"github.com/tartampluch/go-insight/internal/locale"
	"github.com/tartampluch/go-insight/internal/render"
	"github.com/tartampluch/go-insight/internal/store"
)

// lifestyle opens the configured store. It is closed by cli.close.
func (c *cli) lifestyle(ctx context.Context) (*store.Lifestyle, error) {
	path, err := c.settings.ResolveStorePath()
	if err != nil {
		return nil, err
	}
	s, err := store.Open(ctx, c.settings.StoreDriver, path)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, s)
	return store.NewLifestyle(s), nil
}

func (c *cli) translator() *locale.Translator {
	return locale.New(c.settings.Locale)
}

// render writes v to stdout in the configured output format.
func (c *cli) render(v any) error {
	r, err := render.New(c.settings.OutputFormat, c.out, c.translator())
	if err != nil {
		return err
	}
	return r.Render(v)
}

// subject resolves the birth date and name from --birth-date and --name,
// falling back to the stored profile for whichever flag is absent.
func (c *cli) subject(cmd *cobra.Command, l *store.Lifestyle) (time.Time, string, error) {
	ctx := cmd.Context()

	var birth time.Time
	raw, _ := cmd.Flags().GetString(config.FlagBirthDate)
	if raw != "" {
		t, err := engine.ParseBirthDate(raw)
		if err != nil {
			return time.Time{}, "", err
		}
		birth = t
	} else {
		t, err := l.BirthDate(ctx)
		if errors.Is(err, store.ErrNotFound) {
			return time.Time{}, "", errors.New(config.ErrBirthDateMissing)
		}
		if err != nil {
			return time.Time{}, "", err
		}
		birth = t
	}

	name, _ := cmd.Flags().GetString(config.FlagName)
	if !cmd.Flags().Changed(config.FlagName) {
		stored, err := l.FullName(ctx)
		if err != nil {
			return time.Time{}, "", err
		}
		name = stored
	}
	return birth, name, nil
}

// addSubjectFlags registers --birth-date and --name on cmd.
func addSubjectFlags(cmd *cobra.Command) {
	cmd.Flags().String(config.FlagBirthDate, "", config.FlagDescBirthDate)
	cmd.Flags().String(config.FlagName, "", config.FlagDescName)
}

// dateFlag parses the named YYYY-MM-DD flag. An empty flag yields fallback.
func dateFlag(cmd *cobra.Command, name string, fallback time.Time) (time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(config.DateFormatFullDash, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s --%s %q: %w", config.ErrDateParse, name, raw, err)
	}
	return t, nil
}

// today is the clock's calendar date at midnight UTC.
func (c *cli) today() time.Time {
	return biorhythm.Midnight(c.clock.Now())
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/engine"
	"github.com/tartampluch/go-insight/internal/server"
	"github.com/tartampluch/go-insight/internal/store"
	"github.com/zalando/go-keyring"
)

// addSourceFlags registers the contact source flags shared by calendar,
// import and serve.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String(config.FlagFile, "", config.FlagDescFile)
	cmd.Flags().String(config.FlagURL, "", config.FlagDescURL)
	cmd.Flags().String(config.FlagUser, "", config.FlagDescUser)
}

// source resolves the contact source from flags and settings. ok is false
// when no source is configured at all.
func (c *cli) source(cmd *cobra.Command) (cfg engine.SourceConfig, ok bool) {
	if path, _ := cmd.Flags().GetString(config.FlagFile); path != "" {
		return engine.SourceConfig{Mode: config.SourceModeLocal, LocalPath: path}, true
	}

	url, _ := cmd.Flags().GetString(config.FlagURL)
	if url == "" {
		url = c.settings.ImportURL
	}
	if url == "" {
		return engine.SourceConfig{}, false
	}

	user, _ := cmd.Flags().GetString(config.FlagUser)
	if user == "" {
		user = c.settings.ImportUser
	}
	return engine.SourceConfig{
		Mode:    config.SourceModeWeb,
		WebURL:  url,
		WebUser: user,
		WebPass: password(user),
	}, true
}

// password reads the keyring entry of user. A missing entry means no password.
func password(user string) string {
	if user == "" {
		return ""
	}
	pass, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyUser, user,
			config.LogKeyError, err,
		)
		return ""
	}
	return pass
}

func newImporter() *engine.Importer {
	return &engine.Importer{Fetcher: engine.NewHTTPFetcher()}
}

// feed builds the calendar for the stored profile plus every imported contact.
type feed struct {
	lifestyle *store.Lifestyle
	source    *engine.SourceConfig
	generator *engine.CalendarGenerator
	importer  *engine.Importer
	cfg       engine.CalendarConfig
}

func (c *cli) newFeed(cmd *cobra.Command, l *store.Lifestyle) *feed {
	days, _ := cmd.Flags().GetInt(config.FlagDays)
	if !cmd.Flags().Changed(config.FlagDays) {
		days = c.settings.CalendarDays
	}

	f := &feed{
		lifestyle: l,
		generator: &engine.CalendarGenerator{
			Clock:         c.clock,
			FormatSummary: c.translator().Summary,
		},
		importer: newImporter(),
		cfg: engine.CalendarConfig{
			Days:            days,
			ReminderTrigger: c.settings.Reminder,
		},
	}
	if src, ok := c.source(cmd); ok {
		f.source = &src
	}
	return f
}

func (f *feed) profiles(ctx context.Context) ([]engine.Profile, error) {
	var profiles []engine.Profile

	birth, err := f.lifestyle.BirthDate(ctx)
	switch {
	case err == nil:
		name, err := f.lifestyle.FullName(ctx)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, engine.NewProfile(name, birth))
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	if f.source != nil {
		imported, err := f.importer.Import(ctx, *f.source)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, imported...)
	}
	return profiles, nil
}

// Build generates the ICS bytes. It matches server.SyncFunc.
func (f *feed) Build(ctx context.Context) ([]byte, error) {
	profiles, err := f.profiles(ctx)
	if err != nil {
		return nil, err
	}
	data, _, err := f.generator.Generate(ctx, profiles, f.cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCalendarBuild, err)
	}
	return data, nil
}

func (c *cli) calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Write the iCalendar feed of critical days and personal years",
		Long: `Generates an iCalendar feed for the stored profile and, when a contact
source is given, for every imported contact with a full birth date.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			l, err := c.lifestyle(ctx)
			if err != nil {
				return err
			}
			data, err := c.newFeed(cmd, l).Build(ctx)
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString(config.FlagOut)
			if out == "" {
				_, err = c.out.Write(data)
				return err
			}
			if err := os.WriteFile(out, data, config.FilePermUserRW); err != nil {
				return err
			}
			slog.Info(config.MsgCalendarSaved,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyPath, out,
				config.LogKeySizeBytes, len(data),
			)
			return nil
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().Int(config.FlagDays, config.DefaultCalendarDays, config.FlagDescDays)
	cmd.Flags().String(config.FlagOut, "", config.FlagDescOut)
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "List the contacts of a vCard source that have a full birth date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, ok := c.source(cmd)
			if !ok {
				return errors.New(config.ErrSourceMissing)
			}
			profiles, err := newImporter().Import(cmd.Context(), src)
			if err != nil {
				return err
			}
			return c.render(profiles)
		},
	}
	addSourceFlags(cmd)
	return cmd
}

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calendar feed and the JSON API on localhost",
		Long: `Starts an HTTP server on 127.0.0.1 that publishes the calendar feed at
/calendar.ics, refreshed in the background, and the daily, biorhythm,
timeline and numerology readings of the stored profile under /api/.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			port, _ := cmd.Flags().GetString(config.FlagPort)
			if !cmd.Flags().Changed(config.FlagPort) {
				port = c.settings.ServerPort
			}

			l, err := c.lifestyle(ctx)
			if err != nil {
				return err
			}

			slog.Info(config.MsgAppStarting,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyPort, port,
				config.LogKeyVersion, config.Version,
			)

			srv := server.NewInsightServer(port, c.clock, storedProfile(l))
			worker := &server.Worker{
				Server:   srv,
				Sync:     c.newFeed(cmd, l).Build,
				Interval: time.Duration(c.settings.RefreshMinutes) * time.Minute,
			}

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				worker.Run(ctx)
			}()

			err = srv.Start(ctx)
			cancel()
			wg.Wait()
			if err != nil {
				return err
			}

			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().Int(config.FlagDays, config.DefaultCalendarDays, config.FlagDescDays)
	cmd.Flags().String(config.FlagPort, config.DefaultPort, config.FlagDescPort)
	return cmd
}

// storedProfile answers the JSON API from the store on every request, so
// profile changes show up without a restart.
func storedProfile(l *store.Lifestyle) server.ProfileFunc {
	return func(ctx context.Context) (engine.Profile, error) {
		birth, err := l.BirthDate(ctx)
		if errors.Is(err, store.ErrNotFound) {
			return engine.Profile{}, server.ErrNoProfile
		}
		if err != nil {
			return engine.Profile{}, err
		}
		name, err := l.FullName(ctx)
		if err != nil {
			return engine.Profile{}, err
		}
		return engine.Profile{Name: name, BirthDate: birth}, nil
	}
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-insight/internal/biorhythm"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/engine"
	"github.com/tartampluch/go-insight/internal/numerology"
	"github.com/tartampluch/go-insight/internal/store"
	"github.com/tartampluch/go-insight/internal/timeline"
	"github.com/tartampluch/go-insight/internal/transit"
)

func (c *cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the stored birth date and name",
	}
	cmd.AddCommand(c.profileSetCmd())
	cmd.AddCommand(c.profileShowCmd())
	return cmd
}

func (c *cli) profileSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "set",
		Short:   "Store the birth date and, optionally, the full birth name",
		Example: `  go-insight profile set --birth-date 1990-01-01 --name "Ada Lovelace"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			raw, _ := cmd.Flags().GetString(config.FlagBirthDate)
			birth, err := engine.ParseBirthDate(raw)
			if err != nil {
				return err
			}

			l, err := c.lifestyle(ctx)
			if err != nil {
				return err
			}
			if err := l.SetBirthDate(ctx, birth); err != nil {
				return err
			}
			if cmd.Flags().Changed(config.FlagName) {
				name, _ := cmd.Flags().GetString(config.FlagName)
				if err := l.SetFullName(ctx, name); err != nil {
					return err
				}
			}
			slog.Info(config.MsgProfileSaved, config.LogKeyComponent, config.CompCLI)
			return c.showProfile(cmd, l)
		},
	}
	addSubjectFlags(cmd)
	_ = cmd.MarkFlagRequired(config.FlagBirthDate)
	return cmd
}

func (c *cli) profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := c.lifestyle(cmd.Context())
			if err != nil {
				return err
			}
			return c.showProfile(cmd, l)
		},
	}
}

func (c *cli) showProfile(cmd *cobra.Command, l *store.Lifestyle) error {
	ctx := cmd.Context()
	birth, err := l.BirthDate(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrBirthDateMissing, err)
	}
	name, err := l.FullName(ctx)
	if err != nil {
		return err
	}
	return c.render([]engine.Profile{engine.NewProfile(name, birth)})
}

func (c *cli) numerologyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "numerology",
		Aliases: []string{"num"},
		Short:   "Compute the core numerology numbers",
		Long: `Computes the Life Path and Birthday numbers from the birth date and, when a
name is known, the Destiny, Soul Urge and Personality numbers.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			l, err := c.lifestyle(ctx)
			if err != nil {
				return err
			}
			birth, name, err := c.subject(cmd, l)
			if err != nil {
				return err
			}

			p, err := numerology.ComputeProfile(birth, name)
			if err != nil {
				return err
			}

			if save, _ := cmd.Flags().GetBool(config.FlagSave); save {
				snap := store.NumerologySnapshot{
					BirthDate:    birth.Format(config.DateFormatFullDash),
					FullName:     name,
					Profile:      p,
					CalculatedAt: c.clock.Now(),
				}
				if err := l.SaveNumerology(ctx, snap); err != nil {
					return err
				}
				slog.Info(config.MsgSnapshotSaved, config.LogKeyComponent, config.CompCLI)
			}

			return c.render(numerology.NewReport(p))
		},
	}
	addSubjectFlags(cmd)
	cmd.Flags().Bool(config.FlagSave, false, config.FlagDescSave)
	return cmd
}

func (c *cli) biorhythmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "biorhythm",
		Aliases: []string{"bio"},
		Short:   "Print biorhythm readings around a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := c.lifestyle(cmd.Context())
			if err != nil {
				return err
			}
			birth, _, err := c.subject(cmd, l)
			if err != nil {
				return err
			}
			date, err := dateFlag(cmd, config.FlagDate, c.today())
			if err != nil {
				return err
			}
			days, _ := cmd.Flags().GetInt(config.FlagRange)

			series, err := biorhythm.GenerateSeries(birth, date, days)
			if err != nil {
				return err
			}
			return c.render(series)
		},
	}
	addSubjectFlags(cmd)
	cmd.Flags().String(config.FlagDate, "", config.FlagDescDate)
	cmd.Flags().Int(config.FlagRange, config.DefaultBiorhythmRange, config.FlagDescRange)
	return cmd
}

func (c *cli) timelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print the life timeline: periods, personal years and turning points",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := c.lifestyle(cmd.Context())
			if err != nil {
				return err
			}
			birth, _, err := c.subject(cmd, l)
			if err != nil {
				return err
			}
			from, _ := cmd.Flags().GetInt(config.FlagFrom)
			to, _ := cmd.Flags().GetInt(config.FlagTo)

			tl, err := timeline.Generate(birth, c.clock.Now(), timeline.Options{
				PersonalFrom: from,
				PersonalTo:   to,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrTimeline, err)
			}
			return c.render(tl)
		},
	}
	addSubjectFlags(cmd)
	cmd.Flags().Int(config.FlagFrom, 0, config.FlagDescFrom)
	cmd.Flags().Int(config.FlagTo, 0, config.FlagDescTo)
	return cmd
}

func (c *cli) dailyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Print the daily transit advice",
		Long: `Combines the biorhythm cycles, the universal and personal day numbers, the
sun signs, the moon phase and Mercury retrograde into one reading.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := c.lifestyle(cmd.Context())
			if err != nil {
				return err
			}
			birth, _, err := c.subject(cmd, l)
			if err != nil {
				return err
			}
			date, err := dateFlag(cmd, config.FlagDate, c.today())
			if err != nil {
				return err
			}

			advice, err := transit.Advisor{Clock: c.clock}.Advise(birth, date)
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrAdvice, err)
			}
			for _, cycle := range biorhythm.CoreCycles {
				if biorhythm.IsCriticalDay(advice.Biorhythm.Value(cycle)) {
					slog.Info(config.MsgCriticalToday,
						config.LogKeyComponent, config.CompCLI,
						config.LogKeyCycle, cycle,
					)
				}
			}
			return c.render(advice)
		},
	}
	addSubjectFlags(cmd)
	cmd.Flags().String(config.FlagDate, "", config.FlagDescDate)
	return cmd
}

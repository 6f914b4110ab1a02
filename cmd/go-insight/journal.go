package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/journal"
)

func (c *cli) journalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and analyze journal entries",
	}
	cmd.AddCommand(c.journalAddCmd())
	cmd.AddCommand(c.journalAnalyzeCmd())
	return cmd
}

func (c *cli) journalAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add TEXT...",
		Short:   "Append an entry to the journal",
		Example: `  go-insight journal add --mood 7 "Lunch with Marie, then a long walk."`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return errors.New(config.ErrTextMissing)
			}
			mood, err := moodFlag(cmd)
			if err != nil {
				return err
			}

			l, err := c.lifestyle(ctx)
			if err != nil {
				return err
			}
			entries, err := l.JournalEntries(ctx)
			if err != nil {
				return err
			}
			entry := journal.Entry{
				ID:   uuid.NewString(),
				Date: c.clock.Now(),
				Text: text,
				Mood: mood,
			}
			if err := l.SaveJournalEntries(ctx, append(entries, entry)); err != nil {
				return err
			}
			slog.Info(config.MsgJournalSaved,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyCount, len(entries)+1,
			)
			return c.render(journal.Analyze([]journal.Entry{entry}, config.DefaultTopN))
		},
	}
	cmd.Flags().Int(config.FlagMood, 0, config.FlagDescMood)
	return cmd
}

func (c *cli) journalAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Rank recurring words and people across the journal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			top, _ := cmd.Flags().GetInt(config.FlagTop)

			var entries []journal.Entry
			if path, _ := cmd.Flags().GetString(config.FlagFile); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", config.ErrJournalRead, err)
				}
				if err := json.Unmarshal(data, &entries); err != nil {
					return fmt.Errorf("%s: %w", config.ErrJournalRead, err)
				}
			} else {
				l, err := c.lifestyle(ctx)
				if err != nil {
					return err
				}
				if entries, err = l.JournalEntries(ctx); err != nil {
					return err
				}
			}

			return c.render(journal.Analyze(entries, top))
		},
	}
	cmd.Flags().Int(config.FlagTop, config.DefaultTopN, config.FlagDescTop)
	cmd.Flags().String(config.FlagFile, "", config.FlagDescJournal)
	return cmd
}

func (c *cli) noteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Keep one note, mood and task list per day",
	}
	cmd.AddCommand(c.noteSetCmd())
	cmd.AddCommand(c.noteShowCmd())
	return cmd
}

func (c *cli) noteSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [TEXT...]",
		Short: "Update the entry of a day; omitted fields are kept",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := dateFlag(cmd, config.FlagDate, c.today())
			if err != nil {
				return err
			}
			mood, err := moodFlag(cmd)
			if err != nil {
				return err
			}

			l, err := c.lifestyle(ctx)
			if err != nil {
				return err
			}
			entry, err := l.Daily(ctx, date)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				entry.Notes = strings.TrimSpace(strings.Join(args, " "))
			}
			if mood != nil {
				entry.Mood = mood
			}
			if cmd.Flags().Changed(config.FlagTask) {
				entry.CheckedTasks, _ = cmd.Flags().GetStringArray(config.FlagTask)
			}
			if err := l.SaveDaily(ctx, entry); err != nil {
				return err
			}
			slog.Info(config.MsgDailySaved,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyDate, entry.Date,
			)
			return c.render(entry)
		},
	}
	cmd.Flags().String(config.FlagDate, "", config.FlagDescDate)
	cmd.Flags().Int(config.FlagMood, 0, config.FlagDescMood)
	cmd.Flags().StringArray(config.FlagTask, nil, config.FlagDescTask)
	return cmd
}

func (c *cli) noteShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the entry of a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			date, err := dateFlag(cmd, config.FlagDate, c.today())
			if err != nil {
				return err
			}
			l, err := c.lifestyle(ctx)
			if err != nil {
				return err
			}
			entry, err := l.Daily(ctx, date)
			if err != nil {
				return err
			}
			return c.render(entry)
		},
	}
	cmd.Flags().String(config.FlagDate, "", config.FlagDescDate)
	return cmd
}

// moodFlag returns --mood, or nil when the flag was not given.
func moodFlag(cmd *cobra.Command) (*int, error) {
	if !cmd.Flags().Changed(config.FlagMood) {
		return nil, nil
	}
	mood, _ := cmd.Flags().GetInt(config.FlagMood)
	if !journal.ValidMood(mood) {
		return nil, errors.New(config.ErrMoodRange)
	}
	return &mood, nil
}

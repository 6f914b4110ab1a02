package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/finance"
)

func (c *cli) financeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Track income, expenses and recurring transactions",
	}
	cmd.AddCommand(c.financeRecurringCmd())
	cmd.AddCommand(c.financeSummaryCmd())
	cmd.AddCommand(c.financeTemplateCmd())
	return cmd
}

func (c *cli) financeRecurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Generate the transactions due from recurring templates",
		Long: `Creates one transaction per occurrence due up to today for every active
template. Runs closer than an hour apart are skipped unless --force is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			force, _ := cmd.Flags().GetBool(config.FlagForce)

			l, err := c.lifestyle(ctx)
			if err != nil {
				return err
			}
			res, err := l.ApplyRecurring(ctx, c.clock.Now(), force)
			if err != nil {
				return err
			}
			return c.render(res)
		},
	}
	cmd.Flags().Bool(config.FlagForce, false, config.FlagDescForce)
	return cmd
}

func (c *cli) financeSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Total income and expenses, by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			from, err := dateFlag(cmd, config.FlagFrom, time.Time{})
			if err != nil {
				return err
			}
			to, err := dateFlag(cmd, config.FlagTo, time.Time{})
			if err != nil {
				return err
			}

			l, err := c.lifestyle(ctx)
			if err != nil {
				return err
			}
			txs, err := l.Transactions(ctx)
			if err != nil {
				return err
			}
			return c.render(finance.Summarize(txs, from, to))
		},
	}
	cmd.Flags().String(config.FlagFrom, "", config.FlagDescFromDate)
	cmd.Flags().String(config.FlagTo, "", config.FlagDescToDate)
	return cmd
}

func (c *cli) financeTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage recurring transaction templates",
	}
	cmd.AddCommand(c.financeTemplateAddCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every recurring template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := c.lifestyle(cmd.Context())
			if err != nil {
				return err
			}
			templates, err := l.RecurringTransactions(cmd.Context())
			if err != nil {
				return err
			}
			return c.render(templates)
		},
	})
	return cmd
}

func (c *cli) financeTemplateAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add DESCRIPTION",
		Short:   "Add an active recurring template",
		Example: `  go-insight finance template add Rent --amount 950 --type expense --frequency monthly --start 2024-01-31 --category housing`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rawAmount, _ := cmd.Flags().GetString(config.FlagAmount)
			amount, err := decimal.NewFromString(rawAmount)
			if err != nil {
				return fmt.Errorf("%s %q: %w", config.ErrAmountParse, rawAmount, err)
			}
			start, err := dateFlag(cmd, config.FlagStart, c.today())
			if err != nil {
				return err
			}
			txType, _ := cmd.Flags().GetString(config.FlagType)
			freq, _ := cmd.Flags().GetString(config.FlagFrequency)
			category, _ := cmd.Flags().GetString(config.FlagCategory)

			tpl := finance.RecurringTransaction{
				ID:          uuid.NewString(),
				Description: args[0],
				Amount:      amount,
				Category:    category,
				Type:        finance.Type(txType),
				Frequency:   finance.Frequency(freq),
				StartDate:   start,
				Active:      true,
			}
			if cmd.Flags().Changed(config.FlagEnd) {
				end, err := dateFlag(cmd, config.FlagEnd, time.Time{})
				if err != nil {
					return err
				}
				tpl.EndDate = &end
			}
			if err := tpl.Validate(); err != nil {
				return err
			}

			l, err := c.lifestyle(ctx)
			if err != nil {
				return err
			}
			templates, err := l.RecurringTransactions(ctx)
			if err != nil {
				return err
			}
			if err := l.SaveRecurringTransactions(ctx, append(templates, tpl)); err != nil {
				return err
			}
			slog.Info(config.MsgTemplateSaved,
				config.LogKeyComponent, config.CompFinance,
				config.LogKeyName, tpl.Description,
			)
			return c.render([]finance.RecurringTransaction{tpl})
		},
	}
	cmd.Flags().String(config.FlagAmount, "", config.FlagDescAmount)
	cmd.Flags().String(config.FlagType, string(finance.Expense), config.FlagDescType)
	cmd.Flags().String(config.FlagFrequency, string(finance.Monthly), config.FlagDescFrequency)
	cmd.Flags().String(config.FlagStart, "", config.FlagDescStart)
	cmd.Flags().String(config.FlagEnd, "", config.FlagDescEnd)
	cmd.Flags().String(config.FlagCategory, "", config.FlagDescCategory)
	_ = cmd.MarkFlagRequired(config.FlagAmount)
	return cmd
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

func (c *cli) authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the CardDAV password stored in the system keyring",
	}
	cmd.AddCommand(c.authSetCmd())
	cmd.AddCommand(c.authDeleteCmd())
	return cmd
}

func (c *cli) authSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Prompt for the password of --user and store it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.authUser(cmd)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), config.MsgPromptPassword, user)
			pass, err := c.readPassword()
			fmt.Fprintln(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrPasswordRead, err)
			}

			if err := keyring.Set(config.KeyringService, user, pass); err != nil {
				return fmt.Errorf("%s: %w", config.ErrKeyringWrite, err)
			}
			slog.Info(config.MsgPassStored,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyUser, user,
			)
			return nil
		},
	}
	cmd.Flags().String(config.FlagUser, "", config.FlagDescUser)
	return cmd
}

func (c *cli) authDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored password of --user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.authUser(cmd)
			if err != nil {
				return err
			}
			if err := keyring.Delete(config.KeyringService, user); err != nil {
				return fmt.Errorf("%s: %w", config.ErrKeyringWrite, err)
			}
			slog.Info(config.MsgPassDeleted,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyUser, user,
			)
			return nil
		},
	}
	cmd.Flags().String(config.FlagUser, "", config.FlagDescUser)
	return cmd
}

func (c *cli) authUser(cmd *cobra.Command) (string, error) {
	user, _ := cmd.Flags().GetString(config.FlagUser)
	if user == "" {
		user = c.settings.ImportUser
	}
	if user == "" {
		return "", errors.New(config.ErrUserMissing)
	}
	return user, nil
}

// readPassword reads without echo from a terminal, or one line otherwise.
func (c *cli) readPassword() (string, error) {
	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		return string(b), err
	}
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/engine"
)

// main is the application entry point.
// It delegates to runMain so that deferred calls (closing the store and the
// log file) run before the process exits.
func main() {
	os.Exit(runMain())
}

// runMain executes the command tree and maps the outcome to an exit code.
func runMain() int {
	// Cancel on SIGINT (Ctrl+C) or SIGTERM; serve shuts down gracefully.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := newCLI(os.Stdout, os.Stdin)
	defer c.close()

	if err := c.rootCmd().ExecuteContext(ctx); err != nil {
		slog.Debug(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// cli holds the state shared by every subcommand of one invocation.
type cli struct {
	out   io.Writer
	in    io.Reader
	v     *viper.Viper
	clock engine.Clock

	cfgFile  string
	debug    bool
	settings config.Settings

	closers []io.Closer
}

func newCLI(out io.Writer, in io.Reader) *cli {
	return &cli{
		out:   out,
		in:    in,
		v:     viper.New(),
		clock: engine.RealClock{},
	}
}

// close releases the store and the log file. Errors are ignored.
func (c *cli) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		_ = c.closers[i].Close()
	}
	c.closers = nil
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppCommand,
		Short: "Numerology, biorhythms and life timeline insights",
		Long: `go-insight computes numerology profiles, biorhythm cycles, daily transit
advice and life timelines from a birth date, keeps a personal journal and
ledger, and publishes an iCalendar feed of the notable days.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.initConfig,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, config.FlagConfig, "", config.FlagDescConfig)
	pf.BoolVar(&c.debug, config.FlagDebug, false, config.FlagDescDebug)
	pf.String(config.FlagLogLevel, config.DefaultLogLevel, config.FlagDescLogLevel)
	pf.String(config.FlagLogFormat, config.DefaultLogFormat, config.FlagDescLogFormat)
	pf.StringP(config.FlagOutput, "o", config.DefaultOutputFormat, config.FlagDescOutput)
	pf.String(config.FlagLocale, config.DefaultLocale, config.FlagDescLocale)

	_ = c.v.BindPFlag(config.KeyLogLevel, pf.Lookup(config.FlagLogLevel))
	_ = c.v.BindPFlag(config.KeyLogFormat, pf.Lookup(config.FlagLogFormat))
	_ = c.v.BindPFlag(config.KeyOutputFormat, pf.Lookup(config.FlagOutput))
	_ = c.v.BindPFlag(config.KeyLocale, pf.Lookup(config.FlagLocale))

	root.AddCommand(c.profileCmd())
	root.AddCommand(c.numerologyCmd())
	root.AddCommand(c.biorhythmCmd())
	root.AddCommand(c.timelineCmd())
	root.AddCommand(c.dailyCmd())
	root.AddCommand(c.noteCmd())
	root.AddCommand(c.journalCmd())
	root.AddCommand(c.financeCmd())
	root.AddCommand(c.calendarCmd())
	root.AddCommand(c.importCmd())
	root.AddCommand(c.serveCmd())
	root.AddCommand(c.authCmd())
	root.AddCommand(c.versionCmd())

	return root
}

// initConfig loads the settings and installs the logger before any command runs.
func (c *cli) initConfig(cmd *cobra.Command, _ []string) error {
	s, err := config.Load(c.v, c.cfgFile)
	if err != nil {
		return err
	}
	c.settings = s

	logCloser, err := setupLogging(s, c.debug)
	if err != nil {
		return err
	}
	if logCloser != nil {
		c.closers = append(c.closers, logCloser)
	}

	if c.v.ConfigFileUsed() == "" {
		slog.Debug(config.MsgConfigNotFound, config.LogKeyComponent, config.CompCLI)
	}
	logStartupInfo(cmd.CommandPath())
	return nil
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(c.out, config.MsgVersionOutput,
				config.AppCommand,
				config.Version,
				config.Commit,
				config.Date,
				runtime.GOOS,
				runtime.GOARCH,
			)
			return err
		},
	}
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo(command string) {
	slog.Debug(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyCommand, command,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger. Logs go to stderr, so
// they never mix with rendered output, and to a file in the user cache
// directory when log.file is enabled.
func setupLogging(s config.Settings, debugMode bool) (io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return nil, fmt.Errorf("%s: %q", config.ErrLogLevel, s.LogLevel)
	}
	if debugMode {
		level = slog.LevelDebug
	}

	writers := []io.Writer{os.Stderr}
	var logFile *os.File

	if s.LogFile {
		if logPath, err := getLogFilePath(); err == nil {
			// O_TRUNC resets logs on every run to prevent indefinite growth.
			f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
			if err == nil {
				writers = append(writers, f)
				logFile = f
			} else {
				fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
			}
		}
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	w := io.MultiWriter(writers...)
	var handler slog.Handler
	switch s.LogFormat {
	case config.LogFormatConsole:
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))

	if logFile == nil {
		return nil, nil
	}
	return logFile, nil
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}

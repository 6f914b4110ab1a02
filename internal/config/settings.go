package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Settings is the resolved runtime configuration.
// Values come from (highest precedence first) CLI flags bound into viper,
// INSIGHT_* environment variables, the YAML config file, and the defaults below.
type Settings struct {
	StoreDriver    string
	StorePath      string
	Locale         string
	OutputFormat   string
	LogLevel       string
	LogFormat      string
	LogFile        bool
	ServerPort     string
	RefreshMinutes int
	CalendarDays   int
	Reminder       string // ISO8601 duration, e.g. "-P1D". Empty disables alarms.
	ImportURL      string
	ImportUser     string
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStoreDriver, DefaultStoreDriver)
	v.SetDefault(KeyStorePath, "")
	v.SetDefault(KeyLocale, DefaultLocale)
	v.SetDefault(KeyOutputFormat, DefaultOutputFormat)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyLogFile, true)
	v.SetDefault(KeyServerPort, DefaultPort)
	v.SetDefault(KeyRefreshMinutes, DefaultRefreshMinutes)
	v.SetDefault(KeyCalendarDays, DefaultCalendarDays)
	v.SetDefault(KeyReminder, "")
	v.SetDefault(KeyImportURL, "")
	v.SetDefault(KeyImportUser, "")
}

// Load reads the config file (explicit path or the standard search locations)
// and the environment into v, then returns the validated Settings.
// A missing config file is not an error.
func Load(v *viper.Viper, cfgFile string) (Settings, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, ConfigDirName))
		}
		v.AddConfigPath(".")
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileType)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("%s: %w", ErrConfigRead, err)
		}
	}

	s := Settings{
		StoreDriver:    strings.ToLower(v.GetString(KeyStoreDriver)),
		StorePath:      v.GetString(KeyStorePath),
		Locale:         v.GetString(KeyLocale),
		OutputFormat:   strings.ToLower(v.GetString(KeyOutputFormat)),
		LogLevel:       strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:      strings.ToLower(v.GetString(KeyLogFormat)),
		LogFile:        v.GetBool(KeyLogFile),
		ServerPort:     v.GetString(KeyServerPort),
		RefreshMinutes: v.GetInt(KeyRefreshMinutes),
		CalendarDays:   v.GetInt(KeyCalendarDays),
		Reminder:       v.GetString(KeyReminder),
		ImportURL:      v.GetString(KeyImportURL),
		ImportUser:     v.GetString(KeyImportUser),
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks enumerated values and numeric ranges.
func (s Settings) Validate() error {
	switch s.StoreDriver {
	case DriverMemory, DriverFile, DriverSQLite:
	default:
		return fmt.Errorf("%s: %q", ErrDriverUnsupport, s.StoreDriver)
	}

	switch s.OutputFormat {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%s: %q", ErrFormatUnsupport, s.OutputFormat)
	}

	switch s.LogFormat {
	case LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf("%s: %q", ErrLogFormat, s.LogFormat)
	}

	return ValidatePort(s.ServerPort)
}

// ValidatePort checks that port is a decimal number in [MinPort, MaxPort].
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}

// ResolveStorePath returns the configured store path, or the default location
// in the user config directory for file-backed drivers.
func (s Settings) ResolveStorePath() (string, error) {
	if s.StorePath != "" || s.StoreDriver == DriverMemory {
		return s.StorePath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}

	name := StoreFileName
	if s.StoreDriver == DriverSQLite {
		name = StoreDBName
	}
	return filepath.Join(dir, ConfigDirName, name), nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aschey/livetimer/internal/format"
	"github.com/aschey/livetimer/internal/statusbar"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	IntervalKey = "interval"
	FormatKey   = "format"
	OutputKey   = "output"
	TargetKey   = "target"
	TUIKey      = "tui"
	LogFileKey  = "log-file"
	ConfigKey   = "config"
)

var OutputFormats = []string{"table", "json", "yaml", "none"}

type Config struct {
	Interval time.Duration
	Format   string
	Output   string
	Target   time.Duration
	TUI      bool
	LogFile  string
}

func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(IntervalKey, statusbar.DefaultInterval)
	v.SetDefault(FormatKey, format.DefaultTemplate)
	v.SetDefault(OutputKey, "table")
	v.SetDefault(TargetKey, time.Duration(0))
	v.SetDefault(TUIKey, false)

	v.SetEnvPrefix("livetimer")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags registers the configuration flags on flags and binds them to v.
// The log file is only read from the environment since the logger is built
// before flags are parsed.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.Duration(IntervalKey, statusbar.DefaultInterval, "How often the status line is redrawn")
	flags.StringP(FormatKey, "f", format.DefaultTemplate, "Status line format. Tokens: %H %M %S %f %ms")
	flags.StringP(OutputKey, "o", "table", "Summary format: "+strings.Join(OutputFormats, ", "))
	flags.Duration(TargetKey, 0, "Show a progress bar toward this duration")
	flags.Bool(TUIKey, false, "Interactive mode with pause and resume keys")
	flags.String(ConfigKey, "", "Config file (default is $HOME/.livetimer/config.yaml)")

	return v.BindPFlags(flags)
}

// ReadConfigFile reads the file named by the config key, or the default
// location if it exists. A missing default file is not an error.
func ReadConfigFile(v *viper.Viper) error {
	if file := v.GetString(ConfigKey); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file %s: %w", file, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(filepath.Join(home, ".livetimer"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Interval: v.GetDuration(IntervalKey),
		Format:   v.GetString(FormatKey),
		Output:   strings.ToLower(v.GetString(OutputKey)),
		Target:   v.GetDuration(TargetKey),
		TUI:      v.GetBool(TUIKey),
		LogFile:  v.GetString(LogFileKey),
	}

	if cfg.Interval <= 0 {
		return cfg, fmt.Errorf("invalid %s %q: must be positive", IntervalKey, v.GetString(IntervalKey))
	}
	if cfg.Target < 0 {
		return cfg, fmt.Errorf("invalid %s %q: must not be negative", TargetKey, v.GetString(TargetKey))
	}
	if cfg.Target > 0 && cfg.Target < time.Millisecond {
		return cfg, fmt.Errorf("invalid %s %q: must be at least 1ms", TargetKey, v.GetString(TargetKey))
	}
	if !validOutput(cfg.Output) {
		return cfg, fmt.Errorf("invalid %s %q: expected one of %s",
			OutputKey, cfg.Output, strings.Join(OutputFormats, ", "))
	}
	return cfg, nil
}

func validOutput(output string) bool {
	for _, known := range OutputFormats {
		if output == known {
			return true
		}
	}
	return false
}

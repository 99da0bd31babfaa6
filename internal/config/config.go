package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Focus   FocusConfig
	Journal JournalConfig
	Widget  WidgetConfig
	Log     LogConfig
}

// FocusConfig tunes the coordinator's deferred-focus behaviour.
type FocusConfig struct {
	// ClearDelayMS is how long clear-all waits before refocusing the first
	// slot. Widget clears may complete asynchronously; raise this if the
	// refocus races ahead of slow widgets.
	ClearDelayMS int `mapstructure:"clear_delay_ms"`
}

// ClearDelay returns the configured delay as a duration.
func (f FocusConfig) ClearDelay() time.Duration {
	return time.Duration(f.ClearDelayMS) * time.Millisecond
}

// JournalConfig holds the sqlite event-journal settings.
type JournalConfig struct {
	Enabled bool
	Path    string
}

// WidgetConfig controls which slots are forced onto the fallback widget,
// for demoing the degraded path without breaking the rich one.
type WidgetConfig struct {
	ForceFallback []string `mapstructure:"force_fallback"`
}

// LogConfig holds diagnostics output settings.
type LogConfig struct {
	Path  string
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix DUALINPUT_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("focus.clear_delay_ms", 100)
	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "dualinput", "journal.db"))
	v.SetDefault("widget.force_fallback", []string{})
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "dualinput", "dualinput.log"))
	v.SetDefault("log.level", "warn")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("DUALINPUT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "dualinput"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DUALINPUT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

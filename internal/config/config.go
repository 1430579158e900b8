// Package config loads focusbox settings from a YAML file, FOCUSBOX_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full settings tree.
type Config struct {
	Timer         TimerConfig        `mapstructure:"timer"`
	Sound         SoundConfig        `mapstructure:"sound"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
	Paths         PathsConfig        `mapstructure:"paths"`
	// Debug makes box machine invariant violations panic.
	Debug bool `mapstructure:"debug"`
}

// TimerConfig controls the box cycle and the daily goal.
type TimerConfig struct {
	WorkMinutes      int `mapstructure:"work_minutes"`
	BreakMinutes     int `mapstructure:"break_minutes"`
	// DailyWorkMinutes is the daily goal; 0 turns the goal notification off.
	DailyWorkMinutes int `mapstructure:"daily_work_minutes"`
	// TickMillis is the interval between box machine ticks.
	TickMillis int `mapstructure:"tick_ms"`
	// Timezone names the IANA zone calendar days are computed in; empty
	// means the system zone.
	Timezone string `mapstructure:"timezone"`
}

// SoundConfig controls audible cues.
type SoundConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
	// Command overrides the platform audio player (afplay, paplay).
	Command string `mapstructure:"command"`
	// Dir holds one sound file per cue, named after the cue.
	Dir string `mapstructure:"dir"`
}

// NotificationConfig controls desktop banners.
type NotificationConfig struct {
	Banner bool `mapstructure:"banner"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File is appended to; empty means stderr.
	File string `mapstructure:"file"`
}

type PathsConfig struct {
	Database string `mapstructure:"database"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Timer: TimerConfig{
			WorkMinutes:      25,
			BreakMinutes:     5,
			DailyWorkMinutes: 240,
			TickMillis:       1000,
		},
		Sound: SoundConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Notifications: NotificationConfig{
			Banner: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Paths: PathsConfig{
			Database: filepath.Join(DataDir(), "focusbox.db"),
		},
	}
}

// SetDefaults registers every key with v so env overrides and Unmarshal see
// them even without a config file.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("timer.work_minutes", defaults.Timer.WorkMinutes)
	v.SetDefault("timer.break_minutes", defaults.Timer.BreakMinutes)
	v.SetDefault("timer.daily_work_minutes", defaults.Timer.DailyWorkMinutes)
	v.SetDefault("timer.tick_ms", defaults.Timer.TickMillis)
	v.SetDefault("timer.timezone", defaults.Timer.Timezone)

	v.SetDefault("sound.enabled", defaults.Sound.Enabled)
	v.SetDefault("sound.volume", defaults.Sound.Volume)
	v.SetDefault("sound.command", defaults.Sound.Command)
	v.SetDefault("sound.dir", defaults.Sound.Dir)

	v.SetDefault("notifications.banner", defaults.Notifications.Banner)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.file", defaults.Logging.File)

	v.SetDefault("paths.database", defaults.Paths.Database)

	v.SetDefault("debug", defaults.Debug)
}

// NewViper builds a viper instance with defaults, the config file and the
// FOCUSBOX_ environment applied. A missing config file is not an error; an
// explicit cfgFile that cannot be read is.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
	}

	v.SetEnvPrefix("FOCUSBOX")
	// FOCUSBOX_TIMER_WORK_MINUTES sets timer.work_minutes.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return v, nil
}

// Load reads the configuration from v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "focusbox")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".focusbox"
	}
	return filepath.Join(home, ".config", "focusbox")
}

// ConfigFile returns the path to the default config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns where the database lives by default.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "focusbox")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".focusbox"
	}
	return filepath.Join(home, ".local", "share", "focusbox")
}

func (c TimerConfig) WorkDuration() time.Duration {
	return time.Duration(c.WorkMinutes) * time.Minute
}

func (c TimerConfig) BreakDuration() time.Duration {
	return time.Duration(c.BreakMinutes) * time.Minute
}

func (c TimerConfig) TickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// Location resolves Timezone, falling back to time.Local.
func (c TimerConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

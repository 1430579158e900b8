package config

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Live holds the current configuration and swaps it when the config file
// changes. An edit that fails validation is logged and ignored.
type Live struct {
	v      *viper.Viper
	logger *slog.Logger

	mu        sync.RWMutex
	cfg       Config
	listeners []func(Config)
}

func NewLive(v *viper.Viper, cfg *Config, logger *slog.Logger) *Live {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Live{v: v, cfg: *cfg, logger: logger}
}

// Watch starts following the config file. It is a no-op when no file was
// read.
func (l *Live) Watch() {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		l.logger.Info("config file changed", "file", e.Name, "op", e.Op.String())
		l.apply()
	})
	l.v.WatchConfig()
}

// File is the config file in use, or "" when running on defaults.
func (l *Live) File() string { return l.v.ConfigFileUsed() }

// Reload re-reads the config file and applies it.
func (l *Live) Reload() error {
	if err := l.v.ReadInConfig(); err != nil {
		return err
	}
	return l.apply()
}

// OnChange registers fn to run after each successful reload.
func (l *Live) OnChange(fn func(Config)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

func (l *Live) apply() error {
	cfg, err := Load(l.v)
	if err != nil {
		l.logger.Warn("ignoring invalid config", "error", err)
		return err
	}
	l.mu.Lock()
	l.cfg = *cfg
	listeners := slices.Clone(l.listeners)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(*cfg)
	}
	return nil
}

// Current returns a copy of the active configuration.
func (l *Live) Current() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg
}

func (l *Live) WorkDuration() time.Duration  { return l.Current().Timer.WorkDuration() }
func (l *Live) BreakDuration() time.Duration { return l.Current().Timer.BreakDuration() }
func (l *Live) DailyWorkMinutes() int        { return l.Current().Timer.DailyWorkMinutes }
func (l *Live) SoundEnabled() bool           { return l.Current().Sound.Enabled }
func (l *Live) SoundVolume() float64         { return l.Current().Sound.Volume }
func (l *Live) BannerEnabled() bool          { return l.Current().Notifications.Banner }

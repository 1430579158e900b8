package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Timer.WorkMinutes)
	assert.Equal(t, 5, cfg.Timer.BreakMinutes)
	assert.Equal(t, 240, cfg.Timer.DailyWorkMinutes)
	assert.True(t, cfg.Sound.Enabled)
	assert.True(t, cfg.Notifications.Banner)
	assert.InDelta(t, 0.5, cfg.Sound.Volume, 1e-9)
	assert.Equal(t, time.Second, cfg.Timer.TickInterval())
	assert.False(t, cfg.Debug)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
timer:
  work_minutes: 50
  break_minutes: 10
sound:
  enabled: false
  volume: 0.2
debug: true
`)
	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 50*time.Minute, cfg.Timer.WorkDuration())
	assert.Equal(t, 10*time.Minute, cfg.Timer.BreakDuration())
	assert.Equal(t, 240, cfg.Timer.DailyWorkMinutes, "unset keys keep defaults")
	assert.False(t, cfg.Sound.Enabled)
	assert.True(t, cfg.Debug)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "timer:\n  work_minutes: 50\n")
	t.Setenv("FOCUSBOX_TIMER_WORK_MINUTES", "45")

	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.Timer.WorkMinutes)
}

func TestNewViper_ExplicitMissingFileFails(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Validate())

	cfg.Timer.WorkMinutes = 0
	cfg.Sound.Volume = 1.5
	cfg.Logging.Level = "loud"
	cfg.Timer.Timezone = "Mars/Olympus"

	errs := cfg.Validate()
	require.Len(t, errs, 4)
	assert.Contains(t, ValidationErrors(errs).Error(), "4 validation errors")
	assert.Equal(t, "timer.work_minutes", errs[0].Field)
}

func TestValidate_ZeroDailyGoalAllowed(t *testing.T) {
	cfg := Default()
	cfg.Timer.DailyWorkMinutes = 0
	assert.Empty(t, cfg.Validate())

	cfg.Timer.DailyWorkMinutes = -1
	require.Len(t, cfg.Validate(), 1)
}

func TestTimerConfig_Location(t *testing.T) {
	assert.Equal(t, time.Local, TimerConfig{}.Location())
	assert.Equal(t, "UTC", TimerConfig{Timezone: "UTC"}.Location().String())
}

func TestConfigDir_HonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "focusbox"), ConfigDir())
	assert.Equal(t, filepath.Join("/tmp/xdg", "focusbox", "config.yaml"), ConfigFile())
}

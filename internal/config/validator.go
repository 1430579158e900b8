package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the accepted logging.level values.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidLogFormats returns the accepted logging.format values.
func ValidLogFormats() []string {
	return []string{"text", "json"}
}

// Validate checks the Config for invalid values and returns every problem.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Timer.WorkMinutes < 1 {
		errs = append(errs, ValidationError{"timer.work_minutes", c.Timer.WorkMinutes, "must be at least 1"})
	}
	if c.Timer.BreakMinutes < 1 {
		errs = append(errs, ValidationError{"timer.break_minutes", c.Timer.BreakMinutes, "must be at least 1"})
	}
	if c.Timer.DailyWorkMinutes < 0 {
		errs = append(errs, ValidationError{"timer.daily_work_minutes", c.Timer.DailyWorkMinutes, "must not be negative"})
	}
	if c.Timer.TickMillis < 10 || c.Timer.TickMillis > 60_000 {
		errs = append(errs, ValidationError{"timer.tick_ms", c.Timer.TickMillis, "must be between 10 and 60000"})
	}
	if c.Timer.Timezone != "" {
		if _, err := time.LoadLocation(c.Timer.Timezone); err != nil {
			errs = append(errs, ValidationError{"timer.timezone", c.Timer.Timezone, "unknown time zone"})
		}
	}

	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		errs = append(errs, ValidationError{"sound.volume", c.Sound.Volume, "must be between 0 and 1"})
	}

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{"logging.level", c.Logging.Level,
			"must be one of " + strings.Join(ValidLogLevels(), ", ")})
	}
	if !slices.Contains(ValidLogFormats(), strings.ToLower(c.Logging.Format)) {
		errs = append(errs, ValidationError{"logging.format", c.Logging.Format,
			"must be one of " + strings.Join(ValidLogFormats(), ", ")})
	}

	if strings.TrimSpace(c.Paths.Database) == "" {
		errs = append(errs, ValidationError{"paths.database", c.Paths.Database, "must not be empty"})
	}

	return errs
}

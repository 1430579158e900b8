package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/alexanderramin/focusbox/internal/repository"
	"github.com/spf13/pflag"
)

// resolveMeasurementID resolves a full measurement ID or a unique prefix of
// one, as printed by the list commands.
func resolveMeasurementID(app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", domain.NewValidationError("id", "must not be empty")
	}
	if _, err := app.Store.Measurement(input); err == nil {
		return input, nil
	}

	var matches []string
	for _, m := range app.Store.Measurements() {
		if strings.HasPrefix(m.ID, input) {
			matches = append(matches, m.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("measurement %q: %w", input, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("measurement prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// spanFlags collects the start/end/minutes flags shared by add and edit.
type spanFlags struct {
	start   string
	end     string
	minutes int
}

func addSpanFlags(fs *pflag.FlagSet, f *spanFlags) {
	fs.StringVar(&f.start, "start", "", `Start time ("15:04" today, or "2006-01-02 15:04")`)
	fs.StringVar(&f.end, "end", "", "End time, same formats as --start (default now)")
	fs.IntVar(&f.minutes, "minutes", 0, "Duration in minutes, counted from --start or back from --end")
}

// resolve turns the flags into a concrete span. Unset values fall back to
// base (for edit) or to now.
func (f spanFlags) resolve(base domain.Measurement, now time.Time) (time.Time, time.Time, error) {
	start, end := base.Start, base.End
	if end.IsZero() {
		end = now
	}

	var err error
	if f.start != "" {
		if start, err = parseWhen(f.start, now); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if f.end != "" {
		if end, err = parseWhen(f.end, now); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if f.minutes < 0 {
		return time.Time{}, time.Time{}, domain.NewValidationError("minutes", "must not be negative")
	}
	if f.minutes > 0 {
		d := time.Duration(f.minutes) * time.Minute
		if f.start != "" || (f.end == "" && !start.IsZero()) {
			end = start.Add(d)
		} else {
			start = end.Add(-d)
		}
	}
	if start.IsZero() {
		return time.Time{}, time.Time{}, domain.NewValidationError("start", "required (use --start or --minutes)")
	}
	return start, end, nil
}

var whenLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// parseWhen parses an absolute timestamp, or a bare "15:04" on now's date,
// in now's location.
func parseWhen(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	loc := now.Location()
	for _, layout := range whenLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			y, m, d := now.Date()
			return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc), nil
		}
	}
	return time.Time{}, domain.NewValidationError("time", "cannot parse %q", s)
}

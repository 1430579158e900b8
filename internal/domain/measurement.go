package domain

import (
	"strings"
	"time"
)

// Measurement is a manually started and stopped work interval.
type Measurement struct {
	ID     string
	Label  string
	Detail string
	Start  time.Time
	End    time.Time
	Color  Color
}

// Duration is derived from the timestamps; it is never stored.
func (m Measurement) Duration() time.Duration {
	return m.End.Sub(m.Start)
}

// Validate checks the End >= Start invariant and that the label is usable.
func (m Measurement) Validate() error {
	if strings.TrimSpace(m.Label) == "" {
		return NewValidationError("label", "must not be empty")
	}
	if m.Start.IsZero() {
		return NewValidationError("start", "is required")
	}
	if m.End.Before(m.Start) {
		return NewValidationError("end", "must not be before start (%s < %s)",
			m.End.Format(time.RFC3339), m.Start.Format(time.RFC3339))
	}
	return nil
}

// NormalizeLabel trims surrounding whitespace so labels match catalog names.
func NormalizeLabel(label string) string {
	return strings.TrimSpace(label)
}

// ActiveMeasurement is a measurement that has been started but not stopped.
type ActiveMeasurement struct {
	Label  string
	Detail string
	Start  time.Time
}

// Finish closes the active measurement at end.
func (a ActiveMeasurement) Finish(id string, end time.Time) Measurement {
	return Measurement{
		ID:     id,
		Label:  NormalizeLabel(a.Label),
		Detail: a.Detail,
		Start:  a.Start,
		End:    end,
	}
}

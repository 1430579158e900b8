package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/focusbox/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

// timeLayout is fixed-width UTC so lexical order equals chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(field, s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeasurement(row rowScanner) (domain.Measurement, error) {
	var m domain.Measurement
	var startStr, endStr string
	if err := row.Scan(&m.ID, &m.Label, &m.Detail, &startStr, &endStr,
		&m.Color.R, &m.Color.G, &m.Color.B); err != nil {
		return m, err
	}
	var err error
	if m.Start, err = parseTime("start_at", startStr); err != nil {
		return m, err
	}
	if m.End, err = parseTime("end_at", endStr); err != nil {
		return m, err
	}
	return m, nil
}

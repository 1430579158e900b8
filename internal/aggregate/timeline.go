package aggregate

import (
	"time"

	"github.com/alexanderramin/focusbox/internal/domain"
)

// MinutesPerDay is the width of the timeline.
const MinutesPerDay = 24 * 60

// Segment is one measurement placed on the 24h timeline.
type Segment struct {
	StartMinute     int
	DurationMinutes int
	Color           domain.Color
	Label           string
}

// Timeline places today's measurements on a minute grid. Offsets are counted
// from the start of today in now's location; seconds are truncated.
// Measurements without a catalog entry use domain.NeutralColor.
func Timeline(ms []domain.Measurement, catalog map[string]domain.CatalogEntry, now time.Time) []Segment {
	today := StartOfDay(now, now.Location())
	var out []Segment
	for _, m := range ms {
		if m.Start.Before(today) {
			continue
		}
		color := domain.NeutralColor
		if entry, ok := catalog[domain.NormalizeLabel(m.Label)]; ok {
			color = entry.Color
		}
		out = append(out, Segment{
			StartMinute:     int(m.Start.Sub(today).Seconds()) / 60,
			DurationMinutes: int(m.Duration().Seconds()) / 60,
			Color:           color,
			Label:           m.Label,
		})
	}
	return out
}

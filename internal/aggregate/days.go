// Package aggregate derives read-only views from the stored measurements and
// catalog. Nothing here mutates its inputs.
package aggregate

import (
	"log/slog"
	"sort"
	"time"

	"github.com/alexanderramin/focusbox/internal/domain"
)

// Entry pairs a measurement with the catalog entry for its label.
type Entry struct {
	Measurement domain.Measurement
	Catalog     domain.CatalogEntry
}

// DayGroup holds one calendar day's entries, newest start first.
type DayGroup struct {
	Day   time.Time // local midnight
	Items []Entry
}

// Total sums the durations of the day's entries.
func (g DayGroup) Total() time.Duration {
	var total time.Duration
	for _, e := range g.Items {
		total += e.Measurement.Duration()
	}
	return total
}

// GroupByDay partitions measurements by the calendar day of their start in
// loc. Groups and the items inside them are ordered newest first.
// Measurements whose label has no catalog entry are dropped and logged.
func GroupByDay(ms []domain.Measurement, catalog map[string]domain.CatalogEntry, loc *time.Location, logger *slog.Logger) []DayGroup {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if loc == nil {
		loc = time.Local
	}

	byDay := make(map[time.Time]*DayGroup)
	for _, m := range ms {
		entry, ok := catalog[domain.NormalizeLabel(m.Label)]
		if !ok {
			logger.Warn("measurement has no catalog entry", "id", m.ID, "label", m.Label)
			continue
		}
		day := StartOfDay(m.Start, loc)
		g, ok := byDay[day]
		if !ok {
			g = &DayGroup{Day: day}
			byDay[day] = g
		}
		g.Items = append(g.Items, Entry{Measurement: m, Catalog: entry})
	}

	groups := make([]DayGroup, 0, len(byDay))
	for _, g := range byDay {
		sort.SliceStable(g.Items, func(i, j int) bool {
			return g.Items[i].Measurement.Start.After(g.Items[j].Measurement.Start)
		})
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Day.After(groups[j].Day) })
	return groups
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// MinutesToday sums whole minutes of today's measurements plus the elapsed
// part of an active measurement started today.
func MinutesToday(ms []domain.Measurement, active *domain.ActiveMeasurement, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	today := StartOfDay(now, loc)
	var total time.Duration
	for _, m := range ms {
		if !m.Start.Before(today) {
			total += m.Duration()
		}
	}
	if active != nil && !active.Start.Before(today) && now.After(active.Start) {
		total += now.Sub(active.Start)
	}
	return int(total / time.Minute)
}

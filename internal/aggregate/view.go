package aggregate

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/alexanderramin/focusbox/internal/domain"
)

// Source is the read side of the session store.
type Source interface {
	Measurements() []domain.Measurement
	Catalog() map[string]domain.CatalogEntry
	Version() uint64
}

// View memoizes the derived views of a Source. A view is recomputed in full
// the first time it is read after the source version changes; the timeline
// is also recomputed when the calendar day changes.
type View struct {
	src    Source
	loc    *time.Location
	logger *slog.Logger

	mu          sync.Mutex
	daysVersion uint64
	days        []DayGroup
	daysValid   bool
	lineVersion uint64
	lineDay     time.Time
	line        []Segment
	lineValid   bool
	recomputes  int
}

func NewView(src Source, loc *time.Location, logger *slog.Logger) *View {
	if loc == nil {
		loc = time.Local
	}
	return &View{src: src, loc: loc, logger: logger}
}

// Days returns a copy of the grouped-by-day view.
func (v *View) Days() []DayGroup {
	v.mu.Lock()
	defer v.mu.Unlock()
	ver := v.src.Version()
	if !v.daysValid || ver != v.daysVersion {
		v.days = GroupByDay(v.src.Measurements(), v.src.Catalog(), v.loc, v.logger)
		v.daysVersion = ver
		v.daysValid = true
		v.recomputes++
	}
	out := make([]DayGroup, len(v.days))
	for i, g := range v.days {
		out[i] = DayGroup{Day: g.Day, Items: slices.Clone(g.Items)}
	}
	return out
}

// Timeline returns today's segments relative to now.
func (v *View) Timeline(now time.Time) []Segment {
	v.mu.Lock()
	defer v.mu.Unlock()
	now = now.In(v.loc)
	ver := v.src.Version()
	day := StartOfDay(now, v.loc)
	if !v.lineValid || ver != v.lineVersion || !day.Equal(v.lineDay) {
		v.line = Timeline(v.src.Measurements(), v.src.Catalog(), now)
		v.lineVersion = ver
		v.lineDay = day
		v.lineValid = true
		v.recomputes++
	}
	return slices.Clone(v.line)
}

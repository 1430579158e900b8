package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/focusbox/internal/aggregate"
	"github.com/alexanderramin/focusbox/internal/domain"
)

const emptyCell = "·"

// TimelineCells maps segments onto width cells covering the whole day. Each
// cell holds the segment covering its first minute, or nil. Later segments
// win where segments overlap.
func TimelineCells(segs []aggregate.Segment, width int) []*aggregate.Segment {
	cells := make([]*aggregate.Segment, width)
	if width <= 0 {
		return cells
	}
	for i := range segs {
		s := &segs[i]
		end := s.StartMinute + max(s.DurationMinutes, 1)
		for c := 0; c < width; c++ {
			minute := c * aggregate.MinutesPerDay / width
			cellEnd := (c + 1) * aggregate.MinutesPerDay / width
			if minute < end && cellEnd > s.StartMinute {
				cells[c] = s
			}
		}
	}
	return cells
}

// FormatTimeline renders today's occupancy as a colored strip with an hour
// axis and a legend of the labels shown.
func FormatTimeline(segs []aggregate.Segment, width int) string {
	width = max(width, 24)

	var strip strings.Builder
	for _, cell := range TimelineCells(segs, width) {
		if cell == nil {
			strip.WriteString(Dim(emptyCell))
			continue
		}
		strip.WriteString(Swatch(cell.Color, 1))
	}

	axis := []byte(strings.Repeat(" ", width+2))
	for _, h := range []int{0, 6, 12, 18} {
		label := fmt.Sprintf("%d", h)
		pos := h * 60 * width / aggregate.MinutesPerDay
		copy(axis[pos:], label)
	}
	copy(axis[width:], "24")

	var b strings.Builder
	b.WriteString(strip.String())
	b.WriteString("\n")
	b.WriteString(Dim(strings.TrimRight(string(axis), " ")))
	b.WriteString("\n")

	totals := make(map[string]int)
	colors := make(map[string]domain.Color)
	for _, s := range segs {
		totals[s.Label] += s.DurationMinutes
		colors[s.Label] = s.Color
	}
	labels := make([]string, 0, len(totals))
	for l := range totals {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		fmt.Fprintf(&b, "%s %s %s\n", Swatch(colors[l], 2), l, Dim(FormatMinutes(totals[l])))
	}
	return b.String()
}

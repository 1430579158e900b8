package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focusbox/internal/aggregate"
	"github.com/alexanderramin/focusbox/internal/domain"
)

// FormatDays renders grouped measurements, one block per day, newest first.
func FormatDays(groups []aggregate.DayGroup, today time.Time) string {
	if len(groups) == 0 {
		return Dim("No measurements yet.") + "\n"
	}

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		title := fmt.Sprintf("%s  %s", DayTitle(g.Day, today), Dim(FormatDuration(g.Total())))
		b.WriteString(Header(title))
		b.WriteString("\n")

		rows := make([][]string, 0, len(g.Items))
		for _, e := range g.Items {
			m := e.Measurement
			rows = append(rows, []string{
				Swatch(e.Catalog.Color, 2),
				ClockSpan(m.Start.In(today.Location()), m.End.In(today.Location())),
				FormatDuration(m.Duration()),
				e.Catalog.Name,
				m.Detail,
				TruncID(m.ID),
			})
		}
		b.WriteString(RenderTable([]string{"", "TIME", "DURATION", "LABEL", "DETAIL", "ID"}, rows))
	}
	return b.String()
}

// FormatMeasurements renders a flat measurement list.
func FormatMeasurements(ms []domain.Measurement, catalog map[string]domain.CatalogEntry, loc *time.Location) string {
	if len(ms) == 0 {
		return Dim("No measurements found.") + "\n"
	}
	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		color := domain.NeutralColor
		if e, ok := catalog[domain.NormalizeLabel(m.Label)]; ok {
			color = e.Color
		}
		rows = append(rows, []string{
			TruncID(m.ID),
			Swatch(color, 2) + " " + m.Label,
			m.Start.In(loc).Format("2006-01-02 15:04"),
			FormatDuration(m.Duration()),
			m.Detail,
		})
	}
	return RenderTable([]string{"ID", "LABEL", "STARTED", "DURATION", "DETAIL"}, rows)
}

// FormatMeasurement renders one measurement as a single line.
func FormatMeasurement(m domain.Measurement, loc *time.Location) string {
	line := fmt.Sprintf("%s %s %s (%s)",
		TruncID(m.ID),
		Bold(m.Label),
		ClockSpan(m.Start.In(loc), m.End.In(loc)),
		FormatDuration(m.Duration()))
	if m.Detail != "" {
		line += " " + Dim(m.Detail)
	}
	return line
}

// FormatBoxes renders completed boxes.
func FormatBoxes(bs []domain.Box, loc *time.Location) string {
	if len(bs) == 0 {
		return Dim("No boxes completed yet.") + "\n"
	}
	rows := make([][]string, 0, len(bs))
	for _, b := range bs {
		rows = append(rows, []string{
			TruncID(b.ID),
			b.Start.In(loc).Format("2006-01-02 15:04"),
			FormatMinutes(b.WorkMinutes),
		})
	}
	return RenderTable([]string{"ID", "STARTED", "LENGTH"}, rows)
}

// FormatCatalog renders catalog entries with their colors.
func FormatCatalog(entries []domain.CatalogEntry) string {
	if len(entries) == 0 {
		return Dim("Catalog is empty.") + "\n"
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{Swatch(e.Color, 2), e.Name, Hex(e.Color)})
	}
	return RenderTable([]string{"", "NAME", "COLOR"}, rows)
}

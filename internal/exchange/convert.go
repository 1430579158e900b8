package exchange

import (
	"fmt"
	"time"

	"github.com/alexanderramin/focusbox/internal/domain"
)

// Build assembles a document from the stored collections. Timestamps are
// truncated to the second.
func Build(ms []domain.Measurement, bs []domain.Box, now time.Time) *Document {
	doc := &Document{
		Version:      SchemaVersion,
		ExportedAt:   formatTime(now),
		Measurements: make([]MeasurementRecord, 0, len(ms)),
		Boxes:        make([]BoxRecord, 0, len(bs)),
	}
	for _, m := range ms {
		doc.Measurements = append(doc.Measurements, MeasurementRecord{
			ID:     m.ID,
			Label:  m.Label,
			Detail: m.Detail,
			Start:  formatTime(m.Start),
			End:    formatTime(m.End),
			Color:  ColorRecord{R: m.Color.R, G: m.Color.G, B: m.Color.B},
		})
	}
	for _, b := range bs {
		doc.Boxes = append(doc.Boxes, BoxRecord{
			ID:          b.ID,
			Start:       formatTime(b.Start),
			WorkMinutes: b.WorkMinutes,
		})
	}
	return doc
}

// Convert turns a validated document into domain values. Call Validate
// first; Convert only reports what it cannot parse.
func Convert(doc *Document) ([]domain.Measurement, []domain.Box, error) {
	ms := make([]domain.Measurement, 0, len(doc.Measurements))
	for i, r := range doc.Measurements {
		start, err := time.Parse(TimeLayout, r.Start)
		if err != nil {
			return nil, nil, fmt.Errorf("measurements[%d].start: %w", i, err)
		}
		end, err := time.Parse(TimeLayout, r.End)
		if err != nil {
			return nil, nil, fmt.Errorf("measurements[%d].end: %w", i, err)
		}
		ms = append(ms, domain.Measurement{
			ID:     r.ID,
			Label:  domain.NormalizeLabel(r.Label),
			Detail: r.Detail,
			Start:  start,
			End:    end,
			Color:  domain.Color{R: r.Color.R, G: r.Color.G, B: r.Color.B},
		})
	}

	bs := make([]domain.Box, 0, len(doc.Boxes))
	for i, r := range doc.Boxes {
		start, err := time.Parse(TimeLayout, r.Start)
		if err != nil {
			return nil, nil, fmt.Errorf("boxes[%d].start: %w", i, err)
		}
		bs = append(bs, domain.Box{ID: r.ID, Start: start, WorkMinutes: r.WorkMinutes})
	}
	return ms, bs, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimeLayout)
}

package exchange

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks the document before conversion and returns every problem
// found.
func Validate(doc *Document) []error {
	var errs []error

	if doc.Version != SchemaVersion {
		errs = append(errs, fmt.Errorf("version: unsupported value %d (expected %d)", doc.Version, SchemaVersion))
	}

	seen := make(map[string]bool)
	for i, m := range doc.Measurements {
		prefix := fmt.Sprintf("measurements[%d]", i)
		errs = append(errs, validateID(prefix, m.ID, seen)...)
		if strings.TrimSpace(m.Label) == "" {
			errs = append(errs, fmt.Errorf("%s.label is required", prefix))
		}
		start, startErrs := validateTime(prefix+".start", m.Start)
		end, endErrs := validateTime(prefix+".end", m.End)
		errs = append(errs, startErrs...)
		errs = append(errs, endErrs...)
		if len(startErrs) == 0 && len(endErrs) == 0 && end.Before(start) {
			errs = append(errs, fmt.Errorf("%s.end %q is before start %q", prefix, m.End, m.Start))
		}
		for _, ch := range []struct {
			name string
			v    float64
		}{{"r", m.Color.R}, {"g", m.Color.G}, {"b", m.Color.B}} {
			if ch.v < 0 || ch.v > 1 {
				errs = append(errs, fmt.Errorf("%s.color.%s: %v is outside [0,1]", prefix, ch.name, ch.v))
			}
		}
	}

	boxIDs := make(map[string]bool)
	for i, b := range doc.Boxes {
		prefix := fmt.Sprintf("boxes[%d]", i)
		errs = append(errs, validateID(prefix, b.ID, boxIDs)...)
		_, startErrs := validateTime(prefix+".start", b.Start)
		errs = append(errs, startErrs...)
		if b.WorkMinutes <= 0 {
			errs = append(errs, fmt.Errorf("%s.work_minutes must be > 0, got %d", prefix, b.WorkMinutes))
		}
	}

	return errs
}

func validateID(prefix, id string, seen map[string]bool) []error {
	if id == "" {
		return []error{fmt.Errorf("%s.id is required", prefix)}
	}
	if seen[id] {
		return []error{fmt.Errorf("%s.id %q is duplicated", prefix, id)}
	}
	seen[id] = true
	return nil
}

func validateTime(field, s string) (time.Time, []error) {
	if s == "" {
		return time.Time{}, []error{fmt.Errorf("%s is required", field)}
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, []error{fmt.Errorf("%s: invalid timestamp %q (expected %s)", field, s, TimeLayout)}
	}
	return t, nil
}

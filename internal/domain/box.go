package domain

import "time"

// MinCompletionPercent is the share of the configured work duration a run
// must reach before it is recorded as a Box.
const MinCompletionPercent = 90

// Box is a completed fixed-duration work interval. Boxes are append-only.
type Box struct {
	ID          string
	Start       time.Time
	WorkMinutes int
}

// Completed reports whether a run that began at start and stopped at end
// covered enough of workMinutes to count as a Box.
func Completed(start, end time.Time, workMinutes int) bool {
	if workMinutes <= 0 {
		return false
	}
	configured := time.Duration(workMinutes) * time.Minute
	return end.Sub(start)*100 >= configured*MinCompletionPercent
}

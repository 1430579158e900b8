package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a goal bar like [████░░░░] 45%. The bar turns green
// once the goal is at least two thirds done.
func RenderProgress(pct float64, width int) string {
	pct = min(max(pct, 0), 1)
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 0.33:
		style = StyleDim
	case pct < 0.66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// GoalLine renders "1h 20m / 4h" followed by a progress bar.
func GoalLine(minutes, goal, width int) string {
	pct := 0.0
	if goal > 0 {
		pct = float64(minutes) / float64(goal)
	}
	return fmt.Sprintf("%s / %s  %s", Bold(FormatMinutes(minutes)), FormatMinutes(goal), RenderProgress(pct, width))
}

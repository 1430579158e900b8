package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StateColor returns the style used for a box state label.
func StateColor(s domain.BoxState) lipgloss.Style {
	switch s {
	case domain.BoxRunning:
		return StyleGreen
	case domain.BoxFinished:
		return StyleYellow
	default:
		return StyleBlue
	}
}

// StateIndicator returns a colored state label such as "● RUNNING".
func StateIndicator(s domain.BoxState) string {
	return StateColor(s).Render("● " + strings.ToUpper(string(s)))
}

// Hex converts a catalog color to #rrggbb, clamping out-of-range channels.
func Hex(c domain.Color) string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// ParseHex parses #rrggbb (or #rgb) into a catalog color.
func ParseHex(s string) (domain.Color, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return domain.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return domain.Color{R: c.R, G: c.G, B: c.B}, nil
}

// Swatch renders n block characters in c.
func Swatch(c domain.Color, n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(Hex(c))).Render(strings.Repeat("█", n))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/alexanderramin/focusbox/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// focusboxHuhTheme matches huh prompts to the formatter palette.
func focusboxHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirmForm asks a yes/no question; the answer lands in *ok.
func confirmForm(title, description string, ok *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(ok),
		),
	).WithTheme(focusboxHuhTheme()).WithShowHelp(false)
}

// addMeasurementValues holds the raw answers of the interactive add form.
type addMeasurementValues struct {
	Label   string
	Detail  string
	Start   string
	Minutes string
}

// addMeasurementForm collects a label, an optional detail, a start time and a
// duration.
func addMeasurementForm(v *addMeasurementValues, labels []string) *huh.Form {
	label := huh.NewInput().
		Title("Label").
		Value(&v.Label).
		Validate(validateRequired)
	if len(labels) > 0 {
		label = label.Suggestions(labels)
	}

	return huh.NewForm(
		huh.NewGroup(
			label,
			huh.NewInput().
				Title("Detail").
				Placeholder("optional").
				Value(&v.Detail),
			huh.NewInput().
				Title("Start").
				Placeholder("09:30 or 2024-01-02 09:30").
				Value(&v.Start).
				Validate(validateRequired),
			huh.NewInput().
				Title("Minutes").
				Placeholder("25").
				Value(&v.Minutes).
				Validate(validatePositiveInt),
		),
	).WithTheme(focusboxHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("must be a positive whole number")
	}
	return nil
}

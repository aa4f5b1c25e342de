package report

import (
	"github.com/fatih/color"
)

// ColorScheme defines the colors used for different parts of a report
type ColorScheme struct {
	Label     *color.Color
	Estimate  *color.Color
	Excellent *color.Color // R² > 0.99
	Good      *color.Color // R² > 0.95
	Poor      *color.Color
	Failure   *color.Color
	Dim       *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Label:     color.New(color.FgCyan, color.Bold),
		Estimate:  color.New(color.FgWhite, color.Bold),
		Excellent: color.New(color.FgGreen),
		Good:      color.New(color.FgYellow),
		Poor:      color.New(color.FgRed),
		Failure:   color.New(color.FgRed, color.Bold),
		Dim:       color.New(color.Faint),
	}
}

// ForcedColorScheme returns the default scheme with color on regardless of
// whether stdout is a terminal.
func ForcedColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	for _, c := range scheme.all() {
		c.EnableColor()
	}
	return scheme
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	for _, c := range scheme.all() {
		c.DisableColor()
	}
	return scheme
}

// Fit returns the color for a goodness-of-fit value.
func (s *ColorScheme) Fit(rSquared float64) *color.Color {
	switch {
	case rSquared > 0.99:
		return s.Excellent
	case rSquared > 0.95:
		return s.Good
	default:
		return s.Poor
	}
}

func (s *ColorScheme) all() []*color.Color {
	return []*color.Color{s.Label, s.Estimate, s.Excellent, s.Good, s.Poor, s.Failure, s.Dim}
}

// SuccessIcon returns a checkmark symbol with appropriate color
func SuccessIcon(noColor bool) string {
	if noColor {
		return "✓"
	}
	return color.New(color.FgGreen).Sprint("✓")
}

// ErrorIcon returns an X symbol with appropriate color
func ErrorIcon(noColor bool) string {
	if noColor {
		return "✗"
	}
	return color.New(color.FgRed).Sprint("✗")
}

// WarningIcon returns a warning symbol with appropriate color
func WarningIcon(noColor bool) string {
	if noColor {
		return "⚠"
	}
	return color.New(color.FgYellow).Sprint("⚠")
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/uniconvert/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the style for a validation status.
func StatusColor(s domain.ValidationStatus) lipgloss.Style {
	switch s {
	case domain.StatusValid:
		return StyleGreen
	case domain.StatusInvalid:
		return StyleRed
	case domain.StatusWarning:
		return StyleYellow
	default:
		return StyleDim
	}
}

// StatusBadge returns a colored indicator such as "● VALID".
func StatusBadge(s domain.ValidationStatus) string {
	switch s {
	case domain.StatusValid:
		return StyleGreen.Render("● VALID")
	case domain.StatusInvalid:
		return StyleRed.Render("✖ INVALID")
	case domain.StatusWarning:
		return StyleYellow.Render("▲ WARNING")
	default:
		return StyleDim.Render("● " + strings.ToUpper(string(s)))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
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

// Error renders an error line the way every command reports failures.
func Error(err error) string {
	return StyleRed.Render("Error: " + err.Error())
}

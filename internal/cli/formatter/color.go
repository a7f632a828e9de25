package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/procmap/internal/domain"
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
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the style for an activity status.
func StatusStyle(status domain.ActivityStatus) lipgloss.Style {
	switch status {
	case domain.StatusCompleted:
		return StyleGreen
	case domain.StatusInProgress:
		return StyleBlue
	case domain.StatusPending:
		return StyleYellow
	default:
		return StyleDim
	}
}

// StatusIndicator returns a colored status label such as "✔ Completed".
func StatusIndicator(status domain.ActivityStatus) string {
	style := StatusStyle(status)
	switch status {
	case domain.StatusCompleted:
		return style.Render("✔ Completed")
	case domain.StatusInProgress:
		return style.Render("▶ In progress")
	case domain.StatusPending:
		return style.Render("○ Pending")
	default:
		return style.Render("? " + string(status))
	}
}

// StatusMarker is the one-cell glyph used on the timeline grid.
func StatusMarker(status domain.ActivityStatus) string {
	switch status {
	case domain.StatusCompleted:
		return "●"
	case domain.StatusInProgress:
		return "◐"
	default:
		return "○"
	}
}

// Colored renders text in a user-chosen hex color. Empty colors fall back
// to the foreground color.
func Colored(hex, text string) string {
	if hex == "" {
		return StyleFg.Render(text)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(text)
}

// Swatch renders a small block in the given color.
func Swatch(hex string) string {
	return Colored(hex, "■")
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

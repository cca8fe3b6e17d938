package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplanner/internal/domain"
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

// SeverityStyle returns the style used for an issue of the given severity.
func SeverityStyle(s domain.Severity) lipgloss.Style {
	if s == domain.SeverityError {
		return StyleRed
	}
	return StyleYellow
}

// StatusPill returns a colored indicator for a study session status.
func StatusPill(status domain.SessionStatus) string {
	switch status {
	case domain.StatusPending:
		return StyleBlue.Render("○ Pending")
	case domain.StatusInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.StatusCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.StatusMissed:
		return StyleRed.Render("✖ Missed")
	case domain.StatusSkipped:
		return StyleDim.Render("⊘ Skipped")
	default:
		return StyleDim.Render(string(status))
	}
}

// ModeBadge labels how a plan was produced.
func ModeBadge(mode domain.GenerationMode) string {
	if mode == domain.ModeAIGenerated {
		return StylePurple.Render("◆ generated")
	}
	return StyleBlue.Render("◇ manual")
}

// ScoreStyle colors a 0-100 score.
func ScoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return StyleGreen
	case score >= 60:
		return StyleYellow
	default:
		return StyleRed
	}
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

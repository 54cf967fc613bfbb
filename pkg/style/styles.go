package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)
)

// Tree styles
var (
	DirStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	FileStyle = lipgloss.NewStyle()

	SelectedStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	ExcludedStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Strikethrough(true)
)

// Indicator glyphs. Plain output uses the same glyphs unstyled.
const (
	SelectedGlyph = "✓"
	ExcludedGlyph = "✗"
	WarningGlyph  = "!"
)

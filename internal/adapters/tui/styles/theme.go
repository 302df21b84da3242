package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Gradient ends for the import progress bar
	GradientStart = "#7C3AED"
	GradientEnd   = "#10B981"

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(White)

	Value = lipgloss.NewStyle().
		Foreground(White).
		Bold(true)

	// Layer listing
	LayerPath = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")) // Blue

	LayerKind = lipgloss.NewStyle().
			Foreground(Muted)

	Duplicate = lipgloss.NewStyle().
			Foreground(Warning)

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Skipped = lipgloss.NewStyle().
		Foreground(Warning)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

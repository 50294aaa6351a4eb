package report

import "charm.land/lipgloss/v2"

// Color palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	Success = lipgloss.Color("#22C55E") // Green
	Error   = lipgloss.Color("#F43F5E") // Rose
	TextDim = lipgloss.Color("#94A3B8") // Slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	passStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Success)

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Error)

	ruleStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)
)

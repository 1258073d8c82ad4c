package cli

import "github.com/charmbracelet/lipgloss"

// Terminal color palette shared by all commands.
var (
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle    = lipgloss.NewStyle().Foreground(colorYellow)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorDim)
	borderStyle  = lipgloss.NewStyle().Foreground(colorDim)
	roundedTable = lipgloss.RoundedBorder()
)

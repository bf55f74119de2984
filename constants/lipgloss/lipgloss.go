package lipgloss

import "github.com/charmbracelet/lipgloss"

// Shared terminal styles for lw-compiler output.
var (
	Red     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	Green   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	Yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	BlueSky = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	Cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	Gray    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	Info = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)

	// BoxStyle wraps help and summary blocks.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)
)

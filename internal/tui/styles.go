package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	mutedStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	trackNameStyle     = lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("15"))
	selectedTrackStyle = trackNameStyle.Foreground(lipgloss.Color("3")).Bold(true)
	clipStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	selectedClipStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3"))
	lockedClipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	playheadStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	panelStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
)

// internal/tui/styles.go

package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Padding(0, 1)
	styleHeader    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleItem      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	styleOption    = lipgloss.NewStyle().PaddingLeft(2)
	styleKey       = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleCorrect   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true) // Green
	styleIncorrect = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)  // Red
	styleSubtle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHeart     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleRecord    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Padding(0, 1)
	stylePanel     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginTop(1)
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

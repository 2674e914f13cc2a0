package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Focused     lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	Record      lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() *Styles {
	primary := lipgloss.Color("#7C3AED")
	success := lipgloss.Color("#A6E3A1")
	muted := lipgloss.Color("#6C7086")
	danger := lipgloss.Color("#F38BA8")

	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1),
		Label:       lipgloss.NewStyle().Width(22),
		Focused:     lipgloss.NewStyle().Width(22).Foreground(primary).Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(muted),
		Error:       lipgloss.NewStyle().Foreground(danger).Bold(true),
		MetricLabel: lipgloss.NewStyle().Foreground(muted),
		MetricValue: lipgloss.NewStyle().Foreground(success).Bold(true),
		Record:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
	}
}

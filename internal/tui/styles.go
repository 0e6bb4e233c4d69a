package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette matches the website's teal theme.
var (
	Primary = lipgloss.Color("#0D9488")
	Danger  = lipgloss.Color("#DC2626")
	Success = lipgloss.Color("#059669")
	Muted   = lipgloss.Color("#64748B")
)

// Styles renders the terminal output.
type Styles struct {
	Title   lipgloss.Style
	Step    lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Hint    lipgloss.Style
}

// DefaultStyles returns the colored styles.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1),
		Step:    lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Error:   lipgloss.NewStyle().Foreground(Danger),
		Success: lipgloss.NewStyle().Bold(true).Foreground(Success),
		Hint:    lipgloss.NewStyle().Italic(true).Foreground(Muted),
	}
}

// PlainStyles returns styles that add no escape codes.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:   plain,
		Step:    plain,
		Error:   plain,
		Success: plain,
		Hint:    plain,
	}
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the pager and blocks until the user quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

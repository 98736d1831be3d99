package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Document is the rendered dump shown by the pager.
type Document struct {
	Title    string   // usually the source name
	Subtitle string   // range and size summary
	Lines    []string // rendered dump lines, without trailing newlines
}

// Model is the Bubbletea model for the pager.
type Model struct {
	doc Document

	viewport viewport.Model
	keys     KeyMap
	help     help.Model
	styles   Styles

	ready  bool
	width  int
	height int
}

// NewModel creates a pager over doc. The viewport is sized on the first
// WindowSizeMsg.
func NewModel(doc Document) Model {
	keys := DefaultKeyMap()

	vp := viewport.New(0, 0)
	vp.KeyMap.Up = keys.Up
	vp.KeyMap.Down = keys.Down
	vp.KeyMap.PageUp = keys.PageUp
	vp.KeyMap.PageDown = keys.PageDown
	vp.SetContent(strings.Join(doc.Lines, "\n"))

	return Model{
		doc:      doc,
		viewport: vp,
		keys:     keys,
		help:     help.New(),
		styles:   DefaultStyles(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.resize()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// resize gives the viewport whatever the header and footer leave over.
func (m *Model) resize() {
	if !m.ready {
		return
	}
	chrome := lipgloss.Height(m.headerView()) + lipgloss.Height(m.footerView())
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-chrome, 1)
}

// View renders the pager.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.viewport.View(), m.footerView())
}

func (m Model) headerView() string {
	title := m.styles.Title.Render(m.doc.Title)
	bar := m.styles.TitleBar
	if w := m.width - lipgloss.Width(title); w > 0 {
		bar = bar.Width(w)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, bar.Render(m.styles.Subtitle.Render(m.doc.Subtitle)))
}

func (m Model) footerView() string {
	status := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.StatusKey.Render("lines"),
		m.styles.StatusValue.Render(fmt.Sprintf("%d", len(m.doc.Lines))),
		m.styles.StatusKey.Render("pos"),
		m.styles.StatusValue.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)),
	)
	if len(m.doc.Lines) == 0 {
		status = m.styles.Muted.Render("(empty input)")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.StatusBar.Render(status),
		m.styles.Help.Render(m.help.View(m.keys)),
	)
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridloop/internal/registry"
	"github.com/vovakirdan/gridloop/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the simulation sidebar
	sidebarWidth       = 20  // Width of the simulation sidebar
	maxRuns            = 100 // Max runs to load
)

// HistoryKeyMap defines the key bindings for the run history browser.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextSim key.Binding
	PrevSim key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSim, k.PrevSim, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSim, k.PrevSim},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextSim: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next sim"),
		),
		PrevSim: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev sim"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// historyTab is one entry of the simulation selector. The empty ID shows
// every run.
type historyTab struct {
	ID    string
	Title string
}

// HistoryModel is the Bubble Tea model for browsing recorded runs.
type HistoryModel struct {
	tabs        []historyTab
	cursor      int
	store       *storage.Store
	runs        []storage.Run
	err         error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history browser starting at simID ("" for all).
func NewHistoryModel(store *storage.Store, simID string, width, height int) *HistoryModel {
	tabs := []historyTab{{ID: "", Title: "All"}}
	for _, s := range registry.List() {
		tabs = append(tabs, historyTab{ID: s.ID, Title: s.Title})
	}

	h := help.New()
	h.ShowAll = false

	m := &HistoryModel{
		tabs:        tabs,
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, t := range tabs {
		if t.ID == simID {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table sized to the terminal.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Sim", Width: 10},
		{Title: "Host", Width: 9},
		{Title: "Ticks", Width: 8},
		{Title: "Duration", Width: 10},
		{Title: "FPS", Width: 6},
		{Title: "Date", Width: 13},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Selected returns the simulation ID of the current tab.
func (m *HistoryModel) Selected() string {
	return m.tabs[m.cursor].ID
}

// Runs returns the runs currently shown.
func (m *HistoryModel) Runs() []storage.Run {
	return m.runs
}

// loadRuns loads runs for the current tab.
func (m *HistoryModel) loadRuns() {
	m.runs, m.err = nil, nil
	if m.store != nil {
		m.runs, m.err = m.store.RecentRuns(m.Selected(), maxRuns)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			r.SimID,
			r.Host,
			fmt.Sprintf("%d", r.Ticks),
			r.Duration.Round(10 * time.Millisecond).String(),
			fmt.Sprintf("%.1f", r.FPS()),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m *HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextSim):
			m.cursor = (m.cursor + 1) % len(m.tabs)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevSim):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.tabs) - 1
			}
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m *HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("RUN HISTORY - %s", m.tabs[m.cursor].Title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the table with a simulation sidebar.
func (m *HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Simulations\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, t := range m.tabs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(t.Title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders simulation tabs above the table.
func (m *HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		name := truncate(t.Title, 10)
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.tabs[m.cursor].Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m *HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render("Cannot read run history:\n" + m.err.Error())
	}
	if len(m.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nRun 'gridloop play <sim>' to add one.")
	}
	return m.table.View()
}

// RunHistory runs the history browser until the user quits.
func RunHistory(store *storage.Store, simID string, width, height int) error {
	_, err := tea.NewProgram(NewHistoryModel(store, simID, width, height), tea.WithAltScreen()).Run()
	return err
}

// centerText pads text on the left to center it in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// truncate shortens s to at most n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

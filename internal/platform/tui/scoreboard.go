package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetris-arcade/internal/registry"
	"github.com/vovakirdan/tetris-arcade/internal/storage"
)

const maxScores = 100 // Max runs to load per tab

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	tableFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	statsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Help key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Help, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Prev},
		{k.Help, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next board")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev board")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// scoreTab is one filter shown on the scoreboard.
type scoreTab struct {
	Title  string
	Format string // Board format the runs are filtered by; "" for all
}

// scoreTabs returns an "All boards" tab followed by one per registered board.
func scoreTabs() []scoreTab {
	tabs := []scoreTab{{Title: "All boards"}}
	for _, g := range registry.List() {
		tabs = append(tabs, scoreTab{Title: g.Title, Format: g.Format})
	}
	return tabs
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	tabs      []scoreTab
	tab       int
	store     *storage.Store
	runs      []storage.RunRecord
	stats     *storage.FormatStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a scoreboard showing the best runs per board.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		tabs:   scoreTabs(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

// newTable builds the runs table sized to the window.
func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 9},
		{Title: "Level", Width: 5},
		{Title: "Lines", Width: 5},
		{Title: "Combo", Width: 5},
		{Title: "Coffee", Width: 6},
		{Title: "Board", Width: 8},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)), // Title, tabs, stats and help around it
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

// load fetches runs and stats for the current tab.
func (m *ScoreboardModel) load() {
	m.runs, m.stats = nil, nil
	if m.store != nil && len(m.tabs) > 0 {
		format := m.tabs[m.tab].Format
		if runs, err := m.store.TopRuns(format, maxScores); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.Stats(format); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Level),
			strconv.Itoa(r.Lines),
			strconv.Itoa(r.MaxCombo),
			strconv.Itoa(r.CoffeeBonus),
			r.Format,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.switchTab(1)
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.switchTab(-1)
			return m, nil

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// switchTab moves the tab cursor by delta, wrapping around.
func (m *ScoreboardModel) switchTab(delta int) {
	if len(m.tabs) == 0 {
		return
	}
	m.tab = (m.tab + delta + len(m.tabs)) % len(m.tabs)
	m.load()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteByte('\n')
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabLine(), m.width))
	b.WriteString("\n\n")

	body := emptyStyle.Render("No runs recorded yet.\nPlay a game to set a high score!")
	if len(m.runs) > 0 {
		body = m.table.View()
	}
	b.WriteString(centerText(tableFrameStyle.Render(body), m.width))
	b.WriteByte('\n')

	if line := statsLine(m.stats); line != "" {
		b.WriteString(centerText(statsStyle.Render(line), m.width))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

// tabLine renders the board tabs, or just the current one with arrows when
// they do not fit.
func (m ScoreboardModel) tabLine() string {
	if len(m.tabs) == 0 {
		return ""
	}
	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(t.Title)
		} else {
			tabs[i] = tabStyle.Render(t.Title)
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = activeTabStyle.Render("< " + m.tabs[m.tab].Title + " >")
	}
	return line
}

// statsLine summarizes the aggregated runs of a tab.
func statsLine(st *storage.FormatStats) string {
	if st == nil || st.Runs == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs  ·  avg %.0f  ·  %d lines  ·  best level %d  ·  best combo %d",
		st.Runs, st.AvgScore, st.TotalLines, st.BestLevel, st.BestCombo)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}

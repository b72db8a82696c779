package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetris-arcade/internal/core"
	"github.com/vovakirdan/tetris-arcade/internal/registry"
	"github.com/vovakirdan/tetris-arcade/internal/storage"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// controlsLegend is the in-game key reference shown under the board list.
var controlsLegend = []string{
	"←/→ move   ↓ soft drop   ↑ rotate   space hard drop",
	"1 buy rainbow   2 buy AI block   3/4 use them   c cycle rainbow",
	"p pause   g board format (game over)   r restart   esc menu",
}

// MenuItem represents a selectable board variant in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Format string
	Best   *storage.RunRecord // Best recorded run on this format, nil when none
}

// MenuModel is the Bubble Tea model for the board picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a board
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a menu listing every registered board with its best run.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title, Format: g.Format}
		if store != nil {
			if runs, err := store.TopRuns(g.Format, 1); err == nil && len(runs) > 0 {
				item.Best = &runs[0]
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)

	case MenuActionDown:
		m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	line := func(s string) {
		b.WriteString(centerText(s, m.width))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	line(menuTitleStyle.Render("T E T R I S"))
	b.WriteByte('\n')
	line(menuDimStyle.Render("Select a board"))
	b.WriteByte('\n')

	for i, item := range m.items {
		label := "  " + item.Title
		if i == m.cursor {
			label = menuCursor.Render("> " + item.Title)
		}
		line(label + menuDimStyle.Render(bestSummary(item.Best)))
	}

	b.WriteByte('\n')
	for _, l := range controlsLegend {
		line(menuDimStyle.Render(l))
	}
	b.WriteByte('\n')
	line("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit")

	return b.String()
}

// bestSummary formats a best run for a menu line.
func bestSummary(run *storage.RunRecord) string {
	if run == nil {
		return ""
	}
	return fmt.Sprintf("  best %d (lvl %d, %d lines)", run.Score, run.Level, run.Lines)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers a possibly styled, possibly multi-line block.
func centerText(text string, width int) string {
	if lipgloss.Width(text) >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}

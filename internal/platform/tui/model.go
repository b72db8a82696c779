package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris-arcade/internal/core"
	"github.com/vovakirdan/tetris-arcade/internal/registry"
	"github.com/vovakirdan/tetris-arcade/internal/storage"
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	embedded   bool // Owned by a SessionModel; Back returns to its menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the run has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the run and the tick loop. The game state is picked up on
// the first tick.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if err := m.saveScreenshot(); err != nil {
			log.Warn("screenshot failed", "err", err)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		// Back leaves a finished or paused game; otherwise it pauses.
		if !m.gameState.GameOver && !m.gameState.Paused {
			m.inputFrame.Set(core.ActionPause)
			return m, nil
		}
		m.backToMenu = true
		if !m.embedded {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case action == core.ActionRestart && !m.gameState.GameOver:
		return m, nil

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
// The board has a fixed size, so the run continues; Render falls back to a
// "too small" notice when the terminal cannot fit it.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick runs one simulation step. A restart requested at game over
// starts a fresh run with a new seed instead.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	defer m.inputFrame.Clear()

	if m.gameState.GameOver && m.inputFrame.Has(core.ActionRestart) {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		return m, tickCmd(m.config.TickRate)
	}

	m.gameState = m.game.Step(m.inputFrame).State

	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		if err := saveRun(m.store, m.game, m.gameState.Score); err != nil {
			log.Warn("run not saved", "game", m.game.ID(), "err", err)
		}
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun persists a finished run. Games that report RunStats contribute
// their counters; others are stored with the score alone on the default
// format.
func saveRun(store *storage.Store, game registry.Game, score int) error {
	if store == nil {
		return nil
	}
	run := storage.RunRecord{GameID: game.ID(), Score: score, Level: 1}
	if reporter, ok := game.(core.StatsReporter); ok {
		stats := reporter.RunStats()
		run.Level = stats.Level
		run.Lines = stats.Lines
		run.MaxCombo = stats.MaxCombo
		run.CoffeeBonus = stats.CoffeeBonus
		run.Format = stats.Format
	}
	_, err := store.SaveRun(run)
	return err
}

// saveScreenshot writes the current frame, without colors, to
// ~/.tetris/screenshots.
func (m *Model) saveScreenshot() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	m.game.Render(m.screen)
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	return os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View draws the game into the screen buffer and styles it.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game in the alternate screen until the player quits or
// backs out.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	_, err := tea.NewProgram(NewModel(game, store, cfg), tea.WithAltScreen()).Run()
	return err
}

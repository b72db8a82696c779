package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	s, ok := next.(SessionModel)
	require.True(t, ok)
	return s, cmd
}

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	return NewSessionModel(openTestStore(t), menuConfig(), "alice", log.New(io.Discard))
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := newTestSession(t)

	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.gameModel)
	assert.True(t, m.gameModel.embedded)
	assert.Equal(t, "tetris", m.gameModel.game.ID())
	assert.NotNil(t, cmd)

	m, _ = updateSession(t, m, TickMsg{})
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = updateSession(t, m, TickMsg{})
	require.NotNil(t, m.gameModel)
	require.True(t, m.gameModel.gameState.Paused)

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.gameModel)
	assert.False(t, m.quitting)
	assert.Contains(t, ansi.Strip(m.View()), "Select a board")
}

func TestSessionScoreboardAndBack(t *testing.T) {
	m := newTestSession(t)

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, m.scoreboard)
	assert.Contains(t, ansi.Strip(m.View()), "HIGH SCORES")

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.scoreboard)
	assert.False(t, m.menu.WantsScoreboard())
}

func TestSessionQuitFromGame(t *testing.T) {
	m := newTestSession(t)

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := updateSession(t, m, runeKey('q'))
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestSessionResizeReachesGame(t *testing.T) {
	m := newTestSession(t)

	m, _ = updateSession(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})
	assert.Equal(t, 120, m.config.ScreenW)

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.gameModel)
	assert.Equal(t, 120, m.gameModel.screen.Width())
}

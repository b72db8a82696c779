package web

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetris-arcade/internal/config"
	"github.com/vovakirdan/tetris-arcade/internal/storage"
)

func testRules() config.TetrisConfig {
	cfg := config.DefaultTetrisConfig()
	cfg.Timing.AutoFallMs = 1000
	cfg.Spawn.ColorCleaner.Chance = 0
	cfg.Spawn.Nuclear.Chance = 0
	cfg.Spawn.Rarity.Chance = 0
	cfg.Spawn.Special.Chance = 0
	cfg.Spawn.Advanced.Step = 0
	return cfg
}

func newTestManager(t *testing.T, store *storage.Store) *Manager {
	t.Helper()
	m := NewManager(ManagerConfig{
		Rules:  testRules(),
		Store:  store,
		Logger: log.New(io.Discard),
		Seed:   func() int64 { return 7 },
	})
	t.Cleanup(m.Close)
	return m
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "web.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestManagerCreateIsIdle(t *testing.T) {
	m := newTestManager(t, nil)

	id, snap := m.Create(config.FormatWide)
	require.NotEmpty(t, id)
	assert.Equal(t, 1, m.Len())
	assert.True(t, snap.GameOver)
	assert.Nil(t, snap.Current)
	assert.Equal(t, "wide", snap.Format)
	assert.Equal(t, 20, snap.Width)
	assert.Equal(t, 40, snap.Height)
}

func TestManagerCommands(t *testing.T) {
	m := newTestManager(t, nil)
	id, _ := m.Create(config.FormatStandard)

	applied, snap, err := m.Command(id, "start")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.False(t, snap.GameOver)
	require.NotNil(t, snap.Current)

	row := snap.Current.Row
	applied, snap, err = m.Command(id, "down")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, row+1, snap.Current.Row)

	applied, snap, err = m.Command(id, "pause")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, snap.Paused)

	applied, _, err = m.Command(id, "left")
	require.NoError(t, err)
	assert.False(t, applied, "moves are ignored while paused")

	applied, _, err = m.Command(id, "buy-rainbow")
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestManagerErrors(t *testing.T) {
	m := newTestManager(t, nil)
	id, _ := m.Create(config.FormatStandard)

	_, _, err := m.Command(id, "teleport")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, _, err = m.Command("missing", "start")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = m.Snapshot("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = m.Events("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, m.Delete(id))
	assert.ErrorIs(t, m.Delete(id), ErrSessionNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestManagerSetFormatOnlyWhenGameOver(t *testing.T) {
	m := newTestManager(t, nil)
	id, _ := m.Create(config.FormatStandard)

	applied, snap, err := m.SetFormat(id, config.FormatWide)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 20, snap.Width)

	_, _, err = m.Command(id, "start")
	require.NoError(t, err)
	applied, snap, err = m.SetFormat(id, config.FormatStandard)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, "wide", snap.Format)
}

func TestManagerEventsDrain(t *testing.T) {
	m := newTestManager(t, nil)
	id, _ := m.Create(config.FormatStandard)

	_, _, err := m.Command(id, "start")
	require.NoError(t, err)
	_, _, err = m.Command(id, "rotate")
	require.NoError(t, err)
	_, _, err = m.Command(id, "drop")
	require.NoError(t, err)

	events, err := m.Events(id)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "rotate", events[0].Kind)
	assert.Equal(t, "drop", events[1].Kind)

	events, err = m.Events(id)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestManagerSavesRunOnce(t *testing.T) {
	store := openTestStore(t)
	m := newTestManager(t, store)
	id, _ := m.Create(config.FormatStandard)

	_, _, err := m.Command(id, "start")
	require.NoError(t, err)
	_, _, err = m.Command(id, "drop")
	require.NoError(t, err)
	require.NoError(t, m.Advance(id, time.Second))

	snap, err := m.Snapshot(id)
	require.NoError(t, err)
	require.Equal(t, 10, snap.Score)

	_, _, err = m.Command(id, "reset")
	require.NoError(t, err)
	_, err = m.Snapshot(id)
	require.NoError(t, err)

	runs, err := store.TopRuns("standard", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "tetris", runs[0].GameID)
	assert.Equal(t, 10, runs[0].Score)
	assert.Equal(t, 1, runs[0].Level)
}

func TestManagerDriverAdvancesClock(t *testing.T) {
	m := NewManager(ManagerConfig{
		Rules:    testRules(),
		TickRate: 100,
		Logger:   log.New(io.Discard),
		Seed:     func() int64 { return 7 },
	})
	defer m.Close()

	id, _ := m.Create(config.FormatStandard)
	_, _, err := m.Command(id, "start")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		snap, err := m.Snapshot(id)
		return err == nil && snap.ClockMs > 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCommandNamesSorted(t *testing.T) {
	names := CommandNames()
	assert.Len(t, names, len(commands))
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "use-ai")
}

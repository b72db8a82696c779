package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetris-arcade/internal/core"
	"github.com/vovakirdan/tetris-arcade/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{Seed: 12345, ScreenW: 80, ScreenH: 24, TickRate: 60}
}

func TestRegistered(t *testing.T) {
	for id, title := range map[string]string{"tetris": "Tetris", "tetris_wide": "Tetris (Wide)"} {
		require.True(t, registry.Exists(id), id)
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
		assert.Equal(t, title, g.Title())
	}
}

func TestGameDeterminism(t *testing.T) {
	g1, g2 := New(), New()
	g1.Reset(testRuntime())
	g2.Reset(testRuntime())

	input := core.NewInputFrame()
	for i := range 3000 {
		input.Clear()
		switch i % 90 {
		case 10:
			input.Set(core.ActionLeft)
		case 30:
			input.Set(core.ActionRotate)
		case 50:
			input.Set(core.ActionRight)
		case 70:
			input.Set(core.ActionDrop)
		}
		g1.Step(input)
		g2.Step(input)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	assert.Equal(t, s1.Hash(), s2.Hash())
	assert.Equal(t, s1.Score, s2.Score)
	assert.Equal(t, s1.Board, s2.Board)
}

func TestStepMovesPiece(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	col := g.Snapshot().Current.Col

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	g.Step(in)
	assert.Equal(t, col-1, g.Snapshot().Current.Col)

	in = core.NewInputFrame()
	in.Set(core.ActionPause)
	res := g.Step(in)
	assert.True(t, res.State.Paused)

	in = core.NewInputFrame()
	in.Set(core.ActionRight)
	g.Step(in)
	assert.Equal(t, col-1, g.Snapshot().Current.Col, "moves are ignored while paused")
}

func TestFormatToggleOnlyWhenGameOver(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	in := core.NewInputFrame()
	in.Set(core.ActionFormat)
	g.Step(in)
	assert.Equal(t, "tetris", g.ID())

	g.Session().Reset()
	g.Step(in)
	assert.Equal(t, "tetris_wide", g.ID())
	assert.Equal(t, "Tetris (Wide)", g.Title())

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	res := g.Step(restart)
	assert.False(t, res.State.GameOver)
	snap := g.Snapshot()
	assert.Equal(t, 20, snap.Width)
	assert.Equal(t, 40, snap.Height)
	assert.Equal(t, "wide", g.RunStats().Format)
}

func TestStateBeforeReset(t *testing.T) {
	g := NewWide()
	assert.True(t, g.State().GameOver)
	assert.Equal(t, "wide", g.RunStats().Format)

	var reporter core.StatsReporter = g
	assert.Equal(t, 0, reporter.RunStats().Lines)
}

func TestRenderBoardAndPanel(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "Tetris")
	assert.Contains(t, out, "Score  0")
	assert.Contains(t, out, "Level  1")
	assert.Contains(t, out, "Next")
	assert.Contains(t, out, string(BlockChar))
	assert.NotContains(t, out, "GAME OVER")

	g.Session().Reset()
	g.Render(screen)
	assert.Contains(t, screen.String(), "GAME OVER")
}

func TestRenderColors(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	g.Session().board.Set(19, 0, 5)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	found := false
	for y := range screen.Height() {
		for x := range screen.Width() {
			if c := screen.GetCell(x, y); c.Rune == BlockChar && c.Color == core.ColorRed {
				found = true
			}
		}
	}
	assert.True(t, found, "settled red cell should render in red")
}

func TestRenderTooSmall(t *testing.T) {
	g := NewWide()
	g.Reset(testRuntime())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")
}

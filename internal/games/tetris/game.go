package tetris

import (
	"time"

	"github.com/vovakirdan/tetris-arcade/internal/config"
	"github.com/vovakirdan/tetris-arcade/internal/core"
	"github.com/vovakirdan/tetris-arcade/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
	registry.Register("tetris_wide", func() registry.Game {
		return NewWide()
	})
}

// Game adapts a Session to the platform's fixed-tick game interface.
type Game struct {
	format  config.GridFormat
	session *Session
	sink    EventSink
	runtime core.RuntimeConfig
}

// New creates a tetris game on the standard 10x20 board.
func New() *Game {
	return &Game{format: config.FormatStandard}
}

// NewWide creates a tetris game on the wide 20x40 board.
func NewWide() *Game {
	return &Game{format: config.FormatWide}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.format == config.FormatWide {
		return "tetris_wide"
	}
	return "tetris"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.format == config.FormatWide {
		return "Tetris (Wide)"
	}
	return "Tetris"
}

// SetEventSink attaches a sink that receives the session's events.
func (g *Game) SetEventSink(sink EventSink) {
	g.sink = sink
	if g.session != nil {
		g.session.SetSink(sink)
	}
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// Reset loads the rules and starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.runtime.TickRate <= 0 {
		g.runtime.TickRate = core.DefaultConfig().TickRate
	}

	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTetrisPreset(&cfg, difficultyPreset)
	}
	cfg.Grid.Format = string(g.format)

	g.session = NewSession(cfg, runtime.Seed, g.sink)
	g.session.Start()
}

// Step applies this tick's actions and advances the session clock by one
// tick period.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := g.session
	if s == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && s.GameOver() {
		s.Start()
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionFormat) && s.GameOver() {
		next := config.FormatWide
		if g.format == config.FormatWide {
			next = config.FormatStandard
		}
		if s.SetGridFormat(next) {
			g.format = next
		}
	}
	if in.Has(core.ActionPause) {
		s.Pause()
	}

	if in.Has(core.ActionLeft) {
		s.Move(-1, 0)
	}
	if in.Has(core.ActionRight) {
		s.Move(1, 0)
	}
	if in.Has(core.ActionRotate) {
		s.Rotate()
	}
	if in.Has(core.ActionCycle) {
		s.CycleRainbowShape()
	}
	if in.Has(core.ActionDown) {
		s.SoftDrop()
	}
	if in.Has(core.ActionDrop) {
		s.HardDrop()
	}
	if in.Has(core.ActionBuyRainbow) {
		s.PurchaseRainbowBlock()
	}
	if in.Has(core.ActionBuyAI) {
		s.PurchaseAICustomBlock()
	}
	if in.Has(core.ActionUseRainbow) {
		s.UseRainbowBlock()
	}
	if in.Has(core.ActionUseAI) {
		s.UseAICustomBlock()
	}

	s.Advance(time.Second / time.Duration(g.runtime.TickRate))
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{GameOver: true}
	}
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.GameOver(),
		Paused:   g.session.Paused(),
	}
}

// RunStats returns the details of the current run for persistence.
func (g *Game) RunStats() core.RunStats {
	if g.session == nil {
		return core.RunStats{Format: string(g.format)}
	}
	return g.session.RunStats()
}

// Snapshot returns a detached copy of the session state.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{}
	}
	return g.session.Snapshot()
}

package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tetris-arcade/internal/config"
	"github.com/vovakirdan/tetris-arcade/internal/core"
)

// Scheduler keys for transient flag resets.
const (
	keyClearedLines     = "cleared-lines"
	keySpecialActive    = "special-active"
	keyCoffeeFlash      = "coffee-flash"
	keyLegendaryGravity = "legendary-gravity"
)

// wallKicks are the (col, row) offsets tried after an in-place rotation fails.
var wallKicks = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {-2, 0}, {2, 0}}

// Session owns one game: board, pieces, counters and pending timed effects.
// It is not safe for concurrent use; callers serialize access.
type Session struct {
	cfg    config.TetrisConfig
	format config.GridFormat
	rng    *rand.Rand
	gen    *Generator
	sched  Scheduler
	sink   EventSink

	board   *Board
	current *Piece
	next    *Piece

	score    int
	level    int
	lines    int
	combo    int
	maxCombo int

	rainbowBlocks  int
	aiCustomBlocks int
	coffeeBonus    int

	gameOver bool
	paused   bool

	clearedLines  []int
	specialActive bool
	gravityActive bool
	showCoffee    bool

	fallElapsed time.Duration
}

// NewSession creates a session in the game-over state with an empty board of
// the configured format. A nil sink discards events.
func NewSession(cfg config.TetrisConfig, seed int64, sink EventSink) *Session {
	cfg.Normalize()
	format := config.ParseGridFormat(cfg.Grid.Format)
	w, h := format.Dimensions()
	rng := rand.New(rand.NewSource(seed))

	return &Session{
		cfg:      cfg,
		format:   format,
		rng:      rng,
		gen:      NewGenerator(rng, w, cfg.Spawn),
		sink:     sink,
		board:    NewBoard(w, h),
		level:    1,
		gameOver: true,
	}
}

// SetSink replaces the event sink.
func (s *Session) SetSink(sink EventSink) {
	s.sink = sink
}

// Format returns the current grid format.
func (s *Session) Format() config.GridFormat {
	return s.format
}

// GameOver reports whether the session is idle or finished.
func (s *Session) GameOver() bool { return s.gameOver }

// Paused reports whether the session is paused.
func (s *Session) Paused() bool { return s.paused }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// emit forwards an event to the sink. A failing sink never affects state.
func (s *Session) emit(e Event) {
	if s.sink == nil {
		return
	}
	defer func() { _ = recover() }()
	s.sink.Notify(e)
}

func (s *Session) ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// active reports whether piece commands are accepted.
func (s *Session) active() bool {
	return s.current != nil && !s.gameOver && !s.paused
}

// Start begins a new game: pending timers are cancelled, the board and all
// counters reset and the first two pieces generated at level 1.
func (s *Session) Start() {
	s.sched.CancelAll()
	w, h := s.format.Dimensions()
	s.gen.SetWidth(w)
	s.board = NewBoard(w, h)

	s.score = 0
	s.level = 1
	s.lines = 0
	s.combo = 0
	s.maxCombo = 0
	s.rainbowBlocks = 0
	s.aiCustomBlocks = 0
	s.coffeeBonus = 0

	s.clearedLines = nil
	s.specialActive = false
	s.gravityActive = false
	s.showCoffee = false
	s.fallElapsed = 0

	cur := s.gen.Random(s.level)
	nxt := s.gen.Random(s.level)
	s.current, s.next = &cur, &nxt
	s.gameOver = false
	s.paused = false
}

// Pause toggles the paused flag. It is a no-op while game over.
func (s *Session) Pause() bool {
	if s.gameOver {
		return false
	}
	s.paused = !s.paused
	return true
}

// Reset abandons the game: timers are cancelled, the board emptied and the
// session returns to the game-over state with no pieces.
func (s *Session) Reset() {
	s.sched.CancelAll()
	w, h := s.format.Dimensions()
	s.board = NewBoard(w, h)
	s.current = nil
	s.next = nil
	s.gameOver = true
	s.paused = false
	s.clearedLines = nil
	s.specialActive = false
	s.gravityActive = false
	s.showCoffee = false
	s.fallElapsed = 0
}

// SetGridFormat switches between standard and wide boards. It is only
// honored while the session is game over.
func (s *Session) SetGridFormat(f config.GridFormat) bool {
	if !s.gameOver {
		return false
	}
	f = config.ParseGridFormat(string(f))
	s.format = f
	w, h := f.Dimensions()
	s.gen.SetWidth(w)
	s.board = NewBoard(w, h)
	return true
}

// Move shifts the current piece. A rejected downward move lands the piece;
// the result reports whether the piece moved or landed.
func (s *Session) Move(dx, dy int) bool {
	if !s.active() {
		return false
	}
	moved := s.current.Moved(dx, dy)
	if IsValidMove(s.board, moved) {
		s.current = &moved
		return true
	}
	if dy > 0 {
		s.land()
		return true
	}
	return false
}

// Tick is one auto-fall step.
func (s *Session) Tick() bool {
	return s.Move(0, 1)
}

// SoftDrop moves the piece down one row.
func (s *Session) SoftDrop() bool {
	if !s.active() {
		return false
	}
	s.emit(Event{Kind: EventDrop})
	return s.Move(0, 1)
}

// DropDistance returns how many rows the current piece can fall.
func (s *Session) DropDistance() int {
	if s.current == nil {
		return 0
	}
	d := 0
	for IsValidMove(s.board, s.current.Moved(0, d+1)) {
		d++
	}
	return d
}

// HardDrop moves the piece straight to its resting row. Landing happens on
// the next downward move, as with any other move.
func (s *Session) HardDrop() bool {
	if !s.active() {
		return false
	}
	s.emit(Event{Kind: EventDrop})
	d := s.DropDistance()
	if d == 0 {
		return false
	}
	return s.Move(0, d)
}

// Rotate turns the piece clockwise, trying the fixed wall kicks when the
// in-place rotation collides. A failed rotation leaves the piece unchanged.
func (s *Session) Rotate() bool {
	if !s.active() {
		return false
	}
	defer s.emit(Event{Kind: EventRotate})

	rotated := s.current.WithShape(s.current.Shape.Rotate())
	if IsValidMove(s.board, rotated) {
		s.current = &rotated
		return true
	}
	for _, k := range wallKicks {
		kicked := rotated.Moved(k[0], k[1])
		if IsValidMove(s.board, kicked) {
			s.current = &kicked
			return true
		}
	}
	return false
}

// CycleRainbowShape swaps a rainbow piece's shape for the next catalog
// shape. Shapes missing from the catalog restart the cycle at the first one.
func (s *Session) CycleRainbowShape() bool {
	if !s.active() || s.current.Type != CellRainbow {
		return false
	}
	idx := (catalogIndex(s.current.Shape) + 1) % len(catalog)
	cycled := s.current.WithShape(catalog[idx].Shape.Clone())
	if !IsValidMove(s.board, cycled) {
		return false
	}
	s.current = &cycled
	s.emit(Event{Kind: EventRotate})
	return true
}

// PurchaseRainbowBlock trades score for a rainbow block.
func (s *Session) PurchaseRainbowBlock() bool {
	if s.score < s.cfg.Shop.RainbowPrice {
		return false
	}
	s.score -= s.cfg.Shop.RainbowPrice
	s.rainbowBlocks++
	s.emit(Event{Kind: EventPowerUp})
	return true
}

// PurchaseAICustomBlock trades score for an AI custom block.
func (s *Session) PurchaseAICustomBlock() bool {
	if s.score < s.cfg.Shop.AICustomPrice {
		return false
	}
	s.score -= s.cfg.Shop.AICustomPrice
	s.aiCustomBlocks++
	s.emit(Event{Kind: EventPowerUp})
	return true
}

// UseRainbowBlock retypes the current piece as a rainbow piece without
// changing its shape, position or kind. Kind effects still apply on landing,
// except fire, which needs the fire cell to burn.
func (s *Session) UseRainbowBlock() bool {
	if s.rainbowBlocks <= 0 || !s.active() {
		return false
	}
	p := *s.current
	p.Type = CellRainbow
	s.current = &p
	s.rainbowBlocks--
	s.emit(Event{Kind: EventSpecialBlock})
	return true
}

// UseAICustomBlock replaces the current piece with one shaped for the
// widest gap near the top of the stack and awards a flat bonus.
func (s *Session) UseAICustomBlock() bool {
	if s.aiCustomBlocks <= 0 || s.gameOver || s.paused {
		return false
	}
	p := s.gen.AIOptimized(s.board)
	s.current = &p
	s.aiCustomBlocks--
	s.setSpecialActive()
	s.score += s.cfg.Shop.AICustomBonus
	s.emit(Event{Kind: EventSpecialBlock})
	return true
}

func (s *Session) setSpecialActive() {
	s.specialActive = true
	s.sched.Schedule(keySpecialActive, s.ms(s.cfg.Timing.SpecialActiveMs), func() {
		s.specialActive = false
	})
}

// land resolves the current piece: kind effect, rarity effect, line clear,
// scoring, level, next piece and the game-over check.
func (s *Session) land() {
	p := *s.current
	board := Land(s.board, p)
	effect := p.Effect()

	switch effect {
	case KindNuclear, KindAcid, KindColorCleaner, KindFire, KindAdvanced:
		s.emit(Event{Kind: EventSpecialBlock})
	}

	switch {
	case p.Rarity == RarityNone:
	case effect == KindNeutrino:
		// Announced, but the neutrino pass replaces the board effect.
		s.emit(Event{Kind: EventRarity, Rarity: p.Rarity})
	case !effect.HasOwnEffect():
		s.emit(Event{Kind: EventRarity, Rarity: p.Rarity})
		board = ApplyRarityEffect(board, p, s.rng)

		if p.Rarity == RarityLegendary {
			s.gravityActive = true
			s.sched.Schedule(keyLegendaryGravity, s.ms(s.cfg.Timing.LegendaryGravityDelayMs), func() {
				s.board = ApplyGravity(s.board)
				s.gravityActive = false
			})
			s.emit(Event{Kind: EventSpecialBlock})
		}
	}

	lc := ClearLines(board)
	in := ScoreInput{
		Lines:          lc.Lines,
		Level:          s.level,
		Combo:          s.combo,
		SameColorLines: lc.SameColorLines,
		Piece:          p,
		Wide:           s.format == config.FormatWide,
	}

	coffee := CoffeeBonus(in)
	if coffee > 0 {
		s.coffeeBonus += coffee
		s.showCoffee = true
		s.sched.Schedule(keyCoffeeFlash, s.ms(s.cfg.Timing.CoffeeFlashMs), func() {
			s.showCoffee = false
		})
		s.emit(Event{Kind: EventSpecialBlock})
	}

	if lc.Lines > 0 {
		s.emit(Event{Kind: EventLineClear, Lines: lc.Lines})
		if s.combo > 0 {
			s.emit(Event{Kind: EventCombo, Combo: s.combo})
		}
		s.clearedLines = lc.Indices
		s.sched.Schedule(keyClearedLines, s.ms(s.cfg.Timing.ClearedLineFlashMs), func() {
			s.clearedLines = nil
		})
	}

	s.board = lc.Board
	s.lines += lc.Lines
	if lc.Lines > 0 {
		s.combo++
		s.maxCombo = max(s.maxCombo, s.combo)
	} else {
		s.combo = 0
	}

	points := Score(in)
	s.score += points + coffee
	if HasSpecialModifier(in) || coffee > 0 {
		s.emit(Event{Kind: EventSpecialBlock})
	} else if points > 100 {
		s.emit(Event{Kind: EventScore, Points: points})
	}

	if effect == KindFire && s.cfg.Effects.ContinuousBurn {
		s.scheduleBurn(p.Row, p.Col, p.Target, s.cfg.Timing.FireBurnCount)
	}

	s.level = LevelFor(s.lines)
	nxt, rule := s.gen.Next(s.level)
	s.sched.CancelKey(keySpecialActive)
	s.specialActive = rule != ""
	if rule == RuleRarity {
		s.emit(Event{Kind: EventSpecialBlock})
	}

	s.current, s.next = s.next, &nxt
	s.fallElapsed = 0

	if s.current == nil || !IsValidMove(s.board, *s.current) {
		s.gameOver = true
		s.combo = 0
		s.emit(Event{Kind: EventGameOver})
	}
}

// scheduleBurn queues the remaining continuous burns of a fire block. Each
// burn acts on the board as it is when the timer fires.
func (s *Session) scheduleBurn(row, col int, color Cell, remaining int) {
	if remaining <= 0 {
		return
	}
	s.sched.Schedule("", s.ms(s.cfg.Timing.FireBurnIntervalMs), func() {
		if b, ok := BurnNearest(s.board, row, col, color, ContinuousBurnRadius); ok {
			s.board = b
		}
		s.scheduleBurn(row, col, color, remaining-1)
	})
}

// Advance moves the session clock forward. While running, every
// auto_fall_ms of elapsed time performs one Tick, interleaved in time order
// with scheduled effects. Nothing advances while paused; after game over
// only the scheduled effects keep running.
func (s *Session) Advance(dt time.Duration) {
	if s.paused || dt <= 0 {
		return
	}
	fall := s.ms(s.cfg.Timing.AutoFallMs)
	for dt > 0 {
		if s.gameOver || s.current == nil {
			s.sched.Advance(dt)
			return
		}
		until := max(fall-s.fallElapsed, 0)
		if dt < until {
			s.sched.Advance(dt)
			s.fallElapsed += dt
			return
		}
		s.sched.Advance(until)
		dt -= until
		s.fallElapsed = 0
		if s.paused {
			return
		}
		s.Tick()
	}
}

// RunStats returns the counters persisted when a run ends.
func (s *Session) RunStats() core.RunStats {
	return core.RunStats{
		Level:       s.level,
		Lines:       s.lines,
		MaxCombo:    s.maxCombo,
		CoffeeBonus: s.coffeeBonus,
		Format:      string(s.format),
	}
}

package web

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tetris-arcade/internal/config"
	"github.com/vovakirdan/tetris-arcade/internal/games/tetris"
	"github.com/vovakirdan/tetris-arcade/internal/storage"
)

// eventBufferSize caps the events kept for a client that never polls.
const eventBufferSize = 256

var (
	// ErrSessionNotFound is returned for an unknown session id.
	ErrSessionNotFound = errors.New("web: session not found")
	// ErrUnknownCommand is returned for a command name outside the command table.
	ErrUnknownCommand = errors.New("web: unknown command")
)

// commands maps command names to session operations.
var commands = map[string]func(*tetris.Session) bool{
	"start":       func(s *tetris.Session) bool { s.Start(); return true },
	"pause":       (*tetris.Session).Pause,
	"reset":       func(s *tetris.Session) bool { s.Reset(); return true },
	"left":        func(s *tetris.Session) bool { return s.Move(-1, 0) },
	"right":       func(s *tetris.Session) bool { return s.Move(1, 0) },
	"down":        (*tetris.Session).SoftDrop,
	"rotate":      (*tetris.Session).Rotate,
	"drop":        (*tetris.Session).HardDrop,
	"cycle":       (*tetris.Session).CycleRainbowShape,
	"buy-rainbow": (*tetris.Session).PurchaseRainbowBlock,
	"buy-ai":      (*tetris.Session).PurchaseAICustomBlock,
	"use-rainbow": (*tetris.Session).UseRainbowBlock,
	"use-ai":      (*tetris.Session).UseAICustomBlock,
}

// CommandNames returns the accepted command names, sorted.
func CommandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EventView is the JSON form of an engine event.
type EventView struct {
	Kind   string `json:"kind"`
	Rarity string `json:"rarity,omitempty"`
	Lines  int    `json:"lines,omitempty"`
	Combo  int    `json:"combo,omitempty"`
	Points int    `json:"points,omitempty"`
}

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	Rules    config.TetrisConfig
	TickRate int // Driver ticks per second; 0 disables the driver goroutines
	Store    *storage.Store
	Logger   *log.Logger
	Seed     func() int64 // Seed source for new sessions (default: current time)
}

// Manager owns the HTTP game sessions. A session is single-threaded, so
// every access, including its driver goroutine, goes through the session mutex.
type Manager struct {
	cfg ManagerConfig

	mu       sync.RWMutex
	sessions map[string]*gameSession
}

// gameSession is one engine session plus its event buffer and driver.
type gameSession struct {
	mu      sync.Mutex
	id      string
	session *tetris.Session
	events  *tetris.Recorder
	saved   bool // Run persisted for the current game over
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewManager creates an empty session manager.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Seed == nil {
		cfg.Seed = func() int64 { return time.Now().UnixNano() }
	}
	return &Manager{cfg: cfg, sessions: make(map[string]*gameSession)}
}

// Create starts a new idle session on the given board format and returns
// its id and first snapshot. The client sends "start" to begin play.
func (m *Manager) Create(format config.GridFormat) (string, tetris.Snapshot) {
	id := uuid.NewString()
	rules := m.cfg.Rules
	rules.Grid.Format = string(format)

	rec := tetris.NewRecorder(eventBufferSize)
	sink := tetris.MultiSink{rec, tetris.NewLogSink(m.cfg.Logger.With("session", id))}
	gs := &gameSession{
		id:      id,
		session: tetris.NewSession(rules, m.cfg.Seed(), sink),
		events:  rec,
		done:    make(chan struct{}),
	}

	if m.cfg.TickRate > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		gs.cancel = cancel
		go m.drive(ctx, gs)
	} else {
		close(gs.done)
	}

	m.mu.Lock()
	m.sessions[id] = gs
	m.mu.Unlock()

	m.cfg.Logger.Info("session created", "session", id, "format", format)
	return id, gs.session.Snapshot()
}

// get looks up a session by id.
func (m *Manager) get(id string) (*gameSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	gs, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return gs, nil
}

// with runs fn with the session locked, then persists a finished run.
func (m *Manager) with(id string, fn func(s *tetris.Session)) error {
	gs, err := m.get(id)
	if err != nil {
		return err
	}
	gs.mu.Lock()
	defer gs.mu.Unlock()
	fn(gs.session)
	m.persist(gs)
	return nil
}

// Snapshot returns the current state of a session.
func (m *Manager) Snapshot(id string) (tetris.Snapshot, error) {
	var snap tetris.Snapshot
	err := m.with(id, func(s *tetris.Session) { snap = s.Snapshot() })
	return snap, err
}

// Command applies a named command and reports whether it changed anything.
func (m *Manager) Command(id, name string) (bool, tetris.Snapshot, error) {
	op, ok := commands[name]
	if !ok {
		return false, tetris.Snapshot{}, ErrUnknownCommand
	}
	var applied bool
	var snap tetris.Snapshot
	err := m.with(id, func(s *tetris.Session) {
		applied = op(s)
		snap = s.Snapshot()
	})
	return applied, snap, err
}

// SetFormat switches the board format of a session that is game over.
func (m *Manager) SetFormat(id string, format config.GridFormat) (bool, tetris.Snapshot, error) {
	var applied bool
	var snap tetris.Snapshot
	err := m.with(id, func(s *tetris.Session) {
		applied = s.SetGridFormat(format)
		snap = s.Snapshot()
	})
	return applied, snap, err
}

// Advance moves a session clock forward outside of its driver.
func (m *Manager) Advance(id string, dt time.Duration) error {
	return m.with(id, func(s *tetris.Session) { s.Advance(dt) })
}

// Events drains the buffered events of a session.
func (m *Manager) Events(id string) ([]EventView, error) {
	gs, err := m.get(id)
	if err != nil {
		return nil, err
	}
	drained := gs.events.Drain()
	views := make([]EventView, len(drained))
	for i, e := range drained {
		views[i] = EventView{
			Kind:   e.Kind.String(),
			Rarity: e.Rarity.String(),
			Lines:  e.Lines,
			Combo:  e.Combo,
			Points: e.Points,
		}
	}
	return views, nil
}

// Delete stops and removes a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	gs, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	gs.stop()
	m.cfg.Logger.Info("session deleted", "session", id)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops every session.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*gameSession)
	m.mu.Unlock()
	for _, gs := range sessions {
		gs.stop()
	}
}

// stop cancels the driver and waits for it to exit.
func (gs *gameSession) stop() {
	if gs.cancel != nil {
		gs.cancel()
	}
	<-gs.done
}

// drive advances the session clock in real time until ctx is cancelled.
func (m *Manager) drive(ctx context.Context, gs *gameSession) {
	defer close(gs.done)

	ticker := time.NewTicker(time.Second / time.Duration(m.cfg.TickRate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			gs.mu.Lock()
			gs.session.Advance(now.Sub(last))
			m.persist(gs)
			gs.mu.Unlock()
			last = now
		}
	}
}

// persist saves a finished run once per game over. Caller holds gs.mu.
func (m *Manager) persist(gs *gameSession) {
	s := gs.session
	if !s.GameOver() {
		gs.saved = false
		return
	}
	if gs.saved || s.Score() == 0 {
		return
	}
	gs.saved = true
	if m.cfg.Store == nil {
		return
	}

	stats := s.RunStats()
	gameID := "tetris"
	if stats.Format == string(config.FormatWide) {
		gameID = "tetris_wide"
	}
	_, err := m.cfg.Store.SaveRun(storage.RunRecord{
		GameID:      gameID,
		Score:       s.Score(),
		Level:       stats.Level,
		Lines:       stats.Lines,
		MaxCombo:    stats.MaxCombo,
		CoffeeBonus: stats.CoffeeBonus,
		Format:      stats.Format,
	})
	if err != nil {
		m.cfg.Logger.Warn("could not save run", "session", gs.id, "error", err)
	}
}

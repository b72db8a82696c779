package tetris

import (
	"sync"

	"github.com/charmbracelet/log"
)

// EventKind identifies a notification for sound or feedback collaborators.
type EventKind int

const (
	EventDrop EventKind = iota
	EventRotate
	EventLineClear
	EventCombo
	EventScore
	EventGameOver
	EventPowerUp
	EventSpecialBlock
	EventRarity
)

// String returns the wire name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventDrop:
		return "drop"
	case EventRotate:
		return "rotate"
	case EventLineClear:
		return "line-clear"
	case EventCombo:
		return "combo"
	case EventScore:
		return "score"
	case EventGameOver:
		return "game-over"
	case EventPowerUp:
		return "power-up"
	case EventSpecialBlock:
		return "special-block"
	case EventRarity:
		return "rarity"
	default:
		return "unknown"
	}
}

// Event is a best-effort notification emitted by a session.
type Event struct {
	Kind   EventKind
	Rarity Rarity // set for EventRarity
	Lines  int    // set for EventLineClear
	Combo  int    // set for EventCombo
	Points int    // set for EventScore
}

// EventSink receives session events. Implementations must not call back
// into the session that notified them.
type EventSink interface {
	Notify(Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// Notify calls f(e).
func (f EventSinkFunc) Notify(e Event) { f(e) }

// MultiSink fans an event out to several sinks.
type MultiSink []EventSink

// Notify forwards e to every sink.
func (m MultiSink) Notify(e Event) {
	for _, s := range m {
		if s != nil {
			s.Notify(e)
		}
	}
}

// Recorder buffers events until drained. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	limit  int
	events []Event
}

// NewRecorder creates a recorder keeping at most limit events (0 = unbounded).
// When full the oldest events are dropped.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Notify appends e to the buffer.
func (r *Recorder) Notify(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if r.limit > 0 && len(r.events) > r.limit {
		r.events = r.events[len(r.events)-r.limit:]
	}
}

// Drain returns the buffered events and empties the buffer.
func (r *Recorder) Drain() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}

// Len returns the number of buffered events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// LogSink writes events to a structured logger at debug level.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink logging through logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Notify logs the event with its payload fields.
func (s *LogSink) Notify(e Event) {
	kv := []interface{}{"event", e.Kind.String()}
	switch e.Kind {
	case EventRarity:
		kv = append(kv, "rarity", e.Rarity.String())
	case EventLineClear:
		kv = append(kv, "lines", e.Lines)
	case EventCombo:
		kv = append(kv, "combo", e.Combo)
	case EventScore:
		kv = append(kv, "points", e.Points)
	}
	s.logger.Debug("tetris event", kv...)
}

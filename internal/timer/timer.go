// Package timer implements the study countdown as a state machine.
//
// The engine never schedules anything itself. A driver (the TUI's tea.Tick
// loop or Run) calls Tick once per second with the generation returned by
// Start. Pause, Reset, ChangeMode and completion bump the generation, so a
// tick that was already queued when the countdown was cancelled is ignored
// instead of decrementing the next mode's counter.
//
// An Engine is not safe for concurrent use.
package timer

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Mode is a countdown phase
type Mode int

const (
	Study Mode = iota
	ShortBreak
	LongBreak
)

// Modes lists every mode in display order
var Modes = []Mode{Study, ShortBreak, LongBreak}

// Duration returns the fixed length of m in seconds
func (m Mode) Duration() int {
	switch m {
	case ShortBreak:
		return 5 * 60
	case LongBreak:
		return 15 * 60
	}
	return 25 * 60
}

// Label is the human readable name of m
func (m Mode) Label() string {
	switch m {
	case ShortBreak:
		return "Short Break"
	case LongBreak:
		return "Long Break"
	}
	return "Study Time"
}

func (m Mode) String() string {
	switch m {
	case ShortBreak:
		return "short"
	case LongBreak:
		return "long"
	}
	return "study"
}

// ParseMode accepts the String form of a mode
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == s {
			return m, nil
		}
	}
	return Study, fmt.Errorf("unknown timer mode %q (want study, short or long)", s)
}

// LongBreakEvery is how many study sessions earn a long break
const LongBreakEvery = 4

// State is a snapshot of the engine
type State struct {
	Mode      Mode
	Remaining int
	Running   bool
	Sessions  int
}

// Accruer receives one second for every study tick
type Accruer interface {
	Accrue(seconds int) error
}

// EventKind distinguishes tick and completion events
type EventKind int

const (
	EventTick EventKind = iota
	EventCompleted
)

// Event is emitted by every applied tick
type Event struct {
	Kind EventKind
	// State after the tick. For EventCompleted it is the finished state,
	// with Remaining at zero, before auto-advance.
	State State
	// Next is the mode entered by auto-advance (EventCompleted only)
	Next Mode
}

// Engine is the countdown state machine
type Engine struct {
	state   State
	gen     uint64
	accrue  Accruer
	onEvent []func(Event)
}

// New returns an idle engine in study mode. accrue may be nil.
func New(accrue Accruer) *Engine {
	return &Engine{
		state:  State{Mode: Study, Remaining: Study.Duration()},
		accrue: accrue,
	}
}

// Subscribe registers fn to receive every applied event
func (e *Engine) Subscribe(fn func(Event)) {
	e.onEvent = append(e.onEvent, fn)
}

// State returns a snapshot of the engine
func (e *Engine) State() State {
	return e.state
}

// Generation returns the id ticks must carry to be applied
func (e *Engine) Generation() uint64 {
	return e.gen
}

// Progress is the elapsed fraction of the current mode, 0..1
func (e *Engine) Progress() float64 {
	d := e.state.Mode.Duration()
	return float64(d-e.state.Remaining) / float64(d)
}

// Start begins ticking and returns the generation the driver must pass to
// Tick. Starting a running engine returns the current generation.
func (e *Engine) Start() uint64 {
	if !e.state.Running {
		e.state.Running = true
		e.gen++
	}
	return e.gen
}

// Pause stops ticking and keeps the remaining time
func (e *Engine) Pause() {
	e.state.Running = false
	e.gen++
}

// Toggle starts a paused engine or pauses a running one. It reports
// whether the engine is now running.
func (e *Engine) Toggle() bool {
	if e.state.Running {
		e.Pause()
		return false
	}
	e.Start()
	return true
}

// Reset stops ticking and refills the current mode
func (e *Engine) Reset() {
	e.Pause()
	e.state.Remaining = e.state.Mode.Duration()
}

// ChangeMode stops ticking and switches to m with a full countdown
func (e *Engine) ChangeMode(m Mode) {
	e.Pause()
	e.state.Mode = m
	e.state.Remaining = m.Duration()
}

// Tick applies one second. ok is false when gen is stale or the engine is
// not running; nothing changes in that case. err carries a failed study
// accrual; the countdown advances regardless.
func (e *Engine) Tick(gen uint64) (ev Event, ok bool, err error) {
	if gen != e.gen || !e.state.Running {
		return Event{}, false, nil
	}

	if e.state.Remaining > 0 {
		e.state.Remaining--
		if e.state.Mode == Study && e.accrue != nil {
			if aerr := e.accrue.Accrue(1); aerr != nil {
				err = fmt.Errorf("accrue study time: %w", aerr)
			}
		}
	}

	if e.state.Remaining > 0 {
		ev = Event{Kind: EventTick, State: e.state}
		e.emit(ev)
		return ev, true, err
	}

	e.state.Running = false
	e.gen++
	finished := e.state
	next := e.advance()
	ev = Event{Kind: EventCompleted, State: finished, Next: next}
	slog.Info("timer completed", "mode", finished.Mode.String(), "next", next.String(), "sessions", e.state.Sessions)
	e.emit(ev)
	return ev, true, err
}

// advance selects and enters the mode following a completed countdown
func (e *Engine) advance() Mode {
	next := Study
	if e.state.Mode == Study {
		e.state.Sessions++
		if e.state.Sessions%LongBreakEvery == 0 {
			next = LongBreak
		} else {
			next = ShortBreak
		}
	}
	e.state.Mode = next
	e.state.Remaining = next.Duration()
	return next
}

func (e *Engine) emit(ev Event) {
	for _, fn := range e.onEvent {
		fn(ev)
	}
}

// Run starts the engine and ticks it every interval until the countdown
// completes or ctx is done, in which case the engine is paused. It must be
// the only caller touching e while it runs.
func (e *Engine) Run(ctx context.Context, every time.Duration) error {
	if every <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", every)
	}
	gen := e.Start()
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.Pause()
			return ctx.Err()
		case <-ticker.C:
			ev, ok, err := e.Tick(gen)
			if !ok {
				return nil
			}
			if err != nil {
				slog.Error("tick", "error", err)
			}
			if ev.Kind == EventCompleted {
				return nil
			}
		}
	}
}

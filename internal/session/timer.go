package session

import (
	"fmt"

	"github.com/tgienger/focusdash/internal/timer"
)

// ToggleTimer starts or pauses the countdown. When it starts, gen is the
// generation the caller must attach to every scheduled tick.
func (s *Session) ToggleTimer() (running bool, gen uint64) {
	running = s.engine.Toggle()
	s.render()
	return running, s.engine.Generation()
}

// ResetTimer refills the current mode and stops
func (s *Session) ResetTimer() {
	s.engine.Reset()
	s.render()
}

// ChangeMode switches the countdown to m and stops
func (s *Session) ChangeMode(m timer.Mode) {
	s.engine.ChangeMode(m)
	s.render()
}

// Tick delivers one scheduled second. more reports whether the countdown
// is still running under gen, i.e. whether the caller should schedule the
// next tick. Stale ticks change nothing.
func (s *Session) Tick(gen uint64) (more bool, err error) {
	ev, ok, err := s.engine.Tick(gen)
	if !ok {
		return false, nil
	}
	if ev.Kind == timer.EventCompleted {
		s.view.Notify(fmt.Sprintf("%s complete! Up next: %s.", ev.State.Mode.Label(), ev.Next.Label()))
	}
	s.render()
	return ev.Kind == timer.EventTick, err
}

// Timer exposes the engine for drivers such as Engine.Run
func (s *Session) Timer() *timer.Engine {
	return s.engine
}
